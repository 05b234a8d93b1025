package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/dmitrijs2005/calendar/internal/server/storage"
	"github.com/google/uuid"
)

type StoreRepository struct {
	events storage.Collection[models.Event]
	now    func() time.Time
}

func NewStoreRepository(events storage.Collection[models.Event]) *StoreRepository {
	return &StoreRepository{events: events, now: time.Now}
}

func (r *StoreRepository) Create(ctx context.Context, ownerID string, fields models.EventFields) (*models.Event, error) {
	e := models.NewEvent(uuid.NewString(), ownerID, fields, r.now())
	if err := e.Validate(); err != nil {
		return nil, err
	}

	err := r.events.Update(ctx, func(s *storage.Snapshot[models.Event]) error {
		s.Items = append(s.Items, *e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// ListFor returns the owner's events in insertion order.
func (r *StoreRepository) ListFor(ctx context.Context, ownerID string) ([]models.Event, error) {
	s, err := r.events.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := []models.Event{}
	for _, e := range s.Items {
		if e.OwnerID == ownerID {
			owned = append(owned, e)
		}
	}
	return owned, nil
}

func (r *StoreRepository) GetFor(ctx context.Context, ownerID, eventID string) (*models.Event, error) {
	s, err := r.events.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOwned(s.Items, ownerID, eventID); i >= 0 {
		e := s.Items[i]
		return &e, nil
	}
	return nil, common.ErrorNotFound
}

// Update applies the supplied patch fields and re-validates the merged
// event before replacing the stored one.
func (r *StoreRepository) Update(ctx context.Context, ownerID, eventID string, patch models.EventPatch) (*models.Event, error) {
	var updated *models.Event

	err := r.events.Update(ctx, func(s *storage.Snapshot[models.Event]) error {
		i := indexOwned(s.Items, ownerID, eventID)
		if i < 0 {
			return common.ErrorNotFound
		}

		merged, err := s.Items[i].Merge(patch)
		if err != nil {
			return err
		}
		if err := merged.Validate(); err != nil {
			return err
		}
		merged.UpdatedAt = r.now().UTC()

		s.Items[i] = *merged
		updated = merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes exactly one owned event.
func (r *StoreRepository) Delete(ctx context.Context, ownerID, eventID string) error {
	return r.events.Update(ctx, func(s *storage.Snapshot[models.Event]) error {
		kept := make([]models.Event, 0, len(s.Items))
		for _, e := range s.Items {
			if e.ID == eventID && e.OwnerID == ownerID {
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) != len(s.Items)-1 {
			return common.ErrorNotFound
		}
		s.Items = kept
		return nil
	})
}

func indexOwned(items []models.Event, ownerID, eventID string) int {
	for i := range items {
		if items[i].ID == eventID && items[i].OwnerID == ownerID {
			return i
		}
	}
	return -1
}
