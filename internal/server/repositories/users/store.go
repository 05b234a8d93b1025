package users

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/dmitrijs2005/calendar/internal/server/storage"
	"github.com/google/uuid"
)

type StoreRepository struct {
	accounts storage.Collection[models.User]
	now      func() time.Time
}

func NewStoreRepository(accounts storage.Collection[models.User]) *StoreRepository {
	return &StoreRepository{accounts: accounts, now: time.Now}
}

// FindByEmail matches email case-insensitively.
func (r *StoreRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s, err := r.accounts.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByEmail(s.Items, email); i >= 0 {
		u := s.Items[i]
		return &u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	s, err := r.accounts.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range s.Items {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Create assigns the id and creation time and stores the account. The
// email check and the append share one critical section.
func (r *StoreRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created := models.User{
		ID:           uuid.NewString(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    r.now().UTC(),
	}

	err := r.accounts.Update(ctx, func(s *storage.Snapshot[models.User]) error {
		if indexByEmail(s.Items, created.Email) >= 0 {
			return common.ErrorConflict
		}
		s.Items = append(s.Items, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func indexByEmail(items []models.User, email string) int {
	for i := range items {
		if strings.EqualFold(items[i].Email, email) {
			return i
		}
	}
	return -1
}
