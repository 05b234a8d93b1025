// Package events stores calendar events. Every operation is scoped to an
// owner: an event that exists but belongs to someone else is reported as
// not found.
package events

import (
	"context"

	"github.com/dmitrijs2005/calendar/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, ownerID string, fields models.EventFields) (*models.Event, error)
	ListFor(ctx context.Context, ownerID string) ([]models.Event, error)
	GetFor(ctx context.Context, ownerID, eventID string) (*models.Event, error)
	Update(ctx context.Context, ownerID, eventID string, patch models.EventPatch) (*models.Event, error)
	Delete(ctx context.Context, ownerID, eventID string) error
}
