// Package users is the account directory: lookup by email or id and
// creation with case-insensitive email uniqueness.
package users

import (
	"context"

	"github.com/dmitrijs2005/calendar/internal/server/models"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
