package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/calendar/internal/server/config"
	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/events"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
}

func newFileManager(t *testing.T) *repomanager.FileRepositoryManager {
	t.Helper()
	m, err := repomanager.NewFileRepositoryManager(t.TempDir())
	require.NoError(t, err)
	return m
}

// --- fakes ---

type fakeUsersRepo struct {
	findOut *models.User
	findErr error

	createOut *models.User
	createErr error
}

func (f *fakeUsersRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return f.findOut, f.findErr
}

func (f *fakeUsersRepo) FindByID(context.Context, string) (*models.User, error) {
	return f.findOut, f.findErr
}

func (f *fakeUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return f.createOut, f.createErr
}

type fakeEventsRepo struct {
	listOut []models.Event
	listErr error
}

func (f *fakeEventsRepo) Create(context.Context, string, models.EventFields) (*models.Event, error) {
	return nil, nil
}

func (f *fakeEventsRepo) ListFor(context.Context, string) ([]models.Event, error) {
	return f.listOut, f.listErr
}

func (f *fakeEventsRepo) GetFor(context.Context, string, string) (*models.Event, error) {
	return nil, nil
}

func (f *fakeEventsRepo) Update(context.Context, string, string, models.EventPatch) (*models.Event, error) {
	return nil, nil
}

func (f *fakeEventsRepo) Delete(context.Context, string, string) error { return nil }

type fakeRepoManager struct {
	u *fakeUsersRepo
	e *fakeEventsRepo
}

func (m *fakeRepoManager) Users() users.Repository   { return m.u }
func (m *fakeRepoManager) Events() events.Repository { return m.e }
func (m *fakeRepoManager) Close() error              { return nil }
