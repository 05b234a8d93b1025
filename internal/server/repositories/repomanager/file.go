package repomanager

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/events"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/users"
	"github.com/dmitrijs2005/calendar/internal/server/storage"
)

// FileRepositoryManager keeps each collection in its own JSON file under
// a data directory.
type FileRepositoryManager struct {
	users  *users.StoreRepository
	events *events.StoreRepository
}

// NewFileRepositoryManager creates dataDir and empty collection files as
// needed.
func NewFileRepositoryManager(dataDir string) (*FileRepositoryManager, error) {
	accounts, err := storage.NewFileCollection[models.User](filepath.Join(dataDir, UsersCollection+".json"))
	if err != nil {
		return nil, fmt.Errorf("open %s collection: %w", UsersCollection, err)
	}

	evs, err := storage.NewFileCollection[models.Event](filepath.Join(dataDir, EventsCollection+".json"))
	if err != nil {
		return nil, fmt.Errorf("open %s collection: %w", EventsCollection, err)
	}

	return &FileRepositoryManager{
		users:  users.NewStoreRepository(accounts),
		events: events.NewStoreRepository(evs),
	}, nil
}

func (m *FileRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *FileRepositoryManager) Events() events.Repository {
	return m.events
}

func (m *FileRepositoryManager) Close() error {
	return nil
}
