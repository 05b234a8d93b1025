package repomanager

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileRepositoryManager_CreatesCollections(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	m, err := NewFileRepositoryManager(dir)
	require.NoError(t, err)
	defer m.Close()

	for _, name := range []string{"users.json", "events.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	var _ RepositoryManager = m
}

func TestFileRepositoryManager_Repositories(t *testing.T) {
	ctx := context.Background()
	m, err := NewFileRepositoryManager(t.TempDir())
	require.NoError(t, err)

	u, err := m.Users().Create(ctx, &models.User{Email: "a@x.io", PasswordHash: "h"})
	require.NoError(t, err)

	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	e, err := m.Events().Create(ctx, u.ID, models.EventFields{Title: "t", Start: start, End: start.Add(time.Hour)})
	require.NoError(t, err)

	got, err := m.Events().GetFor(ctx, u.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.OwnerID)
}

func TestNewFileRepositoryManager_BadDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))

	_, err := NewFileRepositoryManager(filepath.Join(f, "sub"))
	assert.Error(t, err)
}
