package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID string `json:"id"`
	N  int    `json:"n"`
}

func newFileCollection(t *testing.T) (*FileCollection[item], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "items.json")
	c, err := NewFileCollection[item](path)
	require.NoError(t, err)
	return c, path
}

func TestNewFileCollection_InitializesEmptySnapshot(t *testing.T) {
	before := time.Now().Add(-time.Second)
	c, path := newFileCollection(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "meta")
	assert.JSONEq(t, `[]`, string(doc["items"]))

	s, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, s.Items)
	assert.NotNil(t, s.Items)
	assert.True(t, s.Meta.CreatedAt.After(before))
	assert.Equal(t, path, c.Path())
}

func TestNewFileCollection_KeepsExistingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	doc := `{"meta":{"createdAt":"2020-05-01T00:00:00Z"},"items":[{"id":"a","n":1}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := NewFileCollection[item](path)
	require.NoError(t, err)

	s, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a", N: 1}}, s.Items)
	assert.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), s.Meta.CreatedAt)
}

func TestFileCollection_WriteAllReadAll(t *testing.T) {
	c, _ := newFileCollection(t)
	ctx := context.Background()

	s, err := c.ReadAll(ctx)
	require.NoError(t, err)
	s.Items = append(s.Items, item{ID: "x", N: 7})
	require.NoError(t, c.WriteAll(ctx, s))

	got, err := c.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "x", N: 7}}, got.Items)
	assert.Equal(t, s.Meta.CreatedAt, got.Meta.CreatedAt)
}

func TestFileCollection_Update_Persists(t *testing.T) {
	c, _ := newFileCollection(t)
	ctx := context.Background()

	err := c.Update(ctx, func(s *Snapshot[item]) error {
		s.Items = append(s.Items, item{ID: "a"}, item{ID: "b"})
		return nil
	})
	require.NoError(t, err)

	s, err := c.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, s.Items, 2)
	assert.Equal(t, "a", s.Items[0].ID)
	assert.Equal(t, "b", s.Items[1].ID)
}

func TestFileCollection_Update_ErrorWritesNothing(t *testing.T) {
	c, _ := newFileCollection(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := c.Update(ctx, func(s *Snapshot[item]) error {
		s.Items = append(s.Items, item{ID: "never"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	s, err := c.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.Items)
}

func TestFileCollection_Update_SerializesWriters(t *testing.T) {
	c, _ := newFileCollection(t)
	ctx := context.Background()
	require.NoError(t, c.Update(ctx, func(s *Snapshot[item]) error {
		s.Items = append(s.Items, item{ID: "counter"})
		return nil
	}))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Update(ctx, func(s *Snapshot[item]) error {
				s.Items[0].N++
				return nil
			}))
		}()
	}
	wg.Wait()

	s, err := c.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers, s.Items[0].N)
}

func TestFileCollection_MalformedIsCorrupted(t *testing.T) {
	c, path := newFileCollection(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"items": [`), 0o600))

	_, err := c.ReadAll(context.Background())
	assert.ErrorIs(t, err, common.ErrorCorrupted)

	called := false
	err = c.Update(context.Background(), func(s *Snapshot[item]) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, common.ErrorCorrupted)
	assert.False(t, called)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"items": [`, string(raw), "corrupted file must not be overwritten")
}

func TestFileCollection_NullItemsBecomeEmpty(t *testing.T) {
	c, path := newFileCollection(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"meta":{"createdAt":"2024-01-01T00:00:00Z"},"items":null}`), 0o600))

	s, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, s.Items)
	assert.Empty(t, s.Items)
}
