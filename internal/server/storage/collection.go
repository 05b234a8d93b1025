// Package storage persists whole record collections (accounts, events) as
// snapshot documents. Each collection is its own critical section: Update
// holds it across the full read-modify-write so concurrent callers never
// lose writes, and a failed callback persists nothing.
//
// Two backends are provided: FileCollection keeps one JSON file per
// collection, PostgresCollection keeps one JSONB row per collection.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
)

// Meta is the metadata stamp written when a collection is first created.
type Meta struct {
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot is the full content of a collection.
type Snapshot[T any] struct {
	Meta  Meta `json:"meta"`
	Items []T  `json:"items"`
}

// NewSnapshot returns an empty snapshot stamped with now.
func NewSnapshot[T any](now time.Time) *Snapshot[T] {
	return &Snapshot[T]{Meta: Meta{CreatedAt: now.UTC()}, Items: []T{}}
}

// Collection is the persistence contract the repositories are written
// against.
type Collection[T any] interface {
	// ReadAll returns a full snapshot.
	ReadAll(ctx context.Context) (*Snapshot[T], error)

	// WriteAll replaces the stored snapshot.
	WriteAll(ctx context.Context, s *Snapshot[T]) error

	// Update reads the snapshot, passes it to fn and writes it back, all
	// inside the collection's critical section. If fn returns an error the
	// stored snapshot is left untouched and the error is returned as is.
	Update(ctx context.Context, fn func(s *Snapshot[T]) error) error
}

func decodeSnapshot[T any](data []byte) (*Snapshot[T], error) {
	s := &Snapshot[T]{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorCorrupted, err)
	}
	if s.Items == nil {
		s.Items = []T{}
	}
	return s, nil
}

func encodeSnapshot[T any](s *Snapshot[T]) ([]byte, error) {
	if s.Items == nil {
		s.Items = []T{}
	}
	return json.MarshalIndent(s, "", "  ")
}
