package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/calendar/internal/filex"
)

// FileCollection stores a collection as a single JSON document on disk.
type FileCollection[T any] struct {
	path string
	mu   sync.Mutex
}

// NewFileCollection opens the collection at path, creating its directory
// and an empty snapshot when the file does not exist yet.
func NewFileCollection[T any](path string) (*FileCollection[T], error) {
	c := &FileCollection[T]{path: path}

	if err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		if err := c.write(NewSnapshot[T](time.Now())); err != nil {
			return nil, fmt.Errorf("init %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return c, nil
}

// Path returns the backing file path.
func (c *FileCollection[T]) Path() string {
	return c.path
}

func (c *FileCollection[T]) ReadAll(ctx context.Context) (*Snapshot[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *FileCollection[T]) WriteAll(ctx context.Context, s *Snapshot[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(s)
}

func (c *FileCollection[T]) Update(ctx context.Context, fn func(s *Snapshot[T]) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.read()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return c.write(s)
}

func (c *FileCollection[T]) read() (*Snapshot[T], error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	s, err := decodeSnapshot[T](data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.path, err)
	}
	return s, nil
}

func (c *FileCollection[T]) write(s *Snapshot[T]) error {
	data, err := encodeSnapshot(s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	return filex.WriteAtomic(c.path, data, 0o600)
}
