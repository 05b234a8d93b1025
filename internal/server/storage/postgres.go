package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
	"github.com/dmitrijs2005/calendar/internal/dbx"
)

// PostgresCollection stores a collection as one JSONB row of the
// collections table. The critical section is a transaction holding a row
// lock, so it also serializes writers running in other processes.
type PostgresCollection[T any] struct {
	db   *sql.DB
	name string
}

// NewPostgresCollection binds the collection name to db and makes sure its
// row exists. The schema must already be migrated.
func NewPostgresCollection[T any](ctx context.Context, db *sql.DB, name string) (*PostgresCollection[T], error) {
	doc, err := encodeSnapshot(NewSnapshot[T](time.Now()))
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO collections (name, document)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING`

	if _, err := db.ExecContext(ctx, query, name, string(doc)); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &PostgresCollection[T]{db: db, name: name}, nil
}

func (c *PostgresCollection[T]) ReadAll(ctx context.Context) (*Snapshot[T], error) {
	return c.load(ctx, c.db, false)
}

func (c *PostgresCollection[T]) WriteAll(ctx context.Context, s *Snapshot[T]) error {
	return c.store(ctx, c.db, s)
}

func (c *PostgresCollection[T]) Update(ctx context.Context, fn func(s *Snapshot[T]) error) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		s, err := c.load(ctx, tx, true)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		return c.store(ctx, tx, s)
	})
}

func (c *PostgresCollection[T]) load(ctx context.Context, db dbx.DBTX, lock bool) (*Snapshot[T], error) {
	query := `SELECT document FROM collections WHERE name = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	var data []byte
	err := db.QueryRowContext(ctx, query, c.name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: collection %q has no row", common.ErrorCorrupted, c.name)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s, err := decodeSnapshot[T](data)
	if err != nil {
		return nil, fmt.Errorf("collection %q: %w", c.name, err)
	}
	return s, nil
}

func (c *PostgresCollection[T]) store(ctx context.Context, db dbx.DBTX, s *Snapshot[T]) error {
	doc, err := encodeSnapshot(s)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", c.name, err)
	}

	query := `UPDATE collections SET document = $2, updated_at = now() WHERE name = $1`

	res, err := db.ExecContext(ctx, query, c.name, string(doc))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}
