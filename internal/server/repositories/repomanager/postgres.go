package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/calendar/internal/server/migrations"
	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/events"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/users"
	"github.com/dmitrijs2005/calendar/internal/server/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager keeps each collection as one row of the
// collections table and owns the connection pool.
type PostgresRepositoryManager struct {
	db     *sql.DB
	users  *users.StoreRepository
	events *events.StoreRepository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager connects to dsn, migrates the schema and
// makes sure both collection rows exist.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	m, err := newPostgresRepositoryManager(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

func newPostgresRepositoryManager(ctx context.Context, db *sql.DB) (*PostgresRepositoryManager, error) {
	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	accounts, err := storage.NewPostgresCollection[models.User](ctx, db, UsersCollection)
	if err != nil {
		return nil, fmt.Errorf("open %s collection: %w", UsersCollection, err)
	}

	evs, err := storage.NewPostgresCollection[models.Event](ctx, db, EventsCollection)
	if err != nil {
		return nil, fmt.Errorf("open %s collection: %w", EventsCollection, err)
	}

	return &PostgresRepositoryManager{
		db:     db,
		users:  users.NewStoreRepository(accounts),
		events: events.NewStoreRepository(evs),
	}, nil
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Events() events.Repository {
	return m.events
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
