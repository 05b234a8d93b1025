// Package repomanager builds the account and event repositories on top of
// the configured storage backend.
package repomanager

import (
	"github.com/dmitrijs2005/calendar/internal/server/repositories/events"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/users"
)

// Collection names shared by both backends. The file backend appends
// ".json".
const (
	UsersCollection  = "users"
	EventsCollection = "events"
)

type RepositoryManager interface {
	Users() users.Repository
	Events() events.Repository
	Close() error
}
