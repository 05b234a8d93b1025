// Package models defines the server-side records persisted by the storage
// layer and exchanged between repositories, services and the REST layer.
package models

import "time"

// User is a registered account. Email uniqueness is case-insensitive and
// is enforced by the users repository, not by storage.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
