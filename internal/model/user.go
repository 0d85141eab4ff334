// Package model defines the records stored in MySQL and the response views
// assembled from them. Structs mirror table columns one to one; anything that
// must never reach a client (the password hash) is excluded from JSON here
// rather than in every handler.
package model

import "time"

// Roles a user account can hold. Role is authorization-relevant and is
// always re-read from the database, never trusted from a token.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the `users` table. Username and email each carry a unique
// index; violations surface as duplicate-key conflicts at insert time.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
