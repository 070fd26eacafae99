// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a stored identity record. PasswordHash is a bcrypt hash with the
// salt embedded; it must never cross the store boundary. Use Public for
// anything returned to callers.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// SecretMatches reports whether the candidate secret resolves to the
// stored hash.
func (u *User) SecretMatches(candidate string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(candidate)) == nil
}

// HashSecret generates the bcrypt hash for a new user's secret. It errors
// if the secret is longer than 72 bytes.
func HashSecret(secret string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
}

// PublicUser is the projection of a User with all secret material removed.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public projects the record for callers outside the store boundary.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
