package domain

import "time"

// User represents a registered account. Passwords are never stored in the
// clear; only the bcrypt hash is persisted.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Age          *int
	Zipcode      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
