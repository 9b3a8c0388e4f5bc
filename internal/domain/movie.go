package domain

import "time"

// Movie represents the canonical movie entity in the database/service.
// Movies are loaded out of band (see cmd/seed-movies) and are read-only
// from the application's point of view.
type Movie struct {
	ID         int64
	Title      string
	ReleasedAt *time.Time
	ImdbURL    *string
	CreatedAt  time.Time
}
