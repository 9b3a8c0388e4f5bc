package domain

import "time"

// Rating represents a single user's score for a movie. At most one rating
// exists per (user, movie) pair; resubmissions overwrite the score.
type Rating struct {
	ID        int64
	UserID    int64
	MovieID   int64
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRating is a rating joined with the movie it belongs to, as shown on
// the user detail page.
type UserRating struct {
	Rating
	MovieTitle string
}

// RatingAggregate provides average and count for a movie's ratings.
type RatingAggregate struct {
	Average float32
	Count   int64
}
