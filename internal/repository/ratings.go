package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmclub/judgemental/internal/domain"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

const ratingColumns = `
    rating_id,
    user_id,
    movie_id,
    score,
    created_at,
    updated_at
`

// RatingUpsertParams captures the payload required to upsert a rating.
type RatingUpsertParams struct {
	UserID  int64
	MovieID int64
	Score   int
}

// Upsert inserts or overwrites a user's score for a movie and indicates
// whether the rating was newly created. The ON CONFLICT clause keeps the
// at-most-one-rating-per-pair invariant under concurrent submissions.
func (r *RatingsRepository) Upsert(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, error) {
	const query = `
        INSERT INTO ratings (user_id, movie_id, score)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, movie_id)
        DO UPDATE SET score = EXCLUDED.score, updated_at = now()
        RETURNING ` + ratingColumns + `, (xmax = 0) AS inserted`

	var rating domain.Rating
	var inserted bool
	err := r.pool.QueryRow(ctx, query, params.UserID, params.MovieID, params.Score).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.MovieID,
		&rating.Score,
		&rating.CreatedAt,
		&rating.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return domain.Rating{}, false, err
	}
	return rating, inserted, nil
}

// ListByUser returns all of a user's ratings joined with movie titles,
// newest first.
func (r *RatingsRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserRating, error) {
	const query = `
        SELECT r.rating_id, r.user_id, r.movie_id, r.score, r.created_at, r.updated_at, m.title
        FROM ratings r
        JOIN movies m ON m.movie_id = r.movie_id
        WHERE r.user_id = $1
        ORDER BY r.updated_at DESC, r.rating_id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.UserRating, 0)
	for rows.Next() {
		var ur domain.UserRating
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.MovieID, &ur.Score, &ur.CreatedAt, &ur.UpdatedAt, &ur.MovieTitle); err != nil {
			return nil, err
		}
		ratings = append(ratings, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListByMovie returns all ratings for a movie, newest first.
func (r *RatingsRepository) ListByMovie(ctx context.Context, movieID int64) ([]domain.Rating, error) {
	const query = `SELECT ` + ratingColumns + `
        FROM ratings
        WHERE movie_id = $1
        ORDER BY updated_at DESC, rating_id DESC`

	rows, err := r.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

// Aggregate returns the score average and count for a movie.
func (r *RatingsRepository) Aggregate(ctx context.Context, movieID int64) (domain.RatingAggregate, error) {
	const query = `
        SELECT COALESCE(ROUND(AVG(score)::numeric, 1), 0)::float4 AS average,
               COUNT(*)::int8 AS count
        FROM ratings
        WHERE movie_id = $1
    `

	var agg domain.RatingAggregate
	err := r.pool.QueryRow(ctx, query, movieID).Scan(&agg.Average, &agg.Count)
	if err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	return agg, nil
}

// Get retrieves a rating for a specific user/movie combination.
func (r *RatingsRepository) Get(ctx context.Context, userID, movieID int64) (domain.Rating, error) {
	const query = `SELECT ` + ratingColumns + `
        FROM ratings
        WHERE user_id = $1 AND movie_id = $2`

	rating, err := scanRating(r.pool.QueryRow(ctx, query, userID, movieID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}

func scanRating(row pgx.Row) (domain.Rating, error) {
	var rating domain.Rating
	err := row.Scan(
		&rating.ID,
		&rating.UserID,
		&rating.MovieID,
		&rating.Score,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		return domain.Rating{}, err
	}
	return rating, nil
}
