package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmclub/judgemental/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    movie_id,
    title,
    released_at,
    imdb_url,
    created_at
`

// MovieCreateParams bundles the fields required to load a movie. The
// application itself never creates movies; this exists for the seed command
// and tests.
type MovieCreateParams struct {
	Title      string
	ReleasedAt *time.Time
	ImdbURL    *string
}

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	const query = `
        INSERT INTO movies (title, released_at, imdb_url)
        VALUES ($1,$2,$3)
        RETURNING ` + movieColumns

	row := r.pool.QueryRow(ctx, query, params.Title, params.ReleasedAt, params.ImdbURL)
	return scanMovie(row)
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	const query = `SELECT ` + movieColumns + ` FROM movies WHERE movie_id = $1`
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// List returns all movies ordered by title ascending, id as tiebreak so the
// order is stable for duplicate titles.
func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	const query = `SELECT ` + movieColumns + ` FROM movies ORDER BY title ASC, movie_id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleasedAt,
		&movie.ImdbURL,
		&movie.CreatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}
