// seed-movies bulk-loads the movies table from a pipe-delimited data file.
// Each line reads id|title|released|imdb_url; the id column is ignored
// (identifiers are server-generated) and the last two columns may be empty.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/filmclub/judgemental/internal/repository"
	"github.com/filmclub/judgemental/internal/store"
)

const releasedLayout = "02-Jan-2006"

func main() {
	var (
		data  = flag.String("data", "movies.dat", "path to pipe-delimited movie file")
		dbURL = flag.String("db", os.Getenv("DB_URL"), "postgres connection string")
	)
	flag.Parse()

	if *dbURL == "" {
		log.Fatalf("database URL required (set -db or DB_URL)")
	}

	file, err := os.Open(*data)
	if err != nil {
		log.Fatalf("open movie file: %v", err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	st, err := store.New(ctx, *dbURL, store.Options{Logger: log.Default()})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	repo := repository.New(st)

	var loaded, skipped int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		params, err := parseMovieLine(line)
		if err != nil {
			log.Printf("skip line %q: %v", line, err)
			skipped++
			continue
		}

		if _, err := repo.Movies.Create(ctx, params); err != nil {
			log.Fatalf("insert movie %q: %v", params.Title, err)
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read movie file: %v", err)
	}

	log.Printf("loaded %d movies (%d lines skipped)", loaded, skipped)
}

func parseMovieLine(line string) (repository.MovieCreateParams, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 2 || strings.TrimSpace(fields[1]) == "" {
		return repository.MovieCreateParams{}, errMissingTitle
	}

	params := repository.MovieCreateParams{Title: strings.TrimSpace(fields[1])}

	if len(fields) > 2 {
		if raw := strings.TrimSpace(fields[2]); raw != "" {
			released, err := time.Parse(releasedLayout, raw)
			if err != nil {
				return repository.MovieCreateParams{}, err
			}
			params.ReleasedAt = &released
		}
	}
	if len(fields) > 3 {
		if raw := strings.TrimSpace(fields[3]); raw != "" {
			params.ImdbURL = &raw
		}
	}

	return params, nil
}

var errMissingTitle = errors.New("missing title column")
