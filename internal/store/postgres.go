package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MenuImage_API/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Service on a Postgres table with a unique
// keyword constraint. Concurrent writers racing on the same keyword are
// resolved by the upsert: last writer wins.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed image cache store
func NewPostgresStore(connectionString string) (Service, error) {
	return newPostgresStore(connectionString)
}

// newPostgresStore creates the concrete implementation
func newPostgresStore(connectionString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.createTableIfNotExists(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create image_cache table: %w", err)
	}

	return store, nil
}

// createTableIfNotExists creates the image cache table if it doesn't exist
func (s *PostgresStore) createTableIfNotExists() error {
	query := `
		CREATE TABLE IF NOT EXISTS image_cache (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			keyword TEXT UNIQUE NOT NULL,
			image_url TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_image_cache_keyword ON image_cache(keyword);
	`

	_, err := s.pool.Exec(context.Background(), query)
	return err
}

// Get returns the cached image URL for a keyword
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", models.ErrKeywordNotCached
	}

	var url string
	err := s.pool.QueryRow(ctx,
		`SELECT image_url FROM image_cache WHERE keyword = $1`,
		strings.ToLower(key),
	).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.ErrKeywordNotCached
		}
		return "", fmt.Errorf("postgres get failed: %w", err)
	}

	return url, nil
}

// Put upserts the image URL for a keyword
func (s *PostgresStore) Put(ctx context.Context, key, url string) error {
	if key == "" || url == "" {
		return fmt.Errorf("keyword and url must be non-empty")
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO image_cache (keyword, image_url)
		 VALUES ($1, $2)
		 ON CONFLICT (keyword) DO UPDATE SET image_url = EXCLUDED.image_url`,
		strings.ToLower(key), url,
	)
	if err != nil {
		return fmt.Errorf("postgres put failed: %w", err)
	}

	return nil
}

// Clear deletes all cached entries
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM image_cache`); err != nil {
		return fmt.Errorf("postgres clear failed: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
