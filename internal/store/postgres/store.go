package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// Compile-time interface satisfaction check.
var _ store.Store = (*Store)(nil)

// Store implements the Store interface backed by a PostgreSQL pool.
type Store struct {
	cfg    *types.PostgresConfig
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Postgres store. The pool is established in Start so the
// store can be constructed before the database is reachable.
func New(cfg *types.PostgresConfig) *Store {
	return &Store{cfg: cfg, logger: slog.Default()}
}

// Start connects, optionally runs the schema DDL, and verifies the
// connection.
func (s *Store) Start(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, s.cfg.DSN)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("postgres ping: %w: %v", store.ErrUnavailable, err)
	}
	s.pool = pool

	if s.cfg.Migrate {
		if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
			return fmt.Errorf("postgres migrate: %w", err)
		}
		s.logger.Info("postgres schema migrated")
	}
	return nil
}

// Stop closes the connection pool.
func (s *Store) Stop(_ context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return store.ErrUnavailable
	}
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w: %v", store.ErrUnavailable, err)
	}
	return nil
}
