// Package commands implements the CLI subcommands for the plantpulse binary.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/plantpulse/plantpulse/internal/alert"
	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/internal/store/dynamodb"
	"github.com/plantpulse/plantpulse/internal/store/memory"
	"github.com/plantpulse/plantpulse/internal/store/postgres"
	"github.com/plantpulse/plantpulse/internal/store/redis"
	"github.com/plantpulse/plantpulse/pkg/types"
)

const commandTimeout = 30 * time.Second

// newStore creates the configured storage backend.
func newStore(cfg *types.ProjectConfig) (store.Store, error) {
	switch cfg.Provider {
	case "memory":
		return memory.New(), nil
	case "redis":
		return redis.New(cfg.Redis), nil
	case "dynamodb":
		return dynamodb.New(cfg.DynamoDB)
	case "postgres":
		return postgres.New(cfg.Postgres), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// openStore creates and starts the configured backend; callers defer the
// returned stop function.
func openStore(ctx context.Context, cfg *types.ProjectConfig) (store.Store, func(), error) {
	st, err := newStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating store: %w", err)
	}
	if err := st.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("connecting to store: %w", err)
	}
	stop := func() { _ = st.Stop(context.Background()) }
	return st, stop, nil
}

// newDispatcher creates the alert dispatcher from config.
func newDispatcher(cfg *types.ProjectConfig) (*alert.Dispatcher, error) {
	d, err := alert.NewDispatcher(cfg.Alerts)
	if err != nil {
		return nil, fmt.Errorf("creating alert dispatcher: %w", err)
	}
	return d, nil
}
