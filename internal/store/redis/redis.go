// Package redis implements the Store interface using Redis/Valkey.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// Compile-time interface satisfaction check.
var _ store.Store = (*Store)(nil)

// maxReadings caps the telemetry list per machine.
const maxReadings = 1000

// Store implements the Store interface backed by Redis/Valkey.
type Store struct {
	client       *goredis.Client
	prefix       string
	upsertScript *goredis.Script
}

// New creates a new Redis store from config.
func New(cfg *types.RedisConfig) *Store {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewFromClient(client, cfg.KeyPrefix)
}

// NewFromClient creates a Store from an existing client (useful for testing).
func NewFromClient(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "plantpulse:"
	}
	return &Store{
		client:       client,
		prefix:       prefix,
		upsertScript: goredis.NewScript(upsertRiskScript),
	}
}

// Start initializes the connection.
func (s *Store) Start(ctx context.Context) error {
	return s.Ping(ctx)
}

// Stop closes the connection.
func (s *Store) Stop(_ context.Context) error {
	return s.client.Close()
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) machineKey(id string) string  { return s.prefix + "machine:" + id }
func (s *Store) machineIndexKey() string      { return s.prefix + "machines" }
func (s *Store) readingsKey(id string) string { return s.prefix + "readings:" + id }
func (s *Store) partKey(id string) string     { return s.prefix + "part:" + id }
func (s *Store) supplierKey(id string) string { return s.prefix + "supplier:" + id }
func (s *Store) riskKey(partID string) string { return s.prefix + "risk:" + partID }
func (s *Store) riskIndexKey() string         { return s.prefix + "risks" }
