// Package store defines the storage collaborator interface for PlantPulse.
package store

import (
	"context"
	"errors"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable indicates storage cannot complete the operation. The
// engine propagates it verbatim; retry policy belongs to the caller.
var ErrUnavailable = errors.New("storage unavailable")

// Store is the storage backend interface. Backends own their schema; the
// engine sees only fully materialized snapshots and a per-key atomic
// upsert for risk records.
type Store interface {
	// Machine snapshots
	PutMachine(ctx context.Context, m types.Machine) error
	GetMachine(ctx context.Context, id string) (*types.Machine, error)
	ListMachines(ctx context.Context) ([]types.Machine, error)

	// Sensor telemetry
	AppendReading(ctx context.Context, r types.SensorReading) error
	// LatestReadings returns up to n of the most recent readings for a
	// machine, ordered chronologically ascending.
	LatestReadings(ctx context.Context, machineID string, n int) ([]types.SensorReading, error)

	// Inventory snapshots
	PutSparePart(ctx context.Context, p types.SparePart) error
	GetSparePart(ctx context.Context, id string) (*types.SparePart, error)
	PutSupplier(ctx context.Context, s types.Supplier) error
	GetSupplier(ctx context.Context, id string) (*types.Supplier, error)

	// Risk records: at most one live assessment per part. The upsert is
	// atomic per PartID: it preserves the existing record's ID and
	// CreatedAt, overwrites everything else, and returns the record as
	// stored. Concurrent upserts for different parts are independent.
	UpsertRiskAssessment(ctx context.Context, rec types.SupplyRiskAssessment) (*types.SupplyRiskAssessment, error)
	GetRiskAssessment(ctx context.Context, partID string) (*types.SupplyRiskAssessment, error)
	ListRiskAssessments(ctx context.Context, limit int) ([]types.SupplyRiskAssessment, error)

	// Lifecycle
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Ping(ctx context.Context) error
}
