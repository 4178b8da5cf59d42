// Package memory implements the Store interface with in-process maps.
// It is the reference implementation and the test double for the
// network-backed stores.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// Compile-time interface satisfaction check.
var _ store.Store = (*Store)(nil)

// maxReadings caps retained telemetry per machine.
const maxReadings = 1000

// Store is an in-memory Store implementation, safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	machines  map[string]types.Machine
	readings  map[string][]types.SensorReading
	parts     map[string]types.SparePart
	suppliers map[string]types.Supplier
	risks     map[string]types.SupplyRiskAssessment // keyed by PartID
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		machines:  make(map[string]types.Machine),
		readings:  make(map[string][]types.SensorReading),
		parts:     make(map[string]types.SparePart),
		suppliers: make(map[string]types.Supplier),
		risks:     make(map[string]types.SupplyRiskAssessment),
	}
}

// Start is a no-op for the in-memory store.
func (s *Store) Start(_ context.Context) error { return nil }

// Stop is a no-op for the in-memory store.
func (s *Store) Stop(_ context.Context) error { return nil }

// Ping is a no-op for the in-memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// PutMachine stores a machine snapshot.
func (s *Store) PutMachine(_ context.Context, m types.Machine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines[m.ID] = m
	return nil
}

// GetMachine retrieves a machine snapshot by ID.
func (s *Store) GetMachine(_ context.Context, id string) (*types.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.machines[id]
	if !ok {
		return nil, fmt.Errorf("machine %q: %w", id, store.ErrNotFound)
	}
	return &m, nil
}

// ListMachines returns all machine snapshots sorted by ID.
func (s *Store) ListMachines(_ context.Context) ([]types.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Machine, 0, len(s.machines))
	for _, m := range s.machines {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AppendReading appends a sensor reading, trimming the oldest entries
// beyond the retention cap.
func (s *Store) AppendReading(_ context.Context, r types.SensorReading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := append(s.readings[r.MachineID], r)
	if len(rs) > maxReadings {
		rs = rs[len(rs)-maxReadings:]
	}
	s.readings[r.MachineID] = rs
	return nil
}

// LatestReadings returns up to n of the newest readings, oldest first.
func (s *Store) LatestReadings(_ context.Context, machineID string, n int) ([]types.SensorReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.readings[machineID]
	if n > 0 && len(rs) > n {
		rs = rs[len(rs)-n:]
	}
	out := make([]types.SensorReading, len(rs))
	copy(out, rs)
	return out, nil
}

// PutSparePart stores a spare part snapshot.
func (s *Store) PutSparePart(_ context.Context, p types.SparePart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[p.ID] = p
	return nil
}

// GetSparePart retrieves a spare part snapshot by ID.
func (s *Store) GetSparePart(_ context.Context, id string) (*types.SparePart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.parts[id]
	if !ok {
		return nil, fmt.Errorf("spare part %q: %w", id, store.ErrNotFound)
	}
	return &p, nil
}

// PutSupplier stores a supplier snapshot.
func (s *Store) PutSupplier(_ context.Context, sup types.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sup.ID] = sup
	return nil
}

// GetSupplier retrieves a supplier snapshot by ID.
func (s *Store) GetSupplier(_ context.Context, id string) (*types.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sup, ok := s.suppliers[id]
	if !ok {
		return nil, fmt.Errorf("supplier %q: %w", id, store.ErrNotFound)
	}
	return &sup, nil
}

// UpsertRiskAssessment atomically creates or overwrites the single risk
// record for a part, preserving the original ID and CreatedAt on update.
func (s *Store) UpsertRiskAssessment(_ context.Context, rec types.SupplyRiskAssessment) (*types.SupplyRiskAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.risks[rec.PartID]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	}
	s.risks[rec.PartID] = rec
	return &rec, nil
}

// GetRiskAssessment retrieves the current risk record for a part.
func (s *Store) GetRiskAssessment(_ context.Context, partID string) (*types.SupplyRiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.risks[partID]
	if !ok {
		return nil, fmt.Errorf("risk assessment for part %q: %w", partID, store.ErrNotFound)
	}
	return &rec, nil
}

// ListRiskAssessments returns up to limit risk records sorted by part ID.
func (s *Store) ListRiskAssessments(_ context.Context, limit int) ([]types.SupplyRiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.SupplyRiskAssessment, 0, len(s.risks))
	for _, rec := range s.risks {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartID < out[j].PartID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
