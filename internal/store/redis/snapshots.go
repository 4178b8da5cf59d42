package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// PutMachine stores a machine snapshot and indexes its ID.
func (s *Store) PutMachine(ctx context.Context, m types.Machine) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, s.machineKey(m.ID), data, 0)
		pipe.SAdd(ctx, s.machineIndexKey(), m.ID)
		return nil
	})
	return err
}

// GetMachine retrieves a machine snapshot by ID.
func (s *Store) GetMachine(ctx context.Context, id string) (*types.Machine, error) {
	var m types.Machine
	if err := s.getJSON(ctx, s.machineKey(id), &m); err != nil {
		return nil, fmt.Errorf("machine %q: %w", id, err)
	}
	return &m, nil
}

// ListMachines returns all machine snapshots sorted by ID.
func (s *Store) ListMachines(ctx context.Context) ([]types.Machine, error) {
	ids, err := s.client.SMembers(ctx, s.machineIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	out := make([]types.Machine, 0, len(ids))
	for _, id := range ids {
		m, err := s.GetMachine(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}

// AppendReading pushes a reading onto the machine's telemetry list and
// trims it to the retention cap.
func (s *Store) AppendReading(ctx context.Context, r types.SensorReading) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	key := s.readingsKey(r.MachineID)
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, -maxReadings, -1)
		return nil
	})
	return err
}

// LatestReadings returns up to n of the newest readings, oldest first.
func (s *Store) LatestReadings(ctx context.Context, machineID string, n int) ([]types.SensorReading, error) {
	start := int64(-n)
	if n <= 0 {
		start = 0
	}
	raw, err := s.client.LRange(ctx, s.readingsKey(machineID), start, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]types.SensorReading, 0, len(raw))
	for _, item := range raw {
		var r types.SensorReading
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("decoding reading: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// PutSparePart stores a spare part snapshot.
func (s *Store) PutSparePart(ctx context.Context, p types.SparePart) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.partKey(p.ID), data, 0).Err()
}

// GetSparePart retrieves a spare part snapshot by ID.
func (s *Store) GetSparePart(ctx context.Context, id string) (*types.SparePart, error) {
	var p types.SparePart
	if err := s.getJSON(ctx, s.partKey(id), &p); err != nil {
		return nil, fmt.Errorf("spare part %q: %w", id, err)
	}
	return &p, nil
}

// PutSupplier stores a supplier snapshot.
func (s *Store) PutSupplier(ctx context.Context, sup types.Supplier) error {
	data, err := json.Marshal(sup)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.supplierKey(sup.ID), data, 0).Err()
}

// GetSupplier retrieves a supplier snapshot by ID.
func (s *Store) GetSupplier(ctx context.Context, id string) (*types.Supplier, error) {
	var sup types.Supplier
	if err := s.getJSON(ctx, s.supplierKey(id), &sup); err != nil {
		return nil, fmt.Errorf("supplier %q: %w", id, err)
	}
	return &sup, nil
}

func (s *Store) getJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
