package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// PutMachine upserts a machine snapshot.
func (s *Store) PutMachine(ctx context.Context, m types.Machine) error {
	limitsJSON, err := json.Marshal(m.Limits)
	if err != nil {
		return fmt.Errorf("marshal machine limits: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO machines (id, name, type, status, limits, health_score,
			fault_probability, anomaly_score, location, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name              = EXCLUDED.name,
			type              = EXCLUDED.type,
			status            = EXCLUDED.status,
			limits            = EXCLUDED.limits,
			health_score      = EXCLUDED.health_score,
			fault_probability = EXCLUDED.fault_probability,
			anomaly_score     = EXCLUDED.anomaly_score,
			location          = EXCLUDED.location,
			updated_at        = EXCLUDED.updated_at
	`, m.ID, m.Name, m.Type, string(m.Status), limitsJSON,
		m.HealthScore, m.FaultProbability, m.AnomalyScore, m.Location, m.UpdatedAt)
	return err
}

// GetMachine retrieves a machine snapshot by ID.
func (s *Store) GetMachine(ctx context.Context, id string) (*types.Machine, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(type, ''), status, limits, health_score,
			fault_probability, anomaly_score, COALESCE(location, ''), updated_at
		FROM machines WHERE id = $1
	`, id)
	m, err := scanMachine(row)
	if err != nil {
		return nil, fmt.Errorf("machine %q: %w", id, err)
	}
	return m, nil
}

// ListMachines returns all machine snapshots ordered by ID.
func (s *Store) ListMachines(ctx context.Context) ([]types.Machine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(type, ''), status, limits, health_score,
			fault_probability, anomaly_score, COALESCE(location, ''), updated_at
		FROM machines ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Machine
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// AppendReading inserts a sensor reading.
func (s *Store) AppendReading(ctx context.Context, r types.SensorReading) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sensor_readings (machine_id, vibration, temperature,
			acoustic_noise, load_pct, rpm, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.MachineID, r.Vibration, r.Temperature, r.AcousticNoise, r.Load, r.RPM, r.Timestamp)
	return err
}

// LatestReadings returns up to n of the newest readings, oldest first.
func (s *Store) LatestReadings(ctx context.Context, machineID string, n int) ([]types.SensorReading, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT machine_id, vibration, temperature, acoustic_noise, load_pct, rpm, timestamp
		FROM sensor_readings
		WHERE machine_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, machineID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var newestFirst []types.SensorReading
	for rows.Next() {
		var r types.SensorReading
		if err := rows.Scan(&r.MachineID, &r.Vibration, &r.Temperature,
			&r.AcousticNoise, &r.Load, &r.RPM, &r.Timestamp); err != nil {
			return nil, err
		}
		newestFirst = append(newestFirst, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	out := make([]types.SensorReading, len(newestFirst))
	for i, r := range newestFirst {
		out[len(newestFirst)-1-i] = r
	}
	return out, nil
}

// PutSparePart upserts a spare part snapshot.
func (s *Store) PutSparePart(ctx context.Context, p types.SparePart) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO spare_parts (id, name, current_quantity, min_quantity,
			max_quantity, lead_time_days, status, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name             = EXCLUDED.name,
			current_quantity = EXCLUDED.current_quantity,
			min_quantity     = EXCLUDED.min_quantity,
			max_quantity     = EXCLUDED.max_quantity,
			lead_time_days   = EXCLUDED.lead_time_days,
			status           = EXCLUDED.status,
			supplier_id      = EXCLUDED.supplier_id
	`, p.ID, p.Name, p.CurrentQuantity, p.MinQuantity, p.MaxQuantity,
		p.LeadTimeDays, string(p.Status), p.SupplierID)
	return err
}

// GetSparePart retrieves a spare part snapshot by ID.
func (s *Store) GetSparePart(ctx context.Context, id string) (*types.SparePart, error) {
	var p types.SparePart
	var status string
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, current_quantity, min_quantity, max_quantity,
			lead_time_days, status, COALESCE(supplier_id, '')
		FROM spare_parts WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.CurrentQuantity, &p.MinQuantity,
		&p.MaxQuantity, &p.LeadTimeDays, &status, &p.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("spare part %q: %w", id, mapErr(err))
	}
	p.Status = types.PartStatus(status)
	return &p, nil
}

// PutSupplier upserts a supplier snapshot.
func (s *Store) PutSupplier(ctx context.Context, sup types.Supplier) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO suppliers (id, name, reliability_score,
			average_lead_time_days, on_time_delivery_rate)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name                   = EXCLUDED.name,
			reliability_score      = EXCLUDED.reliability_score,
			average_lead_time_days = EXCLUDED.average_lead_time_days,
			on_time_delivery_rate  = EXCLUDED.on_time_delivery_rate
	`, sup.ID, sup.Name, sup.ReliabilityScore, sup.AverageLeadTimeDays, sup.OnTimeDeliveryRate)
	return err
}

// GetSupplier retrieves a supplier snapshot by ID.
func (s *Store) GetSupplier(ctx context.Context, id string) (*types.Supplier, error) {
	var sup types.Supplier
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, reliability_score, average_lead_time_days, on_time_delivery_rate
		FROM suppliers WHERE id = $1
	`, id).Scan(&sup.ID, &sup.Name, &sup.ReliabilityScore,
		&sup.AverageLeadTimeDays, &sup.OnTimeDeliveryRate)
	if err != nil {
		return nil, fmt.Errorf("supplier %q: %w", id, mapErr(err))
	}
	return &sup, nil
}

func scanMachine(row pgx.Row) (*types.Machine, error) {
	var m types.Machine
	var status string
	var limitsJSON []byte
	if err := row.Scan(&m.ID, &m.Name, &m.Type, &status, &limitsJSON,
		&m.HealthScore, &m.FaultProbability, &m.AnomalyScore,
		&m.Location, &m.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	m.Status = types.MachineStatus(status)
	if len(limitsJSON) > 0 {
		if err := json.Unmarshal(limitsJSON, &m.Limits); err != nil {
			return nil, fmt.Errorf("decoding machine limits: %w", err)
		}
	}
	return &m, nil
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
