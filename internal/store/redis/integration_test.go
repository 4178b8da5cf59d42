//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantpulse/plantpulse/pkg/types"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	prefix := fmt.Sprintf("plantpulse-test-%d:", time.Now().UnixNano())
	s := NewFromClient(client, prefix)

	t.Cleanup(func() {
		var cursor uint64
		for {
			keys, next, err := client.Scan(ctx, cursor, prefix+"*", 100).Result()
			if err != nil {
				break
			}
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
		client.Close()
	})

	return s
}

func TestIntegration_MachineRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := types.Machine{
		ID:     "cnc-01",
		Name:   "CNC Mill 1",
		Status: types.MachineOperational,
		Limits: types.MachineLimits{MaxTemperature: 85, MaxVibration: 12},
	}
	require.NoError(t, s.PutMachine(ctx, m))

	got, err := s.GetMachine(ctx, "cnc-01")
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.Limits, got.Limits)

	list, err := s.ListMachines(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestIntegration_ReadingsOrderAndTrim(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		require.NoError(t, s.AppendReading(ctx, types.SensorReading{
			MachineID:   "cnc-01",
			Temperature: float64(50 + i),
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := s.LatestReadings(ctx, "cnc-01", 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, 60.0, got[0].Temperature)
	assert.Equal(t, 64.0, got[4].Temperature)
}

func TestIntegration_RiskUpsertPreservesIdentity(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	first := types.SupplyRiskAssessment{
		ID:        "rec-1",
		PartID:    "part-1",
		RiskLevel: types.RiskLow,
		RiskScore: 20,
		CreatedAt: created,
		UpdatedAt: created,
	}
	stored, err := s.UpsertRiskAssessment(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "rec-1", stored.ID)

	second := first
	second.ID = "rec-2"
	second.RiskLevel = types.RiskHigh
	second.RiskScore = 65
	second.UpdatedAt = created.Add(time.Hour)

	stored, err = s.UpsertRiskAssessment(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "rec-1", stored.ID)
	assert.Equal(t, types.RiskHigh, stored.RiskLevel)

	all, err := s.ListRiskAssessments(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
