package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// UpsertRiskAssessment atomically creates or overwrites the single risk
// record for a part. The conflict clause leaves id and created_at alone
// so the part keeps one stable record identity; RETURNING gives back the
// record as stored.
func (s *Store) UpsertRiskAssessment(ctx context.Context, rec types.SupplyRiskAssessment) (*types.SupplyRiskAssessment, error) {
	recsJSON, err := json.Marshal(rec.AllRecommendations)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendations: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO supply_risk (part_id, id, supplier_id, risk_level, risk_score,
			predicted_delay_days, stockout_probability, estimated_stockout_date,
			inventory_level_percent, supplier_reliability, recommended_action,
			all_recommendations, urgency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (part_id) DO UPDATE SET
			supplier_id             = EXCLUDED.supplier_id,
			risk_level              = EXCLUDED.risk_level,
			risk_score              = EXCLUDED.risk_score,
			predicted_delay_days    = EXCLUDED.predicted_delay_days,
			stockout_probability    = EXCLUDED.stockout_probability,
			estimated_stockout_date = EXCLUDED.estimated_stockout_date,
			inventory_level_percent = EXCLUDED.inventory_level_percent,
			supplier_reliability    = EXCLUDED.supplier_reliability,
			recommended_action      = EXCLUDED.recommended_action,
			all_recommendations     = EXCLUDED.all_recommendations,
			urgency                 = EXCLUDED.urgency,
			updated_at              = EXCLUDED.updated_at
		RETURNING part_id, id, COALESCE(supplier_id, ''), risk_level, risk_score,
			predicted_delay_days, stockout_probability, estimated_stockout_date,
			inventory_level_percent, supplier_reliability, recommended_action,
			all_recommendations, urgency, created_at, updated_at
	`, rec.PartID, rec.ID, rec.SupplierID, string(rec.RiskLevel), rec.RiskScore,
		rec.PredictedDelayDays, rec.StockoutProbability, rec.EstimatedStockoutDate,
		rec.InventoryLevelPercent, rec.SupplierReliability, rec.RecommendedAction,
		recsJSON, rec.Urgency, rec.CreatedAt, rec.UpdatedAt)

	stored, err := scanRisk(row)
	if err != nil {
		return nil, fmt.Errorf("risk upsert for part %q: %w", rec.PartID, err)
	}
	return stored, nil
}

// GetRiskAssessment retrieves the current risk record for a part.
func (s *Store) GetRiskAssessment(ctx context.Context, partID string) (*types.SupplyRiskAssessment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT part_id, id, COALESCE(supplier_id, ''), risk_level, risk_score,
			predicted_delay_days, stockout_probability, estimated_stockout_date,
			inventory_level_percent, supplier_reliability, recommended_action,
			all_recommendations, urgency, created_at, updated_at
		FROM supply_risk WHERE part_id = $1
	`, partID)
	rec, err := scanRisk(row)
	if err != nil {
		return nil, fmt.Errorf("risk assessment for part %q: %w", partID, mapErr(err))
	}
	return rec, nil
}

// ListRiskAssessments returns up to limit risk records ordered by part ID.
func (s *Store) ListRiskAssessments(ctx context.Context, limit int) ([]types.SupplyRiskAssessment, error) {
	q := `
		SELECT part_id, id, COALESCE(supplier_id, ''), risk_level, risk_score,
			predicted_delay_days, stockout_probability, estimated_stockout_date,
			inventory_level_percent, supplier_reliability, recommended_action,
			all_recommendations, urgency, created_at, updated_at
		FROM supply_risk ORDER BY part_id`
	args := []interface{}{}
	if limit > 0 {
		q += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.SupplyRiskAssessment
	for rows.Next() {
		rec, err := scanRisk(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanRisk(row pgx.Row) (*types.SupplyRiskAssessment, error) {
	var rec types.SupplyRiskAssessment
	var level string
	var stockoutDate *time.Time
	var recsJSON []byte
	if err := row.Scan(&rec.PartID, &rec.ID, &rec.SupplierID, &level, &rec.RiskScore,
		&rec.PredictedDelayDays, &rec.StockoutProbability, &stockoutDate,
		&rec.InventoryLevelPercent, &rec.SupplierReliability, &rec.RecommendedAction,
		&recsJSON, &rec.Urgency, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.RiskLevel = types.RiskLevel(level)
	rec.EstimatedStockoutDate = stockoutDate
	if len(recsJSON) > 0 {
		if err := json.Unmarshal(recsJSON, &rec.AllRecommendations); err != nil {
			return nil, fmt.Errorf("decoding recommendations: %w", err)
		}
	}
	return &rec, nil
}
