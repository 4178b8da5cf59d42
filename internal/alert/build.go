package alert

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// FromPrediction converts a prediction into an alert, or nil when the
// alert level is green.
func FromPrediction(machine types.Machine, result types.PredictionResult) *types.Alert {
	var severity types.AlertSeverity
	switch result.AlertLevel {
	case types.AlertRed:
		severity = types.SeverityCritical
	case types.AlertYellow:
		severity = types.SeverityWarning
	default:
		return nil
	}

	msg := fmt.Sprintf("%s: fault probability %.1f%%, health %.1f",
		machine.Name, result.FaultProbability, result.HealthScore)
	if result.FailureWindow != "" {
		msg += fmt.Sprintf(", predicted failure window %s", result.FailureWindow)
	}

	return &types.Alert{
		ID:        ulid.Make().String(),
		Severity:  severity,
		MachineID: machine.ID,
		Message:   msg,
		Details: map[string]interface{}{
			"faultProbability": result.FaultProbability,
			"healthScore":      result.HealthScore,
			"anomalyScore":     result.AnomalyScore,
			"riskFactors":      result.RiskFactors,
		},
		Timestamp: time.Now().UTC(),
	}
}

// FromRiskAssessment converts a supply risk record into an alert, or nil
// when the risk level does not warrant one.
func FromRiskAssessment(part types.SparePart, rec types.SupplyRiskAssessment) *types.Alert {
	var severity types.AlertSeverity
	switch rec.RiskLevel {
	case types.RiskCritical:
		severity = types.SeverityCritical
	case types.RiskHigh:
		severity = types.SeverityWarning
	default:
		return nil
	}

	return &types.Alert{
		ID:       ulid.Make().String(),
		Severity: severity,
		PartID:   rec.PartID,
		Message: fmt.Sprintf("%s: supply risk %s (score %.1f), stockout probability %.1f%%",
			part.Name, rec.RiskLevel, rec.RiskScore, rec.StockoutProbability),
		Details: map[string]interface{}{
			"riskScore":           rec.RiskScore,
			"stockoutProbability": rec.StockoutProbability,
			"predictedDelayDays":  rec.PredictedDelayDays,
			"recommendedAction":   rec.RecommendedAction,
		},
		Timestamp: time.Now().UTC(),
	}
}
