// Package metrics exposes engine counters through OpenTelemetry.
package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("github.com/plantpulse/plantpulse")

	PredictionsTotal  = mustCounter("predictions_total", "Fault predictions computed")
	PredictionErrors  = mustCounter("prediction_errors", "Fault predictions that failed")
	AssessmentsTotal  = mustCounter("assessments_total", "Supply risk assessments computed")
	AssessmentErrors  = mustCounter("assessment_errors", "Supply risk assessments that failed")
	RiskUpserts       = mustCounter("risk_upserts_total", "Risk records written")
	RiskUpsertsFailed = mustCounter("risk_upserts_failed", "Risk record writes that failed")
	AlertsDispatched  = mustCounter("alerts_dispatched", "Alerts sent to sinks")
	AlertsFailed      = mustCounter("alerts_failed", "Alert sends that failed")
)

func mustCounter(name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		panic(err)
	}
	return c
}

// Inc adds one to a counter without attributes.
func Inc(ctx context.Context, c metric.Int64Counter) {
	c.Add(ctx, 1)
}
