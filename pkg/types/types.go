// Package types defines the public domain types for the PlantPulse
// predictive-maintenance and supply-continuity engine.
package types

import "time"

// SensorReading is a single multivariate telemetry sample from a machine.
// Readings are ordered by timestamp; the engine consumes them oldest first.
type SensorReading struct {
	MachineID     string    `json:"machineId"`
	Vibration     float64   `json:"vibration"`     // mm/s
	Temperature   float64   `json:"temperature"`   // °C
	AcousticNoise float64   `json:"acousticNoise"` // dB
	Load          float64   `json:"load"`          // percent
	RPM           float64   `json:"rpm"`
	Timestamp     time.Time `json:"timestamp"`
}

// MachineLimits holds the per-machine operating caps. A zero value for any
// limit means the limit is unknown and the corresponding health and risk
// checks are skipped rather than defaulted.
type MachineLimits struct {
	MaxRPM         float64 `yaml:"maxRpm,omitempty" json:"maxRpm,omitempty"`
	MaxTemperature float64 `yaml:"maxTemperature,omitempty" json:"maxTemperature,omitempty"`
	MaxVibration   float64 `yaml:"maxVibration,omitempty" json:"maxVibration,omitempty"`
	MaxLoad        float64 `yaml:"maxLoad,omitempty" json:"maxLoad,omitempty"`
}

// Machine is a fully materialized machine snapshot. Scorers receive it by
// value and never reach back into storage.
type Machine struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Type             string        `json:"type,omitempty"`
	Status           MachineStatus `json:"status"`
	Limits           MachineLimits `json:"limits"`
	HealthScore      float64       `json:"healthScore"`
	FaultProbability float64       `json:"faultProbability"`
	AnomalyScore     float64       `json:"anomalyScore"`
	Location         string        `json:"location,omitempty"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// PredictionResult is the outcome of one fault-prediction invocation.
// It is produced fresh per call and never persisted by the engine itself.
type PredictionResult struct {
	MachineID        string        `json:"machineId"`
	FaultProbability float64       `json:"faultProbability"` // 0-100
	AnomalyScore     float64       `json:"anomalyScore"`     // 0-100
	HealthScore      float64       `json:"healthScore"`      // 0-100
	FailureWindow    FailureWindow `json:"predictedFailureWindow,omitempty"`
	AlertLevel       AlertLevel    `json:"alertLevel"`
	RiskFactors      []string      `json:"riskFactors"`
	Recommendations  []string      `json:"recommendations"`
	Timestamp        time.Time     `json:"timestamp"`
}

// SparePart is an inventory snapshot for a single spare part.
type SparePart struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	CurrentQuantity int        `json:"currentQuantity"`
	MinQuantity     int        `json:"minQuantity"` // reorder point
	MaxQuantity     int        `json:"maxQuantity"`
	LeadTimeDays    float64    `json:"leadTimeDays"`
	Status          PartStatus `json:"status"`
	SupplierID      string     `json:"supplierId,omitempty"`
}

// Supplier holds supplier performance metrics. A part may have no
// assigned supplier, in which case the assessor substitutes neutral
// defaults.
type Supplier struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	ReliabilityScore    float64 `json:"reliabilityScore"`    // 0-100
	AverageLeadTimeDays float64 `json:"averageLeadTimeDays"` // >= 0
	OnTimeDeliveryRate  float64 `json:"onTimeDeliveryRate"`  // 0-100
}

// SupplyRiskAssessment is the durable supply-continuity risk record for a
// spare part. At most one live assessment exists per part; recomputation
// overwrites rather than accumulates.
type SupplyRiskAssessment struct {
	ID                    string     `json:"id"`
	PartID                string     `json:"partId"`
	SupplierID            string     `json:"supplierId,omitempty"`
	RiskLevel             RiskLevel  `json:"riskLevel"`
	RiskScore             float64    `json:"riskScore"`           // 0-100
	PredictedDelayDays    float64    `json:"predictedDelayDays"`  // >= 0
	StockoutProbability   float64    `json:"stockoutProbability"` // 0-100
	EstimatedStockoutDate *time.Time `json:"estimatedStockoutDate,omitempty"`
	InventoryLevelPercent float64    `json:"inventoryLevelPercent"`
	SupplierReliability   float64    `json:"supplierReliability"`
	RecommendedAction     string     `json:"recommendedAction"`
	AllRecommendations    []string   `json:"allRecommendations"`
	Urgency               string     `json:"urgency"` // low, medium, high
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// Alert represents an alert event to be dispatched to configured sinks.
type Alert struct {
	ID        string                 `json:"id"`
	Severity  AlertSeverity          `json:"severity"`
	MachineID string                 `json:"machineId,omitempty"`
	PartID    string                 `json:"partId,omitempty"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
