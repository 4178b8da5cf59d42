package types

// MachineStatus represents the operating state of a machine.
type MachineStatus string

// MachineStatus values enumerate the possible machine operating states.
const (
	MachineOperational MachineStatus = "operational"
	MachineWarning     MachineStatus = "warning"
	MachineCritical    MachineStatus = "critical"
	MachineMaintenance MachineStatus = "maintenance"
	MachineOffline     MachineStatus = "offline"
)

// AlertLevel is the tri-level severity attached to a fault prediction.
type AlertLevel string

const (
	AlertGreen  AlertLevel = "green"
	AlertYellow AlertLevel = "yellow"
	AlertRed    AlertLevel = "red"
)

// FailureWindow is the coarse time-to-failure bucket derived from fault
// probability. The empty value means no failure is predicted.
type FailureWindow string

// FailureWindow values, from least to most urgent.
const (
	WindowNone      FailureWindow = ""
	WindowTwoWeeks  FailureWindow = "1-2 weeks"
	WindowWeek      FailureWindow = "3-7 days"
	WindowTwoDays   FailureWindow = "24-48 hours"
	WindowImmediate FailureWindow = "0-24 hours"
)

// PartStatus represents the inventory state of a spare part.
type PartStatus string

// PartStatus values enumerate the possible spare part inventory states.
const (
	PartInStock      PartStatus = "in_stock"
	PartLowStock     PartStatus = "low_stock"
	PartOutOfStock   PartStatus = "out_of_stock"
	PartOnOrder      PartStatus = "on_order"
	PartDiscontinued PartStatus = "discontinued"
)

// RiskLevel is the coarse bucket for a supply-continuity risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// AlertType defines the alert sink type.
type AlertType string

// AlertType values enumerate the supported alert sink backends.
const (
	AlertConsole AlertType = "console"
	AlertWebhook AlertType = "webhook"
	AlertFile    AlertType = "file"
)

// AlertSeverity classifies dispatched alerts.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)
