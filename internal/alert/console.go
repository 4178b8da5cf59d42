package alert

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// ConsoleSink writes alerts to the terminal with color.
type ConsoleSink struct{}

// NewConsoleSink creates a new console alert sink.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{}
}

// Name returns the sink identifier.
func (s *ConsoleSink) Name() string { return "console" }

// Send writes an alert to the terminal with color-coded severity.
func (s *ConsoleSink) Send(_ context.Context, alert types.Alert) error {
	var prefix string
	switch alert.Severity {
	case types.SeverityCritical:
		prefix = color.RedString("[CRITICAL]")
	case types.SeverityWarning:
		prefix = color.YellowString("[WARN]")
	default:
		prefix = color.CyanString("[INFO]")
	}

	switch {
	case alert.MachineID != "":
		fmt.Printf("%s [%s] %s\n", prefix, alert.MachineID, alert.Message)
	case alert.PartID != "":
		fmt.Printf("%s [%s] %s\n", prefix, alert.PartID, alert.Message)
	default:
		fmt.Printf("%s %s\n", prefix, alert.Message)
	}
	return nil
}
