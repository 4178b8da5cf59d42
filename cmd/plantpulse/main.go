package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantpulse/plantpulse/internal/commands"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "plantpulse",
		Short: "Predictive maintenance and supply continuity for plant equipment",
		Long: `PlantPulse scores machine telemetry for anomalies, health, and fault
probability, predicts failure windows, and tracks supply-chain risk for
spare parts: delivery delays, stockout probability, and a composite
risk score with recommended actions.`,
		Version: version,
	}

	root.AddCommand(
		commands.NewInitCmd(),
		commands.NewIngestCmd(),
		commands.NewPredictCmd(),
		commands.NewAssessCmd(),
		commands.NewStatusCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
