package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantpulse/plantpulse/internal/alert"
	"github.com/plantpulse/plantpulse/internal/config"
	"github.com/plantpulse/plantpulse/internal/metrics"
	"github.com/plantpulse/plantpulse/internal/predict"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// NewPredictCmd creates the predict command.
func NewPredictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <machine-id>",
		Short: "Run fault prediction for a machine from its recent telemetry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(args[0])
		},
	}
}

func runPredict(machineID string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dispatcher, err := newDispatcher(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	shutdownMetrics, err := metrics.Setup(ctx, cfg.Metrics)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownMetrics(context.Background()) }()

	st, stop, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer stop()

	machine, err := st.GetMachine(ctx, machineID)
	if err != nil {
		return fmt.Errorf("machine not found: %w", err)
	}

	window, err := st.LatestReadings(ctx, machineID, cfg.Engine.HistoryWindow)
	if err != nil {
		return fmt.Errorf("fetching readings: %w", err)
	}

	predictor := predict.NewPredictor()
	result, err := predictor.Predict(ctx, machine.Limits, window)
	if err != nil {
		return fmt.Errorf("predicting: %w", err)
	}

	// Fold the prediction back into the machine snapshot.
	machine.HealthScore = result.HealthScore
	machine.FaultProbability = result.FaultProbability
	machine.AnomalyScore = result.AnomalyScore
	machine.Status = predict.MachineStatusFor(result.FaultProbability, result.HealthScore)
	machine.UpdatedAt = time.Now().UTC()
	if err := st.PutMachine(ctx, *machine); err != nil {
		return fmt.Errorf("updating machine snapshot: %w", err)
	}

	if a := alert.FromPrediction(*machine, *result); a != nil {
		dispatcher.Dispatch(ctx, *a)
	}

	printPrediction(*machine, *result)
	return nil
}

func printPrediction(machine types.Machine, result types.PredictionResult) {
	bold := color.New(color.Bold)
	_, _ = bold.Printf("Prediction: %s (%s)\n", machine.Name, machine.ID)

	levelStr := string(result.AlertLevel)
	switch result.AlertLevel {
	case types.AlertRed:
		levelStr = color.RedString(levelStr)
	case types.AlertYellow:
		levelStr = color.YellowString(levelStr)
	default:
		levelStr = color.GreenString(levelStr)
	}

	fmt.Printf("  Alert level:       %s\n", levelStr)
	fmt.Printf("  Fault probability: %.2f%%\n", result.FaultProbability)
	fmt.Printf("  Health score:      %.2f\n", result.HealthScore)
	fmt.Printf("  Anomaly score:     %.2f\n", result.AnomalyScore)
	if result.FailureWindow != "" {
		fmt.Printf("  Failure window:    %s\n", result.FailureWindow)
	}

	if len(result.RiskFactors) > 0 {
		fmt.Println()
		_, _ = bold.Println("  Risk factors:")
		for _, f := range result.RiskFactors {
			fmt.Printf("    - %s\n", f)
		}
	}
	if len(result.Recommendations) > 0 {
		fmt.Println()
		_, _ = bold.Println("  Recommendations:")
		for _, r := range result.Recommendations {
			fmt.Printf("    - %s\n", r)
		}
	}
	fmt.Println()
}
