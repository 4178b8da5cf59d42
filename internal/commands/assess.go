package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantpulse/plantpulse/internal/alert"
	"github.com/plantpulse/plantpulse/internal/config"
	"github.com/plantpulse/plantpulse/internal/metrics"
	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/internal/supply"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// NewAssessCmd creates the assess command.
func NewAssessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assess <part-id>",
		Short: "Compute and store the supply risk assessment for a spare part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(args[0])
		},
	}
}

func runAssess(partID string) error {
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

	part, err := st.GetSparePart(ctx, partID)
	if err != nil {
		return fmt.Errorf("part not found: %w", err)
	}

	// A part with no resolvable supplier is assessed with neutral
	// defaults rather than rejected.
	var supplier *types.Supplier
	if part.SupplierID != "" {
		supplier, err = st.GetSupplier(ctx, part.SupplierID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("fetching supplier: %w", err)
		}
	}

	assessor := supply.NewAssessor(st)
	rec, err := assessor.Assess(ctx, *part, supplier)
	if err != nil {
		return fmt.Errorf("assessing: %w", err)
	}

	if a := alert.FromRiskAssessment(*part, *rec); a != nil {
		dispatcher.Dispatch(ctx, *a)
	}

	printAssessment(*part, *rec)
	return nil
}

func printAssessment(part types.SparePart, rec types.SupplyRiskAssessment) {
	bold := color.New(color.Bold)
	_, _ = bold.Printf("Supply risk: %s (%s)\n", part.Name, part.ID)

	levelStr := string(rec.RiskLevel)
	switch rec.RiskLevel {
	case types.RiskCritical:
		levelStr = color.RedString(levelStr)
	case types.RiskHigh:
		levelStr = color.RedString(levelStr)
	case types.RiskMedium:
		levelStr = color.YellowString(levelStr)
	default:
		levelStr = color.GreenString(levelStr)
	}

	fmt.Printf("  Risk level:           %s (score %.2f, urgency %s)\n", levelStr, rec.RiskScore, rec.Urgency)
	fmt.Printf("  Predicted delay:      %.2f days\n", rec.PredictedDelayDays)
	fmt.Printf("  Stockout probability: %.2f%%\n", rec.StockoutProbability)
	fmt.Printf("  Inventory level:      %.2f%% of reorder point\n", rec.InventoryLevelPercent)
	if rec.EstimatedStockoutDate != nil {
		fmt.Printf("  Estimated stockout:   %s\n", rec.EstimatedStockoutDate.Format(time.DateOnly))
	}

	if len(rec.AllRecommendations) > 0 {
		fmt.Println()
		_, _ = bold.Println("  Recommendations:")
		for _, r := range rec.AllRecommendations {
			fmt.Printf("    - %s\n", r)
		}
	}
	fmt.Println()
}
