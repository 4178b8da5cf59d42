package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantpulse/plantpulse/internal/config"
	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var machineID string

	cmd := &cobra.Command{
		Use:   "status [machine-id]",
		Short: "Show machine health and supply risk overview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				machineID = args[0]
			}
			return runStatus(machineID)
		},
	}
	return cmd
}

func runStatus(machineID string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	st, stop, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer stop()

	if machineID != "" {
		return showMachine(ctx, st, machineID)
	}
	return showOverview(ctx, st)
}

func showOverview(ctx context.Context, st store.Store) error {
	machines, err := st.ListMachines(ctx)
	if err != nil {
		return fmt.Errorf("listing machines: %w", err)
	}

	bold := color.New(color.Bold)

	if len(machines) == 0 {
		fmt.Println("No machines registered.")
	} else {
		_, _ = bold.Println("Machines:")
		for _, m := range machines {
			fmt.Printf("  %-20s %-14s health=%-6.1f fault=%-6.1f %s\n",
				m.ID, colorStatus(m.Status), m.HealthScore, m.FaultProbability, m.Name)
		}
		fmt.Println()
	}

	risks, err := st.ListRiskAssessments(ctx, 0)
	if err != nil {
		return fmt.Errorf("listing risk assessments: %w", err)
	}
	if len(risks) > 0 {
		_, _ = bold.Println("Supply risk:")
		for _, r := range risks {
			fmt.Printf("  %-24s %-10s score=%-6.1f stockout=%.1f%%\n",
				r.PartID, colorRisk(r.RiskLevel), r.RiskScore, r.StockoutProbability)
		}
		fmt.Println()
	}
	return nil
}

func showMachine(ctx context.Context, st store.Store, id string) error {
	m, err := st.GetMachine(ctx, id)
	if err != nil {
		return fmt.Errorf("machine not found: %w", err)
	}

	bold := color.New(color.Bold)
	_, _ = bold.Printf("Machine: %s (%s)\n", m.Name, m.ID)
	if m.Type != "" {
		fmt.Printf("  Type:     %s\n", m.Type)
	}
	if m.Location != "" {
		fmt.Printf("  Location: %s\n", m.Location)
	}
	fmt.Printf("  Status:   %s\n", colorStatus(m.Status))
	fmt.Printf("  Health:   %.2f\n", m.HealthScore)
	fmt.Printf("  Fault:    %.2f%%\n", m.FaultProbability)
	fmt.Printf("  Anomaly:  %.2f\n", m.AnomalyScore)
	fmt.Printf("  Updated:  %s\n", m.UpdatedAt.Format(time.RFC3339))

	readings, err := st.LatestReadings(ctx, id, 1)
	if err == nil && len(readings) > 0 {
		r := readings[0]
		fmt.Println()
		_, _ = bold.Println("  Latest reading:")
		fmt.Printf("    vibration=%.2f temperature=%.2f noise=%.2f load=%.2f rpm=%.0f (%s)\n",
			r.Vibration, r.Temperature, r.AcousticNoise, r.Load, r.RPM,
			r.Timestamp.Format(time.RFC3339))
	}
	fmt.Println()
	return nil
}

func colorStatus(s types.MachineStatus) string {
	switch s {
	case types.MachineCritical:
		return color.RedString(string(s))
	case types.MachineWarning:
		return color.YellowString(string(s))
	case types.MachineOffline, types.MachineMaintenance:
		return color.CyanString(string(s))
	default:
		return color.GreenString(string(s))
	}
}

func colorRisk(l types.RiskLevel) string {
	switch l {
	case types.RiskCritical, types.RiskHigh:
		return color.RedString(string(l))
	case types.RiskMedium:
		return color.YellowString(string(l))
	default:
		return color.GreenString(string(l))
	}
}
