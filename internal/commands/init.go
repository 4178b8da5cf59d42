package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantpulse/plantpulse/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [project-name]",
		Short: "Initialize a new PlantPulse project",
		Long:  "Creates project scaffolding with a starter config and sample plant data.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0])
		},
	}
}

func runInit(projectName string) error {
	bold := color.New(color.Bold)
	_, _ = bold.Printf("Initializing PlantPulse project: %s\n", projectName)

	if err := os.MkdirAll(projectName, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	if err := config.Save(projectName, config.Default()); err != nil {
		return err
	}

	machinesContent := `# Machine definitions loaded with: plantpulse ingest machines machines.yaml
machines:
  - id: cnc-01
    name: CNC Mill 1
    type: cnc_mill
    location: "Bay A"
    limits:
      maxRpm: 8000
      maxTemperature: 85
      maxVibration: 12
      maxLoad: 100
  - id: press-01
    name: Hydraulic Press 1
    type: hydraulic_press
    location: "Bay B"
    limits:
      maxTemperature: 70
      maxVibration: 8
      maxLoad: 100
`
	if err := os.WriteFile(filepath.Join(projectName, "machines.yaml"), []byte(machinesContent), 0o644); err != nil {
		return fmt.Errorf("writing machines.yaml: %w", err)
	}

	inventoryContent := `# Inventory snapshot loaded with: plantpulse ingest inventory inventory.yaml
suppliers:
  - id: sup-acme
    name: Acme Industrial
    reliabilityScore: 88
    averageLeadTimeDays: 12
    onTimeDeliveryRate: 92
parts:
  - id: part-bearing-6204
    name: "Bearing 6204"
    currentQuantity: 14
    minQuantity: 10
    maxQuantity: 60
    leadTimeDays: 12
    status: in_stock
    supplierId: sup-acme
  - id: part-belt-b42
    name: "Drive Belt B42"
    currentQuantity: 3
    minQuantity: 8
    maxQuantity: 40
    leadTimeDays: 18
    status: low_stock
    supplierId: sup-acme
`
	if err := os.WriteFile(filepath.Join(projectName, "inventory.yaml"), []byte(inventoryContent), 0o644); err != nil {
		return fmt.Errorf("writing inventory.yaml: %w", err)
	}

	color.Green("  ✓ Project scaffolded")

	fmt.Println()
	_, _ = bold.Println("Next steps:")
	fmt.Printf("  cd %s\n", projectName)
	fmt.Println("  plantpulse ingest machines machines.yaml")
	fmt.Println("  plantpulse ingest inventory inventory.yaml")
	fmt.Println("  plantpulse ingest readings readings.jsonl")
	fmt.Println("  plantpulse predict cnc-01")
	return nil
}
