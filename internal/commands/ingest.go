package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/plantpulse/plantpulse/internal/config"
	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// NewIngestCmd creates the ingest command group.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load machines, inventory, or sensor readings into the store",
	}
	cmd.AddCommand(newIngestReadingsCmd(), newIngestMachinesCmd(), newIngestInventoryCmd())
	return cmd
}

func newIngestReadingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "readings [file]",
		Short: "Append sensor readings from a JSON-lines file (or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runIngestReadings(path)
		},
	}
}

func runIngestReadings(path string) error {
	var in io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening readings file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	return withStore(func(ctx context.Context, st store.Store) error {
		count := 0
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var r types.SensorReading
			if err := json.Unmarshal(line, &r); err != nil {
				return fmt.Errorf("parsing reading %d: %w", count+1, err)
			}
			if r.MachineID == "" {
				return fmt.Errorf("reading %d: machineId is required", count+1)
			}
			if r.Timestamp.IsZero() {
				r.Timestamp = time.Now().UTC()
			}
			if err := st.AppendReading(ctx, r); err != nil {
				return fmt.Errorf("storing reading %d: %w", count+1, err)
			}
			count++
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		color.Green("  ✓ Ingested %d readings", count)
		return nil
	})
}

func newIngestMachinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "machines <file>",
		Short: "Load machine definitions from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestMachines(args[0])
		},
	}
}

func runIngestMachines(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading machines file: %w", err)
	}

	var doc struct {
		Machines []struct {
			ID       string              `yaml:"id"`
			Name     string              `yaml:"name"`
			Type     string              `yaml:"type"`
			Location string              `yaml:"location"`
			Limits   types.MachineLimits `yaml:"limits"`
		} `yaml:"machines"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing machines file: %w", err)
	}

	return withStore(func(ctx context.Context, st store.Store) error {
		for _, m := range doc.Machines {
			if m.ID == "" {
				return fmt.Errorf("machine entry missing id")
			}
			machine := types.Machine{
				ID:        m.ID,
				Name:      m.Name,
				Type:      m.Type,
				Status:    types.MachineOperational,
				Limits:    m.Limits,
				Location:  m.Location,
				UpdatedAt: time.Now().UTC(),
			}
			if existing, err := st.GetMachine(ctx, m.ID); err == nil {
				// Re-ingesting definitions must not reset computed scores.
				machine.Status = existing.Status
				machine.HealthScore = existing.HealthScore
				machine.FaultProbability = existing.FaultProbability
				machine.AnomalyScore = existing.AnomalyScore
			}
			if err := st.PutMachine(ctx, machine); err != nil {
				return fmt.Errorf("storing machine %q: %w", m.ID, err)
			}
		}
		color.Green("  ✓ Loaded %d machines", len(doc.Machines))
		return nil
	})
}

func newIngestInventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory <file>",
		Short: "Load spare parts and suppliers from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestInventory(args[0])
		},
	}
}

func runIngestInventory(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading inventory file: %w", err)
	}

	var doc struct {
		Suppliers []types.Supplier  `yaml:"suppliers"`
		Parts     []inventoryPartIn `yaml:"parts"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing inventory file: %w", err)
	}

	return withStore(func(ctx context.Context, st store.Store) error {
		for _, sup := range doc.Suppliers {
			if sup.ID == "" {
				return fmt.Errorf("supplier entry missing id")
			}
			if err := st.PutSupplier(ctx, sup); err != nil {
				return fmt.Errorf("storing supplier %q: %w", sup.ID, err)
			}
		}
		for _, p := range doc.Parts {
			if p.ID == "" {
				return fmt.Errorf("part entry missing id")
			}
			if err := st.PutSparePart(ctx, p.toPart()); err != nil {
				return fmt.Errorf("storing part %q: %w", p.ID, err)
			}
		}
		color.Green("  ✓ Loaded %d suppliers, %d parts", len(doc.Suppliers), len(doc.Parts))
		return nil
	})
}

// inventoryPartIn mirrors SparePart with yaml tags for ingest files.
type inventoryPartIn struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	CurrentQuantity int     `yaml:"currentQuantity"`
	MinQuantity     int     `yaml:"minQuantity"`
	MaxQuantity     int     `yaml:"maxQuantity"`
	LeadTimeDays    float64 `yaml:"leadTimeDays"`
	Status          string  `yaml:"status"`
	SupplierID      string  `yaml:"supplierId"`
}

func (p inventoryPartIn) toPart() types.SparePart {
	status := types.PartStatus(p.Status)
	if status == "" {
		status = types.PartInStock
	}
	return types.SparePart{
		ID:              p.ID,
		Name:            p.Name,
		CurrentQuantity: p.CurrentQuantity,
		MinQuantity:     p.MinQuantity,
		MaxQuantity:     p.MaxQuantity,
		LeadTimeDays:    p.LeadTimeDays,
		Status:          status,
		SupplierID:      p.SupplierID,
	}
}

// withStore loads config, opens the configured backend, runs fn, and
// closes the backend.
func withStore(fn func(ctx context.Context, st store.Store) error) error {
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

	return fn(ctx, st)
}
