package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/fieldwalk/internal/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and schema",
	Long: `Validate checks the configuration file and the record types it declares.

Checks performed:
  - Configuration syntax and required fields
  - Every composite field refers to a declared record type
  - No record type refers back to itself, directly or indirectly

Database settings are only checked when the export section names a table.

Example:
  fieldwalk validate --config fieldwalk.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, log, reg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Starting validation checks...")

	fmt.Fprintf(outputWriter, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(outputWriter, "Config file: %s\n", GetConfigFile())
	fmt.Fprintf(outputWriter, "Record types: %d (%s)\n\n", reg.Len(), strings.Join(cfg.ListTypes(), ", "))

	if cfg.Export.Table != "" {
		if err := cfg.ValidateExport(); err != nil {
			fmt.Fprintf(outputWriter, "❌ Export settings invalid: %v\n", err)
			return fmt.Errorf("validation failed")
		}
		fmt.Fprintf(outputWriter, "✅ Export settings\n")
	}

	if err := reg.Check(); err != nil {
		fmt.Fprintf(outputWriter, "❌ Unresolved references: %v\n", err)
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintf(outputWriter, "✅ All references resolve\n")

	g, err := graph.NewBuilder(reg).References()
	if err != nil {
		fmt.Fprintf(outputWriter, "❌ %v\n", err)
		return fmt.Errorf("validation failed")
	}
	if err := g.Validate(); err != nil {
		var cycle *graph.CycleError
		if !errors.As(err, &cycle) {
			fmt.Fprintf(outputWriter, "❌ %v\n", err)
			return fmt.Errorf("validation failed")
		}
		printCycle(cycle.Info)
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintf(outputWriter, "✅ No reference cycles (%d references between types)\n\n", len(g.AllEdges()))

	fmt.Fprintln(outputWriter, "=== Validation Complete ===")
	return nil
}

func printCycle(info *graph.CycleInfo) {
	fmt.Fprintf(outputWriter, "❌ Reference cycle: %d of %d types cannot be expanded\n",
		len(info.UnprocessedNodes), info.TotalNodes)
	fmt.Fprintf(outputWriter, "   Cycle path: %s\n", strings.Join(info.CyclePath, " -> "))
	fmt.Fprintf(outputWriter, "   Types in cycle: %s\n", strings.Join(info.CycleParticipants, ", "))
	if blocked := info.Blocked(); len(blocked) > 0 {
		fmt.Fprintf(outputWriter, "   Types blocked by cycle: %s\n", strings.Join(blocked, ", "))
	}
}
