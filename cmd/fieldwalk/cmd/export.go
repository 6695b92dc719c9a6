package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/fieldwalk/internal/database"
	"github.com/dbsmedya/fieldwalk/internal/export"
)

var (
	exportType  string
	exportTable string
)

var exportCmd = &cobra.Command{
	Use:   "export FILE...",
	Short: "Insert flattened records into a MySQL table",
	Long: `Export flattens records of the given type from YAML files and inserts
them into the destination table, one column per leaf field.

Rows are inserted in batches inside a single transaction. If any batch
fails, or the command is interrupted, nothing is written.

Column names are the dotted field paths with dots replaced by underscores,
so "customer.address.city" becomes customer_address_city.

Example:
  fieldwalk export --config fieldwalk.yaml --type Order --table orders_flat orders.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportType, "type", "t", "",
		"Record type of the documents (required)")
	exportCmd.MarkFlagRequired("type")
	exportCmd.Flags().StringVar(&exportTable, "table", "",
		"Override destination table (export.table)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, reg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if exportTable != "" {
		cfg.Export.Table = exportTable
	}
	if err := cfg.ValidateExport(); err != nil {
		return err
	}

	log = log.WithType(exportType)

	paths, rows, err := flattenFiles(reg, exportType, args, log)
	if err != nil {
		return err
	}

	ctx, stop := database.SetupSignalHandler(context.Background(), func(sig os.Signal) {
		log.Warnf("Received %s, aborting export", sig)
	})
	defer stop()

	dbManager := database.NewManager(&cfg.Destination)
	if err := dbManager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to destination: %w", err)
	}
	defer dbManager.Close()

	exporter, err := export.New(dbManager.DB, export.Options{
		Table:       cfg.Export.Table,
		BatchSize:   cfg.Export.BatchSize,
		CreateTable: cfg.Export.CreateTable,
	}, log)
	if err != nil {
		return err
	}

	stats, err := exporter.Export(ctx, paths, rows)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"rows":    stats.Rows,
		"batches": stats.Batches,
		"files":   len(args),
	}).Debug("Export finished")

	fmt.Fprintf(outputWriter, "Exported %d rows (%d columns) to %s in %d batches, duration: %s\n",
		stats.Rows, stats.Columns, cfg.Export.Table, stats.Batches, stats.Duration)
	return nil
}
