package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/fieldwalk/internal/document"
	"github.com/dbsmedya/fieldwalk/internal/graph"
	"github.com/dbsmedya/fieldwalk/internal/logger"
	"github.com/dbsmedya/fieldwalk/internal/record"
	"github.com/dbsmedya/fieldwalk/internal/render"
	"github.com/dbsmedya/fieldwalk/internal/schema"
	"github.com/dbsmedya/fieldwalk/internal/walk"
)

var flattenType string

var flattenCmd = &cobra.Command{
	Use:   "flatten FILE...",
	Short: "Flatten YAML documents into rows of leaf values",
	Long: `Flatten reads records of the given type from YAML files and prints one
row per record with a column per leaf field.

Each file may hold several documents, and each document may be a single
mapping or a list of mappings. Absent keys print as empty cells.

Example:
  fieldwalk flatten --config fieldwalk.yaml --type Order orders.yaml
  fieldwalk flatten --type Order --format csv orders.yaml > orders.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFlatten,
}

func init() {
	flattenCmd.Flags().StringVarP(&flattenType, "type", "t", "",
		"Record type of the documents (required)")
	flattenCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(flattenCmd)
}

func runFlatten(cmd *cobra.Command, args []string) error {
	cfg, log, reg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	paths, rows, err := flattenFiles(reg, flattenType, args, log.WithType(flattenType))
	if err != nil {
		return err
	}

	t := &render.Table{Columns: paths, Rows: rows}
	return newRenderer(cfg).Render(t)
}

// flattenFiles loads every record in files and flattens it. It returns the
// dotted leaf paths and one row of values per record.
func flattenFiles(reg *schema.Registry, typeName string, files []string, log *logger.Logger) ([]string, [][]any, error) {
	// The walker does not detect cycles, so reject them first
	if _, err := graph.BuildFromRegistry(reg, typeName); err != nil {
		return nil, nil, fmt.Errorf("cannot flatten type %s: %w", typeName, err)
	}

	// Descriptors depend only on the schema
	header, err := walk.New(reg, record.NewMap(typeName, nil))
	if err != nil {
		return nil, nil, err
	}
	paths, err := header.Paths()
	if err != nil {
		return nil, nil, err
	}

	var records []*record.Map
	for _, f := range files {
		loaded, err := document.Load(f, typeName)
		if err != nil {
			return nil, nil, err
		}
		log.WithFile(f).Debugf("Loaded %d records", len(loaded))
		records = append(records, loaded...)
	}
	log.Infof("Loaded %d records from %d files", len(records), len(files))

	rows := make([][]any, 0, len(records))
	for i, rec := range records {
		p, err := walk.New(reg, rec)
		if err != nil {
			return nil, nil, err
		}

		values, err := p.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		rows = append(rows, values)
	}

	log.Debugf("Flattened %d records into %d columns", len(rows), len(paths))
	return paths, rows, nil
}
