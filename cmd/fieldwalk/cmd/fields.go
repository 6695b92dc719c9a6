package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/fieldwalk/internal/graph"
	"github.com/dbsmedya/fieldwalk/internal/record"
	"github.com/dbsmedya/fieldwalk/internal/walk"
)

var (
	fieldsType  string
	fieldsDebug bool
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Show the expanded field list of a record type",
	Long: `Fields walks a record type depth-first and prints every field it
reaches, in the order the walker emits them.

Composite fields are listed before the fields they expand into. The table
format indents each field by its nesting depth; json and csv print the full
dotted path instead.

Example:
  fieldwalk fields --config fieldwalk.yaml --type Order`,
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().StringVarP(&fieldsType, "type", "t", "",
		"Record type to expand (required)")
	fieldsCmd.MarkFlagRequired("type")
	fieldsCmd.Flags().BoolVar(&fieldsDebug, "debug", false,
		"Dump the raw field descriptors")

	rootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, args []string) error {
	cfg, log, reg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	log = log.WithType(fieldsType)

	// The walker does not detect cycles, so reject them first
	if _, err := graph.BuildFromRegistry(reg, fieldsType); err != nil {
		return fmt.Errorf("cannot expand type %s: %w", fieldsType, err)
	}

	// Descriptors depend only on the schema, so an empty record will do
	p, err := walk.New(reg, record.NewMap(fieldsType, nil))
	if err != nil {
		return err
	}

	entries, err := p.Entries()
	if err != nil {
		return err
	}
	root := p.RootType()
	log.Debugf("Expanded %d fields from the %d declared on %s", len(entries), root.NumField(), root.Name)

	if fieldsDebug {
		dump := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		dump.Fdump(outputWriter, entries)
		return nil
	}

	return newRenderer(cfg).Descriptors(entries)
}
