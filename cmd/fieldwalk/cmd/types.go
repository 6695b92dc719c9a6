package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/fieldwalk/internal/graph"
	"github.com/dbsmedya/fieldwalk/internal/schema"
)

var typesSorted bool

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List record types defined in configuration",
	Long: `Types displays every record type declared in the configuration file
with its field count, the record types it references and the record
types that reference it. Array references are marked with "[]".

With --sorted, referenced types are listed before the types that use them.

Example:
  fieldwalk types --config fieldwalk.yaml --sorted`,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().BoolVar(&typesSorted, "sorted", false,
		"List referenced types before the types that use them")

	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	cfg, log, reg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	g, err := graph.NewBuilder(reg).References()
	if err != nil {
		return fmt.Errorf("failed to build type graph: %w", err)
	}

	types := reg.Types()
	if typesSorted {
		types, err = dependencyOrdered(reg, g)
		if err != nil {
			return err
		}
	}

	log.Debugf("Listing %d record types", len(types))
	return newRenderer(cfg).Types(types, g)
}

// dependencyOrdered returns the registered types with referenced types first.
func dependencyOrdered(reg *schema.Registry, g *graph.Graph) ([]*schema.RecordType, error) {
	order, err := g.DependencyOrder()
	if err != nil {
		return nil, err
	}

	types := make([]*schema.RecordType, 0, len(order))
	for _, name := range order {
		rt, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		types = append(types, rt)
	}
	return types, nil
}
