package schema

import (
	"fmt"

	"github.com/dbsmedya/fieldwalk/internal/config"
)

// BuildFromConfig creates a registry from the schema section of the
// configuration. Scalars are registered first so that fields referring to
// them are classified as leaves.
func BuildFromConfig(cfg *config.SchemaConfig) (*Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("schema configuration is nil")
	}

	reg := NewRegistry(cfg.ScalarPrefixes...)

	for _, name := range cfg.Scalars {
		if err := reg.DefineScalar(name); err != nil {
			return nil, fmt.Errorf("failed to declare scalar: %w", err)
		}
	}

	for _, t := range cfg.Types {
		specs := make([]FieldSpec, 0, len(t.Fields))
		for _, f := range t.Fields {
			specs = append(specs, FieldSpec{Name: f.Name, Type: f.Type})
		}
		if _, err := reg.Define(t.Name, specs...); err != nil {
			return nil, fmt.Errorf("failed to declare type: %w", err)
		}
	}

	return reg, nil
}
