// Package document loads data files into root records.
//
// A file holds one or more YAML documents (JSON is accepted as YAML). Each
// document is either a single mapping or a sequence of mappings; every
// mapping becomes one root record of the requested type.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/fieldwalk/internal/record"
)

// Load reads every record in the file at path.
func Load(path, typeName string) ([]*record.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	records, err := Decode(f, typeName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Decode reads every record from r.
func Decode(r io.Reader, typeName string) ([]*record.Map, error) {
	dec := yaml.NewDecoder(r)

	var records []*record.Map
	for doc := 0; ; doc++ {
		var raw any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %d: %w", doc, err)
		}

		switch v := raw.(type) {
		case nil:
			// empty document
		case map[string]any:
			records = append(records, record.NewMap(typeName, v))
		case []any:
			for i, item := range v {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("document %d item %d: expected a mapping, got %T", doc, i, item)
				}
				records = append(records, record.NewMap(typeName, m))
			}
		default:
			return nil, fmt.Errorf("document %d: expected a mapping or a list of mappings, got %T", doc, raw)
		}
	}

	return records, nil
}
