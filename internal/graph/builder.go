package graph

import (
	"fmt"

	"github.com/dbsmedya/fieldwalk/internal/schema"
)

// Builder constructs a dependency graph from a schema registry.
type Builder struct {
	reg *schema.Registry
}

// NewBuilder creates a new graph builder for the given registry.
func NewBuilder(reg *schema.Registry) *Builder {
	return &Builder{reg: reg}
}

// Build constructs the graph of the types reachable from root, following
// composite fields in declaration order.
func (b *Builder) Build(root string) (*Graph, error) {
	if b.reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if root == "" {
		return nil, fmt.Errorf("root type is not specified")
	}

	rt, err := b.reg.Lookup(root)
	if err != nil {
		return nil, err
	}

	g := NewGraph(root)
	g.Nodes[root].FieldCount = rt.NumField()

	queue := []*schema.RecordType{rt}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		added, err := b.addReferences(g, cur)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve references: %w", err)
		}
		queue = append(queue, added...)
	}

	// Fail fast on cycles
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("graph validation failed: %w", err)
	}

	return g, nil
}

// BuildAll constructs the graph of every registered type and rejects cycles.
func (b *Builder) BuildAll() (*Graph, error) {
	g, err := b.References()
	if err != nil {
		return nil, err
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("graph validation failed: %w", err)
	}

	return g, nil
}

// References constructs the graph of every registered type without checking
// it for cycles. Listings use it so that a cyclic schema can still be shown.
func (b *Builder) References() (*Graph, error) {
	if b.reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}

	g := NewGraph("")
	for _, rt := range b.reg.Types() {
		g.AddNode(rt.Name, &Node{FieldCount: rt.NumField()})
	}
	for _, rt := range b.reg.Types() {
		if _, err := b.addReferences(g, rt); err != nil {
			return nil, fmt.Errorf("failed to resolve references: %w", err)
		}
	}

	return g, nil
}

// addReferences adds an edge for every composite field of rt and returns the
// record types that were not yet in the graph.
func (b *Builder) addReferences(g *Graph, rt *schema.RecordType) ([]*schema.RecordType, error) {
	var added []*schema.RecordType
	for _, f := range rt.Fields {
		if f.IsScalar() {
			continue
		}

		target, err := b.reg.Resolve(f)
		if err != nil {
			return nil, err
		}

		if !g.HasNode(target.Name) {
			g.AddNode(target.Name, &Node{FieldCount: target.NumField()})
			added = append(added, target)
		}
		g.AddEdgeWithMeta(rt.Name, target.Name, f.Name, f.IsArray())
	}
	return added, nil
}

// BuildFromRegistry is a convenience function that builds the graph rooted at
// root. An empty root builds the whole-schema graph.
func BuildFromRegistry(reg *schema.Registry, root string) (*Graph, error) {
	if root == "" {
		return NewBuilder(reg).BuildAll()
	}
	return NewBuilder(reg).Build(root)
}
