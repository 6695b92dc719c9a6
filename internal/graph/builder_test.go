package graph

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dbsmedya/fieldwalk/internal/schema"
)

func shopRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.MustDefine("Order",
		schema.FieldSpec{Name: "id", Type: "int64"},
		schema.FieldSpec{Name: "customer", Type: "Customer"},
		schema.FieldSpec{Name: "billing", Type: "Address"},
		schema.FieldSpec{Name: "lines", Type: "[]Line"},
	)
	reg.MustDefine("Customer",
		schema.FieldSpec{Name: "name", Type: "string"},
		schema.FieldSpec{Name: "address", Type: "Address"},
	)
	reg.MustDefine("Address",
		schema.FieldSpec{Name: "city", Type: "string"},
	)
	reg.MustDefine("Line",
		schema.FieldSpec{Name: "sku", Type: "string"},
	)
	reg.MustDefine("Unused",
		schema.FieldSpec{Name: "x", Type: "int"},
	)
	return reg
}

func TestBuild(t *testing.T) {
	g, err := NewBuilder(shopRegistry()).Build("Order")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedNodes := []string{"Order", "Customer", "Address", "Line"}
	if !reflect.DeepEqual(g.order, expectedNodes) {
		t.Errorf("expected nodes %v, got %v", expectedNodes, g.order)
	}
	if g.HasNode("Unused") {
		t.Error("unreachable types should not be in a rooted graph")
	}

	if g.Nodes["Order"].FieldCount != 4 {
		t.Errorf("expected Order FieldCount 4, got %d", g.Nodes["Order"].FieldCount)
	}
	if !g.Nodes["Order"].IsRoot {
		t.Error("Order should be the root")
	}

	if len(g.AllEdges()) != 4 {
		t.Errorf("expected 4 edges, got %d", len(g.AllEdges()))
	}
	if !reflect.DeepEqual(g.GetParents("Address"), []string{"Order", "Customer"}) {
		t.Errorf("unexpected Address parents: %v", g.GetParents("Address"))
	}

	meta := g.GetEdgeMeta("Order", "Line")
	if meta == nil || !meta.Array || meta.Fields[0] != "lines" {
		t.Errorf("unexpected Order->Line metadata: %+v", meta)
	}
}

func TestBuildAll(t *testing.T) {
	g, err := BuildFromRegistry(shopRegistry(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Root != "" {
		t.Errorf("expected no root, got %q", g.Root)
	}
	expectedNodes := []string{"Order", "Customer", "Address", "Line", "Unused"}
	if !reflect.DeepEqual(g.order, expectedNodes) {
		t.Errorf("expected nodes %v, got %v", expectedNodes, g.order)
	}

	order, err := g.DependencyOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	position := make(map[string]int)
	for i, n := range order {
		position[n] = i
	}
	if position["Address"] > position["Customer"] || position["Customer"] > position["Order"] {
		t.Errorf("referenced types must come first: %v", order)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		reg     func() *schema.Registry
		root    string
		wantErr string
	}{
		{
			name:    "nil registry",
			reg:     func() *schema.Registry { return nil },
			root:    "Order",
			wantErr: "registry is nil",
		},
		{
			name:    "empty root",
			reg:     shopRegistry,
			root:    "",
			wantErr: "root type is not specified",
		},
		{
			name:    "unknown root",
			reg:     shopRegistry,
			root:    "Invoice",
			wantErr: `cannot resolve type "Invoice"`,
		},
		{
			name: "unresolved field",
			reg: func() *schema.Registry {
				reg := schema.NewRegistry()
				reg.MustDefine("Order", schema.FieldSpec{Name: "payer", Type: "Payer"})
				return reg
			},
			root:    "Order",
			wantErr: "failed to resolve references",
		},
		{
			name: "cycle",
			reg: func() *schema.Registry {
				reg := schema.NewRegistry()
				reg.MustDefine("Employee",
					schema.FieldSpec{Name: "name", Type: "string"},
					schema.FieldSpec{Name: "manager", Type: "Employee"},
				)
				return reg
			},
			root:    "Employee",
			wantErr: "graph validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(tt.reg()).Build(tt.root)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error to contain %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestBuildAllDetectsCycle(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustDefine("A", schema.FieldSpec{Name: "b", Type: "[]B"})
	reg.MustDefine("B", schema.FieldSpec{Name: "a", Type: "A"})

	_, err := NewBuilder(reg).BuildAll()
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected cycle error, got %v", err)
	}

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if !reflect.DeepEqual(cycleErr.Info.CyclePath, []string{"A", "B", "A"}) {
		t.Errorf("unexpected cycle path: %v", cycleErr.Info.CyclePath)
	}
}

func TestReferencesAllowsCycles(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustDefine("A", schema.FieldSpec{Name: "b", Type: "[]B"})
	reg.MustDefine("B", schema.FieldSpec{Name: "a", Type: "A"})

	g, err := NewBuilder(reg).References()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(g.GetChildren("A"), []string{"B"}) || !reflect.DeepEqual(g.GetParents("A"), []string{"B"}) {
		t.Errorf("unexpected edges: %v", g.AllEdges())
	}
	if !errors.Is(g.Validate(), ErrCycleDetected) {
		t.Error("expected Validate to report the cycle")
	}
}

func TestBuildAllUnresolved(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustDefine("A", schema.FieldSpec{Name: "b", Type: "B"})

	_, err := NewBuilder(reg).BuildAll()
	var tre *schema.TypeResolutionError
	if !errors.As(err, &tre) {
		t.Fatalf("expected TypeResolutionError, got %v", err)
	}
}
