package schema

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pkgPath = "github.com/dbsmedya/fieldwalk/internal/schema"

type testStatus string

type testAddress struct {
	Street string
	City   string
}

type testCustomer struct {
	Name    string `fieldwalk:"name"`
	Address *testAddress
	Tags    []string
}

type testLine struct {
	SKU string
	Qty int
}

type testOrder struct {
	ID       int64
	Customer testCustomer
	Lines    []testLine
	Status   testStatus
	PlacedAt time.Time
	Note     string `fieldwalk:"-"`
	internal int
}

type testLabels map[string]string

type testNotifier interface {
	Notify(msg string) error
}

type testHandler func(testEvent) error

type testEvent struct {
	ID       int
	Payload  any
	Err      error
	Labels   testLabels
	Notifier testNotifier
	Handler  testHandler
	Done     chan struct{}
	Meta     struct{ Source string }
	Raw      map[string]any
}

type testNode struct {
	Value int
	Next  *testNode
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"predeclared", reflect.TypeOf(int64(0)), "int64"},
		{"stdlib", reflect.TypeOf(time.Time{}), "time.Time"},
		{"pointer", reflect.TypeOf(&testLine{}), pkgPath + ".testLine"},
		{"slice", reflect.TypeOf([]testLine{}), "[]" + pkgPath + ".testLine"},
		{"array", reflect.TypeOf([2]string{}), "[]string"},
		{"nested slice", reflect.TypeOf([][]int{}), "[][]int"},
		{"map", reflect.TypeOf(map[string]int{}), "map[string]int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeName(tt.typ))
		})
	}
}

func TestDeclaredName(t *testing.T) {
	typ := reflect.TypeOf(testOrder{})

	name, ok := DeclaredName(typ.Field(0))
	assert.True(t, ok)
	assert.Equal(t, "ID", name)

	_, ok = DeclaredName(typ.Field(5))
	assert.False(t, ok, "tagged with -")

	_, ok = DeclaredName(typ.Field(6))
	assert.False(t, ok, "unexported")

	name, ok = DeclaredName(reflect.TypeOf(testCustomer{}).Field(0))
	assert.True(t, ok)
	assert.Equal(t, "name", name)
}

func TestDerive(t *testing.T) {
	reg := NewRegistry()

	order, err := reg.Derive(&testOrder{})
	require.NoError(t, err)
	assert.Equal(t, pkgPath+".testOrder", order.Name)
	assert.Equal(t, []string{"ID", "Customer", "Lines", "Status", "PlacedAt"}, order.FieldNames())

	assert.Equal(t, []string{
		pkgPath + ".testOrder",
		pkgPath + ".testCustomer",
		pkgPath + ".testLine",
		pkgPath + ".testAddress",
	}, reg.Names())

	kinds := make(map[string]FieldKind)
	for _, f := range order.Fields {
		kinds[f.Name] = f.Kind
	}
	assert.Equal(t, KindScalar, kinds["ID"])
	assert.Equal(t, KindComposite, kinds["Customer"])
	assert.Equal(t, KindComposite, kinds["Lines"])
	assert.Equal(t, KindScalar, kinds["Status"], "named string is a leaf")
	assert.Equal(t, KindScalar, kinds["PlacedAt"])

	customer, err := reg.Lookup(pkgPath + ".testCustomer")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "Address", "Tags"}, customer.FieldNames())
	assert.Equal(t, KindScalar, customer.Fields[2].Kind)

	assert.NoError(t, reg.Check())
}

func TestDerive_OpaqueFieldsAreLeaves(t *testing.T) {
	reg := NewRegistry()

	event, err := reg.Derive(testEvent{})
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len(), "no record type besides testEvent is registered")

	tests := []struct {
		field    string
		typeName string
	}{
		{"ID", "int"},
		{"Payload", "interface {}"},
		{"Err", "error"},
		{"Labels", pkgPath + ".testLabels"},
		{"Notifier", pkgPath + ".testNotifier"},
		{"Handler", pkgPath + ".testHandler"},
		{"Done", "chan struct {}"},
		{"Meta", "struct { Source string }"},
		{"Raw", "map[string]interface {}"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := event.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.typeName, f.Type)
			assert.Equal(t, KindScalar, f.Kind)
		})
	}

	assert.NoError(t, reg.Check())
}

func TestDerive_SelfReferencingType(t *testing.T) {
	reg := NewRegistry()

	node, err := reg.Derive(testNode{})
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, pkgPath+".testNode", node.Fields[1].Type)
}

func TestDerive_Idempotent(t *testing.T) {
	reg := NewRegistry()

	first, err := reg.Derive(reflect.TypeOf(testLine{}))
	require.NoError(t, err)
	second, err := reg.Derive(&testLine{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.Len())
}

func TestDerive_Errors(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Derive(nil)
	assert.Error(t, err)

	_, err = reg.Derive(42)
	assert.Error(t, err)

	_, err = reg.Derive(time.Time{})
	assert.Error(t, err, "stdlib structs are leaves")
}
