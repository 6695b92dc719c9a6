// Package walk flattens nested records into their leaf fields and values.
//
// A Parser walks the record type of its root depth-first without recursion.
// Fields returns every reachable field descriptor: a composite field is
// followed by the expanded fields of its record type, and siblings keep
// their declaration order. Values replays that list against the root
// instance and returns one value per scalar descriptor.
//
//	reg := schema.NewRegistry()
//	reg.MustDefine("Customer", schema.FieldSpec{Name: "name", Type: "string"})
//	reg.MustDefine("Order",
//		schema.FieldSpec{Name: "customer", Type: "Customer"},
//		schema.FieldSpec{Name: "id", Type: "int64"},
//	)
//
//	p, err := walk.New(reg, record.NewMap("Order", doc))
//	names, _ := p.FieldNames() // [name id]
//	values, _ := p.Values()    // [Ada 7]
//
// The walk assumes an acyclic schema. A Parser is not safe for concurrent
// use; the Registry it reads may be shared.
package walk
