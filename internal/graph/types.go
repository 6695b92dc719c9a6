// Package graph provides the record-type dependency graph used to check a
// schema before walking it.
package graph

// Node represents a record type in the dependency graph.
type Node struct {
	Name       string // Record type name
	FieldCount int    // Number of declared fields
	IsRoot     bool   // True if the walk starts at this type
}

// Edge represents a composite reference from one record type to another.
type Edge struct {
	From string // Referencing type
	To   string // Referenced type
}

// Graph represents the reference structure of a schema.
type Graph struct {
	Nodes        map[string]*Node    // type name -> node
	Children     map[string][]string // type name -> referenced types (outgoing edges)
	Parents      map[string][]string // type name -> referencing types (incoming edges)
	Root         string              // Root type name, empty for a whole-schema graph
	order        []string            // node names in insertion order
	edgeMetadata map[Edge]*EdgeMeta  // Edge -> metadata
}

// EdgeMeta lists the fields behind an edge. Two fields of the same owner
// referencing the same type share one edge.
type EdgeMeta struct {
	Fields []string // Field names in declaration order
	Array  bool     // True if any of the fields is an array type
}

// NewGraph creates a new empty graph. A non-empty root is added as the root
// node.
func NewGraph(root string) *Graph {
	g := &Graph{
		Nodes:        make(map[string]*Node),
		Children:     make(map[string][]string),
		Parents:      make(map[string][]string),
		Root:         root,
		edgeMetadata: make(map[Edge]*EdgeMeta),
	}

	if root != "" {
		g.AddNode(root, &Node{IsRoot: true})
	}

	return g
}

// AddNode adds a type node to the graph.
// If node is nil, a new node with default values is created.
func (g *Graph) AddNode(name string, node *Node) {
	if node == nil {
		node = &Node{}
	}
	node.Name = name
	if _, exists := g.Nodes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.Nodes[name] = node
}

// AddEdge adds a from -> to reference. Repeated references are recorded once.
func (g *Graph) AddEdge(from, to string) {
	if g.HasEdge(from, to) {
		return
	}
	g.Children[from] = append(g.Children[from], to)
	g.Parents[to] = append(g.Parents[to], from)
}

// AddEdgeWithMeta adds an edge and records the field that created it.
func (g *Graph) AddEdgeWithMeta(from, to, field string, array bool) {
	g.AddEdge(from, to)

	edge := Edge{From: from, To: to}
	meta, ok := g.edgeMetadata[edge]
	if !ok {
		meta = &EdgeMeta{}
		g.edgeMetadata[edge] = meta
	}
	meta.Fields = append(meta.Fields, field)
	meta.Array = meta.Array || array
}

// HasEdge reports whether from already references to.
func (g *Graph) HasEdge(from, to string) bool {
	for _, c := range g.Children[from] {
		if c == to {
			return true
		}
	}
	return false
}

// GetChildren returns the types directly referenced by a type.
func (g *Graph) GetChildren(parent string) []string {
	return g.Children[parent]
}

// GetParents returns the types directly referencing a type.
func (g *Graph) GetParents(child string) []string {
	return g.Parents[child]
}

// GetEdgeMeta returns metadata for an edge, or nil if not found.
func (g *Graph) GetEdgeMeta(from, to string) *EdgeMeta {
	return g.edgeMetadata[Edge{From: from, To: to}]
}

// HasNode returns true if the graph contains a node with the given name.
func (g *Graph) HasNode(name string) bool {
	_, exists := g.Nodes[name]
	return exists
}

// AllEdges returns all edges, grouped by referencing type in insertion order.
func (g *Graph) AllEdges() []Edge {
	var edges []Edge
	for _, from := range g.order {
		for _, to := range g.Children[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}
