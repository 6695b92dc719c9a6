package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycleDetected is returned when the dependency graph contains a cycle,
// making topological sorting impossible.
var ErrCycleDetected = errors.New("cycle detected in dependency graph")

// CycleInfo describes the types Kahn's algorithm could not order.
type CycleInfo struct {
	TotalNodes        int      // Total number of types in the graph
	ProcessedNodes    int      // Types that were ordered
	UnprocessedNodes  []string // Types in a cycle or reachable only through one
	CycleParticipants []string // Types that reach themselves (subset of UnprocessedNodes)
	CyclePath         []string // One cycle, first type repeated at the end, e.g. [A, B, A]
}

// Blocked returns the unprocessed types that are not part of a cycle
// themselves but are referenced from one.
func (c *CycleInfo) Blocked() []string {
	in := make(map[string]bool, len(c.CycleParticipants))
	for _, p := range c.CycleParticipants {
		in[p] = true
	}

	var blocked []string
	for _, u := range c.UnprocessedNodes {
		if !in[u] {
			blocked = append(blocked, u)
		}
	}
	return blocked
}

// CycleError is returned when record types reference each other in a loop.
// A walk over such a schema would never terminate.
type CycleError struct {
	Info *CycleInfo
}

func (e *CycleError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cycle detected in dependency graph: %d of %d types could not be processed",
		len(e.Info.UnprocessedNodes), e.Info.TotalNodes)

	if len(e.Info.CyclePath) > 0 {
		fmt.Fprintf(&b, "\nCycle path: %s", strings.Join(e.Info.CyclePath, " -> "))
	}
	if len(e.Info.CycleParticipants) > 0 {
		fmt.Fprintf(&b, "\nTypes in cycle: %s", strings.Join(e.Info.CycleParticipants, ", "))
	}
	if blocked := e.Info.Blocked(); len(blocked) > 0 {
		fmt.Fprintf(&b, "\nTypes blocked by cycle: %s", strings.Join(blocked, ", "))
	}
	return b.String()
}

// Is makes errors.Is(err, ErrCycleDetected) match a *CycleError.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// kahn orders the types so that every type precedes the types it references.
// Ties keep insertion order. Types in or behind a cycle are left out.
func (g *Graph) kahn() []string {
	inDegree := make(map[string]int, len(g.order))
	var queue []string
	for _, name := range g.order {
		inDegree[name] = len(g.Parents[name])
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	order := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)

		for _, child := range g.Children[name] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return order
}

// TopologicalSort returns types in topological order using Kahn's algorithm.
// A type comes before every type it references. Ties keep insertion order.
// Returns a *CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	order := g.kahn()
	if len(order) != len(g.order) {
		return nil, &CycleError{Info: g.cycleInfo(order)}
	}
	return order, nil
}

// DependencyOrder returns types with every referenced type before the types
// that use it. This is the reverse of the topological order.
func (g *Graph) DependencyOrder() ([]string, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	reversed := make([]string, len(order))
	for i, name := range order {
		reversed[len(order)-1-i] = name
	}
	return reversed, nil
}

// Validate returns a *CycleError if the graph contains a cycle.
func (g *Graph) Validate() error {
	_, err := g.TopologicalSort()
	return err
}

// cycleInfo explains why the types missing from processed were not ordered.
func (g *Graph) cycleInfo(processed []string) *CycleInfo {
	done := make(map[string]bool, len(processed))
	for _, name := range processed {
		done[name] = true
	}

	pending := make(map[string]bool)
	var unprocessed []string
	for _, name := range g.order {
		if !done[name] {
			pending[name] = true
			unprocessed = append(unprocessed, name)
		}
	}

	var participants []string
	for _, name := range unprocessed {
		if g.reaches(name, name, pending) {
			participants = append(participants, name)
		}
	}

	info := &CycleInfo{
		TotalNodes:        len(g.order),
		ProcessedNodes:    len(processed),
		UnprocessedNodes:  unprocessed,
		CycleParticipants: participants,
	}
	if len(participants) > 0 {
		info.CyclePath = g.cyclePath(participants[0], pending)
	}
	return info
}

// reaches reports whether to can be reached from from over at least one
// edge, passing only through allowed types.
func (g *Graph) reaches(from, to string, allowed map[string]bool) bool {
	seen := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range g.Children[cur] {
			if child == to {
				return true
			}
			if allowed[child] && !seen[child] {
				seen[child] = true
				stack = append(stack, child)
			}
		}
	}
	return false
}

// cyclePath returns a path from start back to start through allowed types,
// following references in declaration order.
func (g *Graph) cyclePath(start string, allowed map[string]bool) []string {
	seen := map[string]bool{start: true}

	var visit func(cur string, path []string) []string
	visit = func(cur string, path []string) []string {
		for _, child := range g.Children[cur] {
			if child == start {
				return append(path, start)
			}
			if !allowed[child] || seen[child] {
				continue
			}
			seen[child] = true
			if found := visit(child, append(path, child)); found != nil {
				return found
			}
		}
		return nil
	}
	return visit(start, []string{start})
}
