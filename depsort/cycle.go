package depsort

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/rogpeppe/flushorder/graph/topo"
)

// ErrCircularDependency is matched by every *CycleError,
// whatever its item type:
//
//	if errors.Is(err, depsort.ErrCircularDependency) { ... }
var ErrCircularDependency = errors.New("circular dependency")

// CycleError is the error returned when items cannot be ordered because
// their constraints form a cycle. It's the only error returned by
// this package.
type CycleError[T comparable] struct {
	// Cycles holds each set of items that depend on one another,
	// in the order the items were first added to the graph.
	// A set of one item is only reported when self-cycles are
	// disallowed.
	Cycles [][]T

	// Edges holds the constraints between members of the
	// same set that could not be satisfied.
	Edges []Edge[T]
}

// maxEdges limits the number of edges described by CycleError.Error.
const maxEdges = 10

// Error implements the error interface.
func (e *CycleError[T]) Error() string {
	var b strings.Builder
	b.WriteString("depsort: circular dependency detected among: ")
	for i, edge := range e.Edges {
		if i == maxEdges {
			fmt.Fprintf(&b, " (and %d more)", len(e.Edges)-maxEdges)
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v depends on %v", edge.Child, edge.Parent)
	}
	return b.String()
}

// Is reports whether target is ErrCircularDependency.
func (e *CycleError[T]) Is(target error) bool {
	return target == ErrCircularDependency
}

// Items returns all the items implicated in the cycles.
func (e *CycleError[T]) Items() []T {
	var items []T
	for _, c := range e.Cycles {
		items = append(items, c...)
	}
	return items
}

// selfCycleError returns an error naming every circular item
// in g, or nil if there are none.
func (g *Graph[T]) selfCycleError() error {
	var err *CycleError[T]
	for id := range g.nodes {
		n := &g.nodes[id]
		if !n.circular {
			continue
		}
		if err == nil {
			err = new(CycleError[T])
		}
		err.Cycles = append(err.Cycles, []T{n.item})
		err.Edges = append(err.Edges, Edge[T]{Parent: n.item, Child: n.item})
	}
	if err == nil {
		return nil
	}
	return err
}

// residualCycleError returns the error for a set of nodes that could
// not be ordered. Nodes that are blocked only because they come after
// a cycle are left out: only the strongly connected components of the
// residual nodes are reported.
func (g *Graph[T]) residualCycleError(residual []int) *CycleError[T] {
	sub := &subgraph[T]{
		g:      g,
		nodes:  residual,
		member: make([]bool, len(g.nodes)),
	}
	for _, id := range residual {
		sub.member[id] = true
	}
	component := make([]int, len(g.nodes))
	for id := range component {
		component[id] = -1
	}
	err := new(CycleError[T])
	for i, scc := range topo.Cycles[int, [2]int](sub) {
		err.Cycles = append(err.Cycles, g.itemsOf(scc))
		for _, id := range scc {
			component[id] = i
		}
	}
	for _, e := range g.edges {
		if c := component[e[0]]; c >= 0 && c == component[e[1]] {
			err.Edges = append(err.Edges, g.edge(e))
		}
	}
	return err
}

// pathCycleError returns the error for the cycle formed by
// the given path of nodes followed by an edge from its last
// node back to its first.
func (g *Graph[T]) pathCycleError(path []int) *CycleError[T] {
	err := &CycleError[T]{
		Cycles: [][]T{g.itemsOf(slices.Sorted(slices.Values(path)))},
	}
	for i, id := range path {
		next := path[(i+1)%len(path)]
		err.Edges = append(err.Edges, g.edge([2]int{id, next}))
	}
	return err
}

// subgraph implements graph.EnumerableGraph over the node
// IDs of a subset of a Graph.
type subgraph[T comparable] struct {
	g      *Graph[T]
	nodes  []int
	member []bool
}

func (s *subgraph[T]) AllNodes() iter.Seq[int] {
	return slices.Values(s.nodes)
}

func (s *subgraph[T]) EdgesFrom(id int) ([][2]int, bool) {
	if !s.member[id] {
		return nil, false
	}
	var edges [][2]int
	for _, c := range s.g.nodes[id].succs {
		if s.member[c] {
			edges = append(edges, [2]int{id, c})
		}
	}
	return edges, true
}

func (s *subgraph[T]) Nodes(e [2]int) (from, to int) {
	return e[0], e[1]
}

func (s *subgraph[T]) CmpNode(id0, id1 int) int {
	return cmp.Compare(id0, id1)
}
