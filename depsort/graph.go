// Package depsort orders items connected by "must be processed before"
// constraints, as needed when flushing a unit of work: rows that others
// refer to must be inserted first and deleted last.
//
// A Graph is built from items and (parent, child) edges. Two strategies
// sort it: QueueSorter produces a flat order using Kahn's algorithm and
// TreeSorter produces a Forest whose siblings have no ordering constraint
// between them and so may be batched together. Both are deterministic:
// ties are broken by the order in which items were first seen, never
// by map iteration order.
//
// An edge from an item to itself marks the item as circular (for
// example a row that refers to another row in the same table); it does
// not constrain the order. A cycle between two or more distinct items
// makes sorting fail with a *CycleError.
package depsort

import (
	"cmp"
	"iter"
	"slices"

	"github.com/rogpeppe/flushorder/graph"
)

// Edge represents a precedence constraint: Parent must be
// processed before Child.
type Edge[T any] struct {
	Parent T
	Child  T
}

// Graph holds a set of items and the precedence constraints
// between them. Items are compared with ==, so pointer items
// are distinguished by identity.
//
// Each distinct item is assigned a dense integer ID in order of first
// appearance; the sorters work over those IDs.
//
// The zero value is an empty graph ready to use. A Graph must not be
// modified while it is being sorted.
type Graph[T comparable] struct {
	index map[T]int
	nodes []node[T]

	// edges holds all distinct non-self edges in the order
	// they were first added.
	edges [][2]int
	seen  map[[2]int]bool
}

type node[T comparable] struct {
	item     T
	circular bool

	// preds holds the nodes that must come before this one.
	preds []int

	// succs holds the nodes that must come after this one.
	succs []int
}

// Build returns a graph holding all the given items and edges.
// Items mentioned only in edges are added implicitly.
// Neither slice is retained or modified.
func Build[T comparable](items []T, edges []Edge[T]) *Graph[T] {
	g := &Graph[T]{
		index: make(map[T]int, len(items)),
		nodes: make([]node[T], 0, len(items)),
	}
	for _, item := range items {
		g.AddItem(item)
	}
	for _, e := range edges {
		g.AddEdge(e.Parent, e.Child)
	}
	return g
}

// FromGraph returns a graph holding the nodes and edges of src.
// Each edge from -> to in src becomes the constraint that from
// is processed before to. Nodes are added in src.CmpNode order.
func FromGraph[T comparable, E any](src graph.EnumerableGraph[T, E]) *Graph[T] {
	g := new(Graph[T])
	nodes := slices.SortedFunc(src.AllNodes(), src.CmpNode)
	for _, n := range nodes {
		g.AddItem(n)
	}
	for _, n := range nodes {
		edges, _ := src.EdgesFrom(n)
		for _, e := range edges {
			from, to := src.Nodes(e)
			g.AddEdge(from, to)
		}
	}
	return g
}

// AddItem adds an item to the graph if it isn't already present.
// It's only needed for items that might not appear in any edge.
func (g *Graph[T]) AddItem(item T) {
	g.id(item)
}

// AddEdge records that parent must be processed before child, adding
// either item if necessary. Adding the same edge more than once has
// no further effect. If parent == child, the item is marked circular
// and no constraint is recorded.
func (g *Graph[T]) AddEdge(parent, child T) {
	p := g.id(parent)
	if parent == child {
		g.nodes[p].circular = true
		return
	}
	c := g.id(child)
	e := [2]int{p, c}
	if g.seen[e] {
		return
	}
	if g.seen == nil {
		g.seen = make(map[[2]int]bool)
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
	g.nodes[p].succs = append(g.nodes[p].succs, c)
	g.nodes[c].preds = append(g.nodes[c].preds, p)
}

// id returns the ID of the given item, creating
// a new node for it if needed.
func (g *Graph[T]) id(item T) int {
	if id, ok := g.index[item]; ok {
		return id
	}
	if g.index == nil {
		g.index = make(map[T]int)
	}
	id := len(g.nodes)
	g.index[item] = id
	g.nodes = append(g.nodes, node[T]{item: item})
	return id
}

// Len returns the number of distinct items in the graph.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Items returns all the items in the graph in the order
// they were first added.
func (g *Graph[T]) Items() []T {
	items := make([]T, len(g.nodes))
	for id := range g.nodes {
		items[id] = g.nodes[id].item
	}
	return items
}

// Contains reports whether item is in the graph.
func (g *Graph[T]) Contains(item T) bool {
	_, ok := g.index[item]
	return ok
}

// Circular reports whether item has an edge to itself.
func (g *Graph[T]) Circular(item T) bool {
	id, ok := g.index[item]
	return ok && g.nodes[id].circular
}

// Dependencies returns the items that must be processed directly
// before item, in the order the edges were added.
func (g *Graph[T]) Dependencies(item T) []T {
	id, ok := g.index[item]
	if !ok {
		return nil
	}
	return g.itemsOf(g.nodes[id].preds)
}

// Dependents returns the items that must be processed directly
// after item, in the order the edges were added.
func (g *Graph[T]) Dependents(item T) []T {
	id, ok := g.index[item]
	if !ok {
		return nil
	}
	return g.itemsOf(g.nodes[id].succs)
}

// Edges returns all the distinct edges in the graph in the order they
// were first added. Self edges are not included; see Circular.
func (g *Graph[T]) Edges() []Edge[T] {
	edges := make([]Edge[T], len(g.edges))
	for i, e := range g.edges {
		edges[i] = g.edge(e)
	}
	return edges
}

func (g *Graph[T]) edge(e [2]int) Edge[T] {
	return Edge[T]{
		Parent: g.nodes[e[0]].item,
		Child:  g.nodes[e[1]].item,
	}
}

func (g *Graph[T]) itemsOf(ids []int) []T {
	if len(ids) == 0 {
		return nil
	}
	items := make([]T, len(ids))
	for i, id := range ids {
		items[i] = g.nodes[id].item
	}
	return items
}

// AllNodes implements graph.EnumerableGraph.AllNodes
// by returning all items in the order they were first added.
func (g *Graph[T]) AllNodes() iter.Seq[T] {
	return func(yield func(T) bool) {
		for id := range g.nodes {
			if !yield(g.nodes[id].item) {
				return
			}
		}
	}
}

// EdgesFrom implements graph.Graph.EdgesFrom
// by returning the edges that have item as a parent.
func (g *Graph[T]) EdgesFrom(item T) ([]Edge[T], bool) {
	id, ok := g.index[item]
	if !ok {
		return nil, false
	}
	succs := g.nodes[id].succs
	edges := make([]Edge[T], len(succs))
	for i, c := range succs {
		edges[i] = g.edge([2]int{id, c})
	}
	return edges, true
}

// Nodes implements graph.Graph.Nodes.
func (g *Graph[T]) Nodes(e Edge[T]) (from, to T) {
	return e.Parent, e.Child
}

// CmpNode implements graph.EnumerableGraph.CmpNode by comparing
// the order in which items were first added. Items not in the
// graph sort after all others.
func (g *Graph[T]) CmpNode(item0, item1 T) int {
	return cmp.Compare(g.position(item0), g.position(item1))
}

func (g *Graph[T]) position(item T) int {
	if id, ok := g.index[item]; ok {
		return id
	}
	return len(g.nodes)
}
