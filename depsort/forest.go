package depsort

import (
	"cmp"
	"iter"
)

// Tree is a node in a Forest. Every item in the subtree
// below a node may depend on the node's item; no item
// depends on an item below it.
type Tree[T any] struct {
	Item T

	// Circular is true when Item has an edge to itself.
	Circular bool

	Children []*Tree[T]
}

// Forest holds the result of TreeSorter.SortForest.
type Forest[T any] []*Tree[T]

// Walk calls fn for every node in the forest in pre-order, with the
// depth of the node (zero for roots). It stops early if fn
// returns false.
func (f Forest[T]) Walk(fn func(depth int, t *Tree[T]) bool) {
	var walk func(ts []*Tree[T], depth int) bool
	walk = func(ts []*Tree[T], depth int) bool {
		for _, t := range ts {
			if !fn(depth, t) || !walk(t.Children, depth+1) {
				return false
			}
		}
		return true
	}
	walk(f, 0)
}

// Len returns the number of nodes in the forest.
func (f Forest[T]) Len() int {
	n := 0
	f.Walk(func(int, *Tree[T]) bool {
		n++
		return true
	})
	return n
}

// Flatten returns all the items in the forest in pre-order.
func (f Forest[T]) Flatten() []T {
	var items []T
	f.Walk(func(_ int, t *Tree[T]) bool {
		items = append(items, t.Item)
		return true
	})
	return items
}

// Batches returns the items in the forest grouped by depth, each group
// in pre-order. No item in a batch depends on another item in the same
// batch, so processing the batches in order, and the items of each batch
// in any order or all at once, honours every dependency.
func (f Forest[T]) Batches() [][]T {
	var batches [][]T
	f.Walk(func(depth int, t *Tree[T]) bool {
		if depth == len(batches) {
			batches = append(batches, nil)
		}
		batches[depth] = append(batches[depth], t.Item)
		return true
	})
	return batches
}

// Graph returns a view of the forest as a graph with an edge from
// each node to each of its children. Nodes are enumerated and
// compared in pre-order.
func (f Forest[T]) Graph() *ForestGraph[T] {
	g := &ForestGraph[T]{
		index: make(map[*Tree[T]]int),
	}
	f.Walk(func(_ int, t *Tree[T]) bool {
		g.index[t] = len(g.nodes)
		g.nodes = append(g.nodes, t)
		return true
	})
	return g
}

// ForestGraph implements graph.EnumerableGraph for a Forest.
type ForestGraph[T any] struct {
	nodes []*Tree[T]
	index map[*Tree[T]]int
}

// AllNodes implements graph.EnumerableGraph.AllNodes.
func (g *ForestGraph[T]) AllNodes() iter.Seq[*Tree[T]] {
	return func(yield func(*Tree[T]) bool) {
		for _, t := range g.nodes {
			if !yield(t) {
				return
			}
		}
	}
}

// EdgesFrom implements graph.Graph.EdgesFrom.
func (g *ForestGraph[T]) EdgesFrom(t *Tree[T]) ([][2]*Tree[T], bool) {
	if _, ok := g.index[t]; !ok {
		return nil, false
	}
	edges := make([][2]*Tree[T], len(t.Children))
	for i, ch := range t.Children {
		edges[i] = [2]*Tree[T]{t, ch}
	}
	return edges, true
}

// Nodes implements graph.Graph.Nodes.
func (g *ForestGraph[T]) Nodes(e [2]*Tree[T]) (from, to *Tree[T]) {
	return e[0], e[1]
}

// CmpNode implements graph.EnumerableGraph.CmpNode.
func (g *ForestGraph[T]) CmpNode(t0, t1 *Tree[T]) int {
	return cmp.Compare(g.position(t0), g.position(t1))
}

func (g *ForestGraph[T]) position(t *Tree[T]) int {
	if i, ok := g.index[t]; ok {
		return i
	}
	return len(g.nodes)
}
