// Package graph defines the generic directed graph interfaces shared by the
// sorting and rendering packages in this module, along with Simple, a small
// concrete implementation.
package graph

import "iter"

// Graph represents a directed graph with nodes of type Node
// and edges of type Edge.
type Graph[Node comparable, Edge any] interface {
	// EdgesFrom returns all the edges that start at n.
	// It reports whether n is a member of the graph.
	EdgesFrom(n Node) ([]Edge, bool)

	// Nodes returns the nodes at either end of e.
	Nodes(e Edge) (from, to Node)
}

// EnumerableGraph is a Graph that can also enumerate its nodes
// and compare them. Algorithms that need deterministic output
// use CmpNode to break ties.
type EnumerableGraph[Node comparable, Edge any] interface {
	Graph[Node, Edge]

	// AllNodes returns an iterator over every node in the graph.
	AllNodes() iter.Seq[Node]

	// CmpNode compares two nodes, returning a negative number
	// if n0 sorts before n1, zero if they're the same and
	// a positive number otherwise.
	CmpNode(n0, n1 Node) int
}

// NodesFrom returns an iterator over the nodes at the far end
// of all edges from n, in the order returned by EdgesFrom.
func NodesFrom[Node comparable, Edge any](g Graph[Node, Edge], n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		edges, _ := g.EdgesFrom(n)
		for _, e := range edges {
			_, to := g.Nodes(e)
			if !yield(to) {
				return
			}
		}
	}
}
