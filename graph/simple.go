package graph

import (
	"cmp"
	"iter"
	"slices"
)

// Simple implements EnumerableGraph for a concrete set of comparable nodes.
// Nodes are enumerated and compared in order of first appearance,
// so anything derived from a Simple graph is deterministic.
//
// The zero value is an empty graph ready to use.
type Simple[Node comparable] struct {
	index map[Node]int
	nodes []Node
	edges [][][2]Node
}

// AddNode adds a node. Typically this is only used to add
// nodes with no incoming or outgoing edges.
func (g *Simple[Node]) AddNode(n Node) {
	g.node(n)
}

// AddEdge adds nodes from and to, and adds an edge from -> to.
// You don't need to call AddNode first; the nodes will be implicitly added if they don't
// already exist. Adding the same edge twice has no effect.
// Cycles are allowed.
func (g *Simple[Node]) AddEdge(from, to Node) {
	i := g.node(from)
	g.node(to)
	e := [2]Node{from, to}
	if slices.Contains(g.edges[i], e) {
		return
	}
	g.edges[i] = append(g.edges[i], e)
}

func (g *Simple[Node]) node(n Node) int {
	if i, ok := g.index[n]; ok {
		return i
	}
	if g.index == nil {
		g.index = make(map[Node]int)
	}
	i := len(g.nodes)
	g.index[n] = i
	g.nodes = append(g.nodes, n)
	g.edges = append(g.edges, nil)
	return i
}

// Len returns the number of nodes in the graph.
func (g *Simple[Node]) Len() int {
	return len(g.nodes)
}

// AllNodes implements EnumerableGraph.AllNodes.
func (g *Simple[Node]) AllNodes() iter.Seq[Node] {
	return slices.Values(g.nodes)
}

// EdgesFrom implements Graph.EdgesFrom.
// Note: the caller should not mutate the returned slice.
func (g *Simple[Node]) EdgesFrom(n Node) ([][2]Node, bool) {
	i, ok := g.index[n]
	if !ok {
		return nil, false
	}
	return g.edges[i], true
}

// Nodes implements Graph.Nodes.
func (g *Simple[Node]) Nodes(e [2]Node) (from, to Node) {
	return e[0], e[1]
}

// CmpNode implements EnumerableGraph.CmpNode by comparing
// the order in which the nodes were first added.
// Nodes not in the graph sort after all others.
func (g *Simple[Node]) CmpNode(n0, n1 Node) int {
	return cmp.Compare(g.position(n0), g.position(n1))
}

func (g *Simple[Node]) position(n Node) int {
	if i, ok := g.index[n]; ok {
		return i
	}
	return len(g.nodes)
}
