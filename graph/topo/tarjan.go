// Package topo implements strongly connected component analysis and
// a Tarjan-based topological sort over graph.EnumerableGraph values.
package topo

import (
	"fmt"
	"slices"

	"github.com/rogpeppe/flushorder/graph"
)

// Sort performs a topological sort of the directed graph g returning the 'from' to 'to'
// sort order. If a topological ordering is not possible, an Unorderable error is returned
// listing cyclic components in g with each cyclic component's members sorted by g.CmpNode.
// Nodes in cyclic components are omitted from the sorted result.
func Sort[Node comparable, Edge any](g graph.EnumerableGraph[Node, Edge]) (sorted []Node, err error) {
	return SortStabilized(g, nil)
}

// SortStabilized is like Sort, but where there is no unambiguous
// topological ordering it orders nodes by cmp. If cmp is nil, nodes
// are ordered according to g.CmpNode.
func SortStabilized[Node comparable, Edge any](g graph.EnumerableGraph[Node, Edge], cmp func(n0, n1 Node) int) (sorted []Node, err error) {
	if cmp == nil {
		cmp = g.CmpNode
	}
	return sortedFrom(tarjanSCCStabilized(g, cmp), cmp)
}

func sortedFrom[Node comparable](sccs [][]Node, cmp func(n0, n1 Node) int) ([]Node, error) {
	sorted := make([]Node, 0, len(sccs))
	var sc Unorderable[Node]
	for _, s := range sccs {
		if len(s) != 1 {
			slices.SortFunc(s, cmp)
			sc = append(sc, s)
			continue
		}
		sorted = append(sorted, s[0])
	}
	var err error
	if sc != nil {
		slices.Reverse(sc)
		err = sc
	}
	slices.Reverse(sorted)
	return sorted, err
}

// TarjanSCC returns the strongly connected components of the graph g using Tarjan's algorithm.
// Components are returned in reverse topological order: no component has an edge
// to a component that appears after it.
//
// A strongly connected component of a graph is a set of vertices where it's possible to reach any
// vertex in the set from any other (meaning there's a cycle between them.)
//
// Generally speaking, a directed graph where the number of strongly connected components is equal
// to the number of nodes is acyclic, unless you count reflexive edges as a cycle (which requires
// only a little extra testing.)
func TarjanSCC[Node comparable, Edge any](g graph.EnumerableGraph[Node, Edge]) [][]Node {
	return tarjanSCCStabilized(g, g.CmpNode)
}

// Cycles returns the strongly connected components of g that contain
// more than one node, each sorted by g.CmpNode, ordered by their
// first member. It returns nil if g is acyclic apart from self-edges.
func Cycles[Node comparable, Edge any](g graph.EnumerableGraph[Node, Edge]) [][]Node {
	var cycles [][]Node
	for _, scc := range TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		slices.SortFunc(scc, g.CmpNode)
		cycles = append(cycles, scc)
	}
	slices.SortFunc(cycles, func(c0, c1 []Node) int {
		return g.CmpNode(c0[0], c1[0])
	})
	return cycles
}

func tarjanSCCStabilized[Node comparable, Edge any](g graph.EnumerableGraph[Node, Edge], cmp func(n0, n1 Node) int) [][]Node {
	nodes := slices.SortedFunc(g.AllNodes(), cmp)
	slices.Reverse(nodes)

	t := tarjan[Node]{
		succ: func(n Node) []Node {
			to := slices.SortedFunc(graph.NodesFrom[Node, Edge](g, n), cmp)
			slices.Reverse(to)
			return to
		},
		indexTable: make(map[Node]int, len(nodes)),
		lowLink:    make(map[Node]int, len(nodes)),
		onStack:    make(map[Node]bool),
	}
	for _, v := range nodes {
		if t.indexTable[v] == 0 {
			t.strongconnect(v)
		}
	}
	return t.sccs
}

// tarjan implements Tarjan's strongly connected component finding
// algorithm. The implementation is from the pseudocode at
//
// http://en.wikipedia.org/wiki/Tarjan%27s_strongly_connected_components_algorithm?oldid=642744644
type tarjan[Node comparable] struct {
	succ func(Node) []Node

	index      int
	indexTable map[Node]int
	lowLink    map[Node]int
	onStack    map[Node]bool

	stack []Node

	sccs [][]Node
}

// strongconnect is the strongconnect function described in the
// wikipedia article.
func (t *tarjan[Node]) strongconnect(v Node) {
	// Set the depth index for v to the smallest unused index.
	t.index++
	t.indexTable[v] = t.index
	t.lowLink[v] = t.index
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	// Consider successors of v.
	for _, w := range t.succ(v) {
		if t.indexTable[w] == 0 {
			// Successor w has not yet been visited; recur on it.
			t.strongconnect(w)
			t.lowLink[v] = min(t.lowLink[v], t.lowLink[w])
		} else if t.onStack[w] {
			// Successor w is in stack s and hence in the current SCC.
			t.lowLink[v] = min(t.lowLink[v], t.indexTable[w])
		}
	}

	// If v is a root node, pop the stack and generate an SCC.
	if t.lowLink[v] == t.indexTable[v] {
		var (
			scc []Node
			w   Node
		)
		for {
			w, t.stack = t.stack[len(t.stack)-1], t.stack[:len(t.stack)-1]
			delete(t.onStack, w)
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}

// Unorderable is an error containing sets of unorderable nodes.
type Unorderable[Node comparable] [][]Node

// Error satisfies the error interface.
func (e Unorderable[Node]) Error() string {
	const maxNodes = 10
	var n int
	for _, c := range e {
		n += len(c)
	}
	if n > maxNodes {
		// Don't return errors that are too long.
		return fmt.Sprintf("topo: no topological ordering: %d nodes in %d cyclic components", n, len(e))
	}
	return fmt.Sprintf("topo: no topological ordering: cyclic components: %v", [][]Node(e))
}
