package depsort

import "github.com/rogpeppe/flushorder/ring"

// QueueSorter sorts a graph with Kahn's algorithm: items with no
// outstanding dependencies are emitted in first-in first-out order,
// releasing their dependents as they go. It runs in O(V+E) time.
//
// The zero value is ready to use.
type QueueSorter[T comparable] struct {
	// DisallowSelfCycles causes Sort to fail when any item
	// has an edge to itself. By default such edges are ignored.
	DisallowSelfCycles bool
}

// Sort returns the items of g in dependency order. Items that are
// ready at the same time keep the order in which they were first
// added to g.
func (s QueueSorter[T]) Sort(g *Graph[T]) ([]T, error) {
	if s.DisallowSelfCycles {
		if err := g.selfCycleError(); err != nil {
			return nil, err
		}
	}
	n := len(g.nodes)
	// blocked holds the number of unemitted parents of each node.
	blocked := make([]int, n)
	ready := ring.NewBuffer[int](n)
	for id := range g.nodes {
		blocked[id] = len(g.nodes[id].preds)
		if blocked[id] == 0 {
			ready.PushEnd(id)
		}
	}
	order := make([]T, 0, n)
	for ready.Len() > 0 {
		id := ready.PopStart()
		order = append(order, g.nodes[id].item)
		for _, c := range g.nodes[id].succs {
			blocked[c]--
			if blocked[c] == 0 {
				ready.PushEnd(c)
			}
		}
	}
	if len(order) == n {
		return order, nil
	}
	var residual []int
	for id, b := range blocked {
		if b > 0 {
			residual = append(residual, id)
		}
	}
	return nil, g.residualCycleError(residual)
}
