package depsort

import "slices"

// TreeSorter sorts a graph by building a forest incrementally, one edge
// at a time. After each edge (p, c) has been added, p is an ancestor of
// c, so a pre-order walk of the forest is a valid order and two items
// at the same depth never depend on one another.
//
// Each edge is handled in one of three ways:
//
//   - p is already an ancestor of c: nothing changes.
//   - c is an ancestor of p: if c depends on p through earlier edges
//     the edge closes a cycle and sorting fails. Otherwise c ended up
//     above p only because of an earlier move, and the path from c
//     down to p is rotated so that the items on it that p depends on
//     come first.
//   - otherwise: the highest ancestor of c that is not also an ancestor
//     of p is moved, with its whole subtree, to become the last child of p.
//
// Finding ancestors walks up the tree, so the worst case cost is
// O(V·E).
//
// The zero value is ready to use.
type TreeSorter[T comparable] struct {
	// DisallowSelfCycles causes sorting to fail when any item
	// has an edge to itself. By default such edges are ignored.
	DisallowSelfCycles bool
}

// Sort returns the items of g in dependency order: the pre-order
// flattening of the forest returned by SortForest.
func (s TreeSorter[T]) Sort(g *Graph[T]) ([]T, error) {
	f, err := s.SortForest(g)
	if err != nil {
		return nil, err
	}
	return f.Flatten(), nil
}

// SortForest returns the items of g arranged as a forest where every
// item's dependencies are among its ancestors. Roots are in the order
// their items were first added to g; children are in the order they
// were attached.
func (s TreeSorter[T]) SortForest(g *Graph[T]) (Forest[T], error) {
	if s.DisallowSelfCycles {
		if err := g.selfCycleError(); err != nil {
			return nil, err
		}
	}
	r := newRotator(len(g.nodes))
	for _, e := range g.edges {
		if cycle := r.add(e[0], e[1]); cycle != nil {
			return nil, g.pathCycleError(cycle)
		}
	}
	return forest(g, r), nil
}

// rotator holds the forest being built by TreeSorter,
// indexed by node ID.
type rotator struct {
	parent   []int
	children [][]int

	// preds holds the parents of all edges added so far,
	// indexed by child.
	preds [][]int

	// mark and reach hold generation stamps: a node is marked
	// or reached when its stamp equals gen.
	gen   int
	mark  []int
	reach []int

	// next holds, for each reached node, the node it leads
	// to on the way back to the start of the search.
	next []int
}

func newRotator(n int) *rotator {
	r := &rotator{
		parent:   make([]int, n),
		children: make([][]int, n),
		preds:    make([][]int, n),
		mark:     make([]int, n),
		reach:    make([]int, n),
		next:     make([]int, n),
	}
	for id := range r.parent {
		r.parent[id] = -1
	}
	return r
}

// add adds the edge p -> c. If that would create a cycle, it returns
// the nodes on the cycle, starting at c and ending at p.
func (r *rotator) add(p, c int) []int {
	r.gen++
	for n := p; n != -1; n = r.parent[n] {
		r.mark[n] = r.gen
	}
	if r.mark[c] == r.gen {
		if cycle := r.rotate(p, c); cycle != nil {
			return cycle
		}
	} else {
		top := c
		for r.parent[top] != -1 && r.mark[r.parent[top]] != r.gen {
			top = r.parent[top]
		}
		if r.parent[top] != p {
			r.detach(top)
			r.attach(p, top)
		}
	}
	r.preds[c] = append(r.preds[c], p)
	return nil
}

// rotate handles the edge p -> c when c is an ancestor of p.
func (r *rotator) rotate(p, c int) []int {
	// path holds the nodes from c down to p.
	var path []int
	for n := p; ; n = r.parent[n] {
		path = append(path, n)
		if n == c {
			break
		}
	}
	slices.Reverse(path)

	r.gen++
	for _, n := range path {
		r.mark[n] = r.gen
	}
	// Search back from p for the nodes on the path that p
	// depends on. Every dependency is an ancestor, so the
	// search never needs to leave the path.
	r.reach[p] = r.gen
	stack := []int{p}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, u := range r.preds[n] {
			if r.mark[u] != r.gen || r.reach[u] == r.gen {
				continue
			}
			r.reach[u] = r.gen
			r.next[u] = n
			if u == c {
				cycle := []int{c}
				for v := c; v != p; {
					v = r.next[v]
					cycle = append(cycle, v)
				}
				return cycle
			}
			stack = append(stack, u)
		}
	}

	// Reorder the path so that the nodes p depends on (p included)
	// come first, followed by the rest (c included), each in their
	// existing order. The side branches of the lifted nodes move to
	// the bottom of the path, so no node loses an ancestor.
	var lifted, rest, moved []int
	for i, n := range path {
		var side []int
		for _, ch := range r.children[n] {
			if i+1 < len(path) && ch == path[i+1] {
				continue
			}
			side = append(side, ch)
		}
		if r.reach[n] == r.gen {
			lifted = append(lifted, n)
			moved = append(moved, side...)
			r.children[n] = nil
		} else {
			rest = append(rest, n)
			r.children[n] = side
		}
	}
	chain := append(lifted, rest...)

	top := r.parent[c]
	if top != -1 {
		i := slices.Index(r.children[top], c)
		r.children[top][i] = chain[0]
	}
	r.parent[chain[0]] = top
	for i := 1; i < len(chain); i++ {
		r.attach(chain[i-1], chain[i])
	}
	last := chain[len(chain)-1]
	for _, n := range moved {
		r.attach(last, n)
	}
	return nil
}

// detach removes n from its parent's children, making it a root.
func (r *rotator) detach(n int) {
	p := r.parent[n]
	if p == -1 {
		return
	}
	i := slices.Index(r.children[p], n)
	r.children[p] = slices.Delete(r.children[p], i, i+1)
	r.parent[n] = -1
}

// attach appends n to the children of p.
func (r *rotator) attach(p, n int) {
	r.children[p] = append(r.children[p], n)
	r.parent[n] = p
}

// forest returns the forest held by r, with the items taken from g.
func forest[T comparable](g *Graph[T], r *rotator) Forest[T] {
	var build func(id int) *Tree[T]
	build = func(id int) *Tree[T] {
		t := &Tree[T]{
			Item:     g.nodes[id].item,
			Circular: g.nodes[id].circular,
		}
		if len(r.children[id]) > 0 {
			t.Children = make([]*Tree[T], len(r.children[id]))
			for i, ch := range r.children[id] {
				t.Children[i] = build(ch)
			}
		}
		return t
	}
	var f Forest[T]
	for id, p := range r.parent {
		if p == -1 {
			f = append(f, build(id))
		}
	}
	return f
}
