package topo

import (
	"cmp"
	"errors"
	"iter"
	"maps"
	"slices"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/rogpeppe/flushorder/graph"
)

func TestSortDag(t *testing.T) {
	// This is the graph:
	// ,-->B
	// |
	// A-->C---->D
	// |    \
	// |     `-->E--.
	// `-------------`-->F
	g := new(graph.Simple[string])
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")
	g.AddEdge("A", "F")
	g.AddEdge("C", "D")
	g.AddEdge("C", "E")
	g.AddEdge("E", "F")
	sorted, err := Sort(g)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(sorted, []string{"A", "B", "C", "D", "E", "F"}))
}

func TestSortSelfEdgeIsOrderable(t *testing.T) {
	// ,---.
	// |   |
	// A<--'
	g := new(graph.Simple[string])
	g.AddEdge("A", "A")
	sorted, err := Sort(g)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(sorted, []string{"A"}))
}

func TestSortCycle(t *testing.T) {
	// This is the graph:
	// ,-->B-->C
	// |       |
	// A<------'
	g := new(graph.Simple[string])
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")
	g.AddEdge("C", "D")
	sorted, err := Sort(g)
	qt.Assert(t, qt.DeepEquals(sorted, []string{"D"}))
	var u Unorderable[string]
	qt.Assert(t, qt.IsTrue(errors.As(err, &u)))
	qt.Assert(t, qt.DeepEquals(u, Unorderable[string]{{"A", "B", "C"}}))
	qt.Assert(t, qt.ErrorMatches(err, `topo: no topological ordering: cyclic components: \[\[A B C\]\]`))
}

func TestUnorderableTruncatesLongErrors(t *testing.T) {
	err := Unorderable[int]{{0, 1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}}
	qt.Assert(t, qt.ErrorMatches(err, `topo: no topological ordering: 11 nodes in 2 cyclic components`))
}

func TestCycles(t *testing.T) {
	// A-->B-->C-->D-->E    F
	// ^       |    ^   |
	// `-------'    `---'
	g := new(graph.Simple[string])
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")
	g.AddEdge("C", "D")
	g.AddEdge("D", "E")
	g.AddEdge("E", "D")
	g.AddNode("F")
	qt.Assert(t, qt.DeepEquals(Cycles(g), [][]string{{"A", "B", "C"}, {"D", "E"}}))
}

func TestCyclesAcyclic(t *testing.T) {
	g := new(graph.Simple[int])
	g.AddEdge(1, 2)
	g.AddEdge(2, 2)
	qt.Assert(t, qt.IsNil(Cycles(g)))
}

///// gonum tests

type interval struct{ start, end int }

var tarjanTests = []struct {
	g intGraph

	ambiguousOrder []interval
	want           [][]int

	sortedLength      int
	unorderableLength int
	sortable          bool
}{
	{
		g: intGraph{
			0: {1},
			1: {2, 7},
			2: {3, 6},
			3: {4},
			4: {2, 5},
			6: {3, 5},
			7: {0, 6},
		},

		want: [][]int{
			{5},
			{2, 3, 4, 6},
			{0, 1, 7},
		},

		sortedLength:      1,
		unorderableLength: 2,
		sortable:          false,
	},
	{
		g: intGraph{
			0: {1, 2, 3},
			1: {2},
			2: {3},
			3: {1},
		},

		want: [][]int{
			{1, 2, 3},
			{0},
		},

		sortedLength:      1,
		unorderableLength: 1,
		sortable:          false,
	},
	{
		g: intGraph{
			0: {1},
			1: {0, 2},
			2: {1},
		},

		want: [][]int{
			{0, 1, 2},
		},

		sortedLength:      0,
		unorderableLength: 1,
		sortable:          false,
	},
	{
		g: intGraph{
			0: {1},
			1: {2, 3},
			2: {4, 5},
			3: {4, 5},
			4: {6},
			5: nil,
			6: nil,
		},

		// Node pairs (2, 3) and (4, 5) are not
		// relatively orderable within each pair.
		ambiguousOrder: []interval{
			{0, 3}, // This includes node 6 since it only needs to be before 4 in topo sort.
			{3, 5},
		},
		want: [][]int{
			{6}, {5}, {4}, {3}, {2}, {1}, {0},
		},

		sortedLength: 7,
		sortable:     true,
	},
	{
		g: intGraph{
			0: {1},
			1: {2, 3, 4},
			2: {0, 3},
			3: {4},
			4: {3},
		},

		// SCCs are not relatively ordable.
		ambiguousOrder: []interval{
			{0, 2},
		},
		want: [][]int{
			{0, 1, 2},
			{3, 4},
		},

		sortedLength:      0,
		unorderableLength: 2,
		sortable:          false,
	},
}

func TestSort(t *testing.T) {
	for i, test := range tarjanTests {
		sorted, err := Sort(test.g)
		gotSortedLen := len(sorted)
		if gotSortedLen != test.sortedLength {
			t.Errorf("unexpected number of sortable nodes for test %d: got:%d want:%d", i, gotSortedLen, test.sortedLength)
		}
		if err == nil != test.sortable {
			t.Errorf("unexpected sortability for test %d: got error: %v want: nil-error=%t", i, err, test.sortable)
		}
		if err != nil && len(err.(Unorderable[int])) != test.unorderableLength {
			t.Errorf("unexpected number of unorderable nodes for test %d: got:%d want:%d", i, len(err.(Unorderable[int])), test.unorderableLength)
		}
	}
}

func TestTarjanSCC(t *testing.T) {
	for i, test := range tarjanTests {
		gotSCCs := TarjanSCC(test.g)
		for _, scc := range gotSCCs {
			slices.Sort(scc)
		}
		for _, iv := range test.ambiguousOrder {
			slices.SortFunc(test.want[iv.start:iv.end], slices.Compare)
			slices.SortFunc(gotSCCs[iv.start:iv.end], slices.Compare)
		}
		qt.Check(t, qt.DeepEquals(gotSCCs, test.want), qt.Commentf("test %d", i))
	}
}

func TestTarjanSCCDeterministic(t *testing.T) {
	// intGraph enumerates its nodes in map order, so
	// stability comes entirely from CmpNode.
	for i, test := range tarjanTests {
		want := TarjanSCC(test.g)
		for range 10 {
			qt.Assert(t, qt.DeepEquals(TarjanSCC(test.g), want), qt.Commentf("test %d", i))
		}
	}
}

type intGraph map[int][]int

func (g intGraph) CmpNode(n0, n1 int) int {
	return cmp.Compare(n0, n1)
}

func (g intGraph) AllNodes() iter.Seq[int] {
	return maps.Keys(g)
}

func (g intGraph) EdgesFrom(n int) ([][2]int, bool) {
	to, ok := g[n]
	if !ok {
		return nil, false
	}
	edges := make([][2]int, len(to))
	for i, e := range to {
		edges[i] = [2]int{n, e}
	}
	return edges, true
}

func (g intGraph) Nodes(e [2]int) (from, to int) {
	return e[0], e[1]
}
