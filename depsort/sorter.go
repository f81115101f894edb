package depsort

// Sorter is implemented by the sorting strategies in this package.
// Sort returns all the items of g in an order where every parent
// comes before its children, or a *CycleError if there is no
// such order. The same graph always produces the same order.
type Sorter[T comparable] interface {
	Sort(g *Graph[T]) ([]T, error)
}

var (
	_ Sorter[string] = QueueSorter[string]{}
	_ Sorter[string] = TreeSorter[string]{}
)

// Reverse returns a copy of order in reverse, which is the order
// to use when deleting: children go before their parents.
func Reverse[T any](order []T) []T {
	r := make([]T, len(order))
	for i, x := range order {
		r[len(order)-1-i] = x
	}
	return r
}
