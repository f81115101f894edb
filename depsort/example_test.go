package depsort_test

import (
	"errors"
	"fmt"

	"github.com/rogpeppe/flushorder/depsort"
)

func ExampleQueueSorter() {
	g := depsort.Build([]string{"addresses", "users", "orders"}, []depsort.Edge[string]{
		{Parent: "users", Child: "addresses"},
		{Parent: "users", Child: "orders"},
		{Parent: "addresses", Child: "orders"},
	})
	order, err := depsort.QueueSorter[string]{}.Sort(g)
	if err != nil {
		panic(err)
	}
	fmt.Println("insert:", order)
	fmt.Println("delete:", depsort.Reverse(order))
	// Output:
	// insert: [users addresses orders]
	// delete: [orders addresses users]
}

func ExampleTreeSorter_SortForest() {
	g := depsort.Build(nil, []depsort.Edge[string]{
		{Parent: "users", Child: "orders"},
		{Parent: "users", Child: "keywords"},
		{Parent: "orders", Child: "order_items"},
		{Parent: "keywords", Child: "keywords"},
	})
	f, err := depsort.TreeSorter[string]{}.SortForest(g)
	if err != nil {
		panic(err)
	}
	for i, batch := range f.Batches() {
		fmt.Println(i, batch)
	}
	// Output:
	// 0 [users]
	// 1 [orders keywords]
	// 2 [order_items]
}

func ExampleCycleError() {
	g := depsort.Build(nil, []depsort.Edge[string]{
		{Parent: "A", Child: "B"},
		{Parent: "B", Child: "A"},
	})
	_, err := depsort.QueueSorter[string]{}.Sort(g)
	fmt.Println(errors.Is(err, depsort.ErrCircularDependency))
	fmt.Println(err)
	// Output:
	// true
	// depsort: circular dependency detected among: B depends on A, A depends on B
}
