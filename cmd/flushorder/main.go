// Flushorder reads a set of items and the dependencies between them
// and prints an order in which the items can be written.
//
// The input is YAML:
//
//	items: [users, addresses]
//	edges:
//	  - {parent: users, child: addresses}
//
// Each edge says that parent must be written before child.
// Items mentioned only in edges need not be listed under items.
//
// Exit status is 0 on success, 1 when the dependencies form a
// cycle and 2 for bad usage or unreadable input.
package main

import "os"

func main() {
	os.Exit(Main())
}

// Main runs flushorder with the process arguments and standard
// streams, returning the exit status.
func Main() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
