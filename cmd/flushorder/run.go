package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/rogpeppe/flushorder/depsort"
	"github.com/rogpeppe/flushorder/mermaid"
)

const (
	exitCycle = 1
	exitUsage = 2
)

type options struct {
	Strategy     string `short:"s" long:"strategy" description:"Sorting strategy" choice:"queue" choice:"tree" default:"queue"`
	Format       string `short:"o" long:"format" description:"Output format; tree and batches need the tree strategy" choice:"list" choice:"tree" choice:"batches" choice:"mermaid" default:"list"`
	Reverse      bool   `short:"r" long:"reverse" description:"Print the order reversed, as needed for deletion"`
	NoSelfCycles bool   `long:"no-self-cycles" description:"Treat an item that depends on itself as a cycle"`
	Debug        bool   `long:"debug" description:"Dump the decoded input to stderr"`
	Verbose      bool   `short:"v" long:"verbose" description:"Log progress to stderr"`
	Help         bool   `short:"h" long:"help" description:"Show this help"`
	Args         struct {
		File string `positional-arg-name:"file" description:"YAML input file; stdin if omitted or -"`
	} `positional-args:"yes"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[option...] [file]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "flushorder: %v\n", err)
		return exitUsage
	}
	if opts.Help {
		parser.WriteHelp(stdout)
		return 0
	}
	if len(rest) > 0 {
		fmt.Fprintf(stderr, "flushorder: unexpected arguments %q\n", rest)
		return exitUsage
	}
	if opts.Args.File == "" {
		opts.Args.File = "-"
	}
	ctx := withLogger(context.Background(), newLogger(stderr, opts.Verbose))
	if err := flushorder(ctx, &opts, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "flushorder: %v\n", err)
		if errors.Is(err, depsort.ErrCircularDependency) {
			return exitCycle
		}
		return exitUsage
	}
	return 0
}

func flushorder(ctx context.Context, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := loggerFrom(ctx)
	if err := checkOptions(opts); err != nil {
		return err
	}
	in, err := readInput(opts.Args.File, stdin)
	if err != nil {
		return err
	}
	if opts.Debug {
		printer := pp.New()
		printer.SetOutput(stderr)
		printer.SetColoringEnabled(isTerminal(stderr))
		printer.Println(in)
	}
	g := in.graph()
	logger.Debug("read input", "file", opts.Args.File, "items", g.Len(), "edges", len(g.Edges()))

	if opts.Strategy == "queue" {
		order, err := depsort.QueueSorter[string]{DisallowSelfCycles: opts.NoSelfCycles}.Sort(g)
		if err != nil {
			return fmt.Errorf("cannot sort: %w", err)
		}
		logger.Debug("sorted", "strategy", opts.Strategy, "items", len(order))
		if opts.Format == "mermaid" {
			return writeMermaid(stdout, mermaid.WithNodeInfo[string, depsort.Edge[string]](g, mermaid.Numbered[string, depsort.Edge[string]](g, itemText)))
		}
		if opts.Reverse {
			order = depsort.Reverse(order)
		}
		writeList(stdout, order)
		return nil
	}
	f, err := depsort.TreeSorter[string]{DisallowSelfCycles: opts.NoSelfCycles}.SortForest(g)
	if err != nil {
		return fmt.Errorf("cannot sort: %w", err)
	}
	batches := f.Batches()
	logger.Debug("sorted", "strategy", opts.Strategy, "items", f.Len(), "batches", len(batches))
	switch opts.Format {
	case "list":
		order := f.Flatten()
		if opts.Reverse {
			order = depsort.Reverse(order)
		}
		writeList(stdout, order)
	case "batches":
		if opts.Reverse {
			batches = depsort.Reverse(batches)
		}
		for i, batch := range batches {
			fmt.Fprintf(stdout, "%d: %s\n", i, strings.Join(batch, " "))
		}
	case "tree":
		f.Walk(func(depth int, t *depsort.Tree[string]) bool {
			fmt.Fprintf(stdout, "%s%s", strings.Repeat("  ", depth), t.Item)
			if t.Circular {
				fmt.Fprint(stdout, " (circular)")
			}
			fmt.Fprintln(stdout)
			return true
		})
	case "mermaid":
		fg := f.Graph()
		text := func(t *depsort.Tree[string]) string {
			return t.Item
		}
		return writeMermaid(stdout, mermaid.WithNodeInfo[*depsort.Tree[string], [2]*depsort.Tree[string]](fg, mermaid.Numbered[*depsort.Tree[string], [2]*depsort.Tree[string]](fg, text)))
	}
	return nil
}

func checkOptions(opts *options) error {
	if opts.Strategy == "queue" && (opts.Format == "tree" || opts.Format == "batches") {
		return fmt.Errorf("--format=%s needs --strategy=tree", opts.Format)
	}
	if opts.Reverse && (opts.Format == "tree" || opts.Format == "mermaid") {
		return fmt.Errorf("--reverse cannot be used with --format=%s", opts.Format)
	}
	return nil
}

func writeList(w io.Writer, order []string) {
	for _, item := range order {
		fmt.Fprintln(w, item)
	}
}

func writeMermaid[Node comparable, Edge any](w io.Writer, g mermaid.GraphInterface[Node, Edge]) error {
	data, err := mermaid.NewGraph(g).MarshalMermaid()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func itemText(item string) string {
	return item
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
