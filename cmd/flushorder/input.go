package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rogpeppe/flushorder/depsort"
)

// input holds the decoded YAML input.
type input struct {
	Items []string `yaml:"items"`
	Edges []edge   `yaml:"edges"`
}

type edge struct {
	Parent string `yaml:"parent"`
	Child  string `yaml:"child"`
}

// readInput reads the input from the named file,
// or from stdin if the name is "-".
func readInput(name string, stdin io.Reader) (*input, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return decodeInput(r)
}

func decodeInput(r io.Reader) (*input, error) {
	var in input
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse input: %w", err)
	}
	for i, item := range in.Items {
		if item == "" {
			return nil, fmt.Errorf("item %d is empty", i)
		}
	}
	for i, e := range in.Edges {
		if e.Parent == "" || e.Child == "" {
			return nil, fmt.Errorf("edge %d needs both parent and child", i)
		}
	}
	return &in, nil
}

// graph returns the dependency graph described by the input.
func (in *input) graph() *depsort.Graph[string] {
	edges := make([]depsort.Edge[string], len(in.Edges))
	for i, e := range in.Edges {
		edges[i] = depsort.Edge[string]{
			Parent: e.Parent,
			Child:  e.Child,
		}
	}
	return depsort.Build(in.Items, edges)
}
