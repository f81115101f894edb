// Package mermaid provides functionality for marshaling graph structures
// to Mermaid diagram format. Mermaid is a text-based diagramming tool that
// generates diagrams from markdown-like syntax.
package mermaid

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rogpeppe/flushorder/graph"
)

// Marshaler represents a type that can be marshaled into Mermaid diagram format.
type Marshaler interface {
	// MarshalMermaid returns the Mermaid representation of the object.
	// It returns an error if the marshaling fails.
	MarshalMermaid() ([]byte, error)
}

// NewGraph creates a Marshaler from a GraphInterface. The resulting Marshaler
// can be used to generate a Mermaid graph diagram representation.
func NewGraph[Node comparable, Edge any](g GraphInterface[Node, Edge]) Marshaler {
	return &graphImpl[Node, Edge]{g}
}

// GraphInterface defines the interface required for a graph to be marshaled
// to Mermaid format. It extends graph.EnumerableGraph with node metadata.
type GraphInterface[Node comparable, Edge any] interface {
	graph.EnumerableGraph[Node, Edge]
	// NodeInfo returns metadata about a node, including its ID, display text, and style.
	NodeInfo(Node) NodeInfo
}

// NodeInfo contains metadata about a graph node for Mermaid rendering.
type NodeInfo struct {
	// ID is the unique identifier for the node in the Mermaid diagram.
	ID string
	// Text is the display text for the node. If empty, ID is used instead.
	Text string
	// Style contains Mermaid style declarations for the node (e.g., "fill:#f9f,stroke:#333").
	Style string
}

// WithNodeInfo returns a GraphInterface that takes its structure from g
// and its node metadata from info.
func WithNodeInfo[Node comparable, Edge any](g graph.EnumerableGraph[Node, Edge], info func(Node) NodeInfo) GraphInterface[Node, Edge] {
	return &infoGraph[Node, Edge]{g, info}
}

type infoGraph[Node comparable, Edge any] struct {
	graph.EnumerableGraph[Node, Edge]
	info func(Node) NodeInfo
}

func (g *infoGraph[Node, Edge]) NodeInfo(n Node) NodeInfo {
	return g.info(n)
}

// Numbered returns a NodeInfo function for g that gives the nodes
// IDs n0, n1, ... in AllNodes order and uses text to label them.
// Nodes not in g get the ID "unknown".
func Numbered[Node comparable, Edge any](g graph.EnumerableGraph[Node, Edge], text func(Node) string) func(Node) NodeInfo {
	ids := make(map[Node]string)
	for n := range g.AllNodes() {
		ids[n] = fmt.Sprintf("n%d", len(ids))
	}
	return func(n Node) NodeInfo {
		id, ok := ids[n]
		if !ok {
			id = "unknown"
		}
		return NodeInfo{
			ID:   id,
			Text: text(n),
		}
	}
}

type graphImpl[Node comparable, Edge any] struct {
	g GraphInterface[Node, Edge]
}

func (g *graphImpl[Node, Edge]) MarshalMermaid() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph TD\n")
	for n := range g.g.AllNodes() {
		info := g.g.NodeInfo(n)
		if info.ID == "" {
			return nil, fmt.Errorf("mermaid: empty ID for node %v", n)
		}
		if info.ID != info.Text && info.Text != "" {
			fmt.Fprintf(&buf, "  %s[%s]\n", info.ID, quoteText(info.Text))
		}
		if info.Style != "" {
			fmt.Fprintf(&buf, "  style %s %s\n", info.ID, info.Style)
		}
		edges, ok := g.g.EdgesFrom(n)
		if ok {
			for _, e := range edges {
				from, to := g.g.Nodes(e)
				fmt.Fprintf(&buf, "  %s-->%s\n", g.g.NodeInfo(from).ID, g.g.NodeInfo(to).ID)
			}
		}
	}
	return buf.Bytes(), nil
}

// quoteText returns text quoted for use as a node label
// when it holds characters that Mermaid would otherwise
// treat as syntax.
func quoteText(text string) string {
	if !strings.ContainsAny(text, "[](){}<>|\"#;") {
		return text
	}
	return `"` + strings.ReplaceAll(text, `"`, "#quot;") + `"`
}
