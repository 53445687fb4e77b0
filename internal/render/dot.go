package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/barafael/page-graph/internal/graph"
	"github.com/barafael/page-graph/internal/model"
)

// DOTOptions configures DOT output.
type DOTOptions struct {
	// Orphans marks identifiers to render with a distinct style so
	// unreachable pages stand out in the rendered graph.
	Orphans []model.PageID

	// Labels maps identifiers to display labels (typically page titles).
	// Nodes without an entry are labeled with their identifier.
	Labels map[model.PageID]string
}

// ToDOT converts a page graph to Graphviz DOT format.
//
// Output is deterministic: nodes and edges are emitted in the graph's
// sorted enumeration order, so the same graph always renders to the same
// bytes. Edges are uniformly unlabeled.
func ToDOT(g *graph.PageGraph, opts DOTOptions) string {
	orphans := make(map[model.PageID]bool, len(opts.Orphans))
	for _, id := range opts.Orphans {
		orphans[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph pages {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		attrs := nodeAttrs(id, opts.Labels[id], orphans[id])
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// WriteDOT renders the graph to w in DOT format.
func WriteDOT(w io.Writer, g *graph.PageGraph, opts DOTOptions) error {
	if _, err := io.WriteString(w, ToDOT(g, opts)); err != nil {
		return fmt.Errorf("write dot: %w", err)
	}
	return nil
}

func nodeAttrs(id model.PageID, label string, orphan bool) []string {
	if label == "" {
		label = id
	} else if label != id {
		label = label + "\n" + id
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if orphan {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=mistyrose")
	}
	return attrs
}
