// Package nodelink renders a family tree as a Graphviz node-link diagram.
// Child relations draw as solid arrows, marriages as dashed lines.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/gedvault/gedvault/pkg/gedcom"
	"github.com/gedvault/gedvault/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes life spans in node labels. When false, only the
	// person's name is shown.
	Detailed bool
}

// ToDOT converts a laid-out tree to Graphviz DOT. Generations rank left
// to right, mirroring the canvas orientation: ancestors on the right.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(s tree.Structure, idx *gedcom.Index, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=RL;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make([]string, 0, s.Len())
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		label := fmtLabel(id, idx, opts.Detailed)
		attrs := fmtAttrs(idx.Sex(id), label)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range ids {
		n, _ := s.Node(id)
		for _, child := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", child, id)
		}
		for _, spouse := range n.Spouses {
			if id < spouse {
				fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed, constraint=false];\n", id, spouse)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(id string, idx *gedcom.Index, detailed bool) string {
	in, ok := idx.Person(id)
	if !ok {
		return id
	}
	label := in.FullName()
	if detailed {
		if span := in.LifeSpan(); span != "" {
			label += "\n" + span
		}
	}
	return label
}

func fmtAttrs(sex tree.Sex, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch sex {
	case tree.SexMale:
		attrs = append(attrs, "fillcolor=lightblue")
	case tree.SexFemale:
		attrs = append(attrs, "fillcolor=mistyrose")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
