package topology

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts the block plan to Graphviz DOT format: blocks are nodes,
// shared curves are edges labeled with the curve name and node count. Used
// by the topology debug command to eyeball cross-block consistency.
func ToDOT(t *Topology) string {
	var buf bytes.Buffer
	buf.WriteString("graph topology {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, b := range t.Blocks {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", b.Name, blockLabel(b))
	}

	buf.WriteString("\n")
	nodes := t.curveConstraints()
	shared := t.SharedCurves()
	for _, curve := range slices.Sorted(maps.Keys(shared)) {
		blocks := shared[curve]
		label := fmt.Sprintf("%s (%d)", curve, nodes[curve].Nodes)
		fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", blocks[0], blocks[1], label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func blockLabel(b Block) string {
	sides := make([]string, len(b.Sides))
	for i, s := range b.Sides {
		sides[i] = fmt.Sprintf("%s: %d", s.Curve, s.Nodes)
	}
	return b.Name + "\n" + strings.Join(sides, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
