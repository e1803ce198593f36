// Package dot draws an axis problem as a Graphviz graph: elements form a
// left-to-right chain of record nodes and every range constraint becomes a
// dashed edge from its first to its last element, labelled with its bounds.
// Passing a solution adds the solved sizes and highlights relaxed ranges.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridaxis/pkg/problem"
)

// ToDOT returns the DOT source for p. sol may be nil.
func ToDOT(p *problem.Problem, sol *problem.Solution) string {
	elems := make(map[int]problem.Element, len(p.Elements))
	for _, e := range p.Elements {
		elems[e.Index] = e
	}
	relaxed := make(map[[2]int]problem.Relaxation)
	if sol != nil {
		for _, r := range sol.Relaxed {
			relaxed[[2]int{r.First, r.Last}] = r
		}
	}

	var buf bytes.Buffer
	name := p.Name
	if name == "" {
		name = "axis"
	}
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n\n")

	n := p.Count()
	for i := range n {
		e, ok := elems[i]
		fields := []string{fmt.Sprintf("#%d", i)}
		if ok {
			fields = append(fields, bounds(e.Min, e.Max, e.Preferred))
		} else {
			fields = append(fields, "unconstrained")
		}
		attrs := ""
		if sol != nil && i < len(sol.Elements) {
			pl := sol.Elements[i]
			fields = append(fields, fmt.Sprintf("%d @ %d", pl.Size, pl.Location))
			if pl.Size == 0 {
				attrs = ", fillcolor=lightgrey"
			}
		}
		fmt.Fprintf(&buf, "  e%d [label=%q%s];\n", i, "{"+strings.Join(fields, "|")+"}", attrs)
	}

	buf.WriteString("\n")
	for i := 1; i < n; i++ {
		fmt.Fprintf(&buf, "  e%d -> e%d [arrowhead=none, penwidth=2];\n", i-1, i)
	}

	for _, r := range p.Ranges {
		label := fmt.Sprintf("[%d..%d] %s", r.First, r.Last, bounds(r.Min, r.Max, r.Preferred))
		style := "style=dashed, color=steelblue"
		if rx, ok := relaxed[[2]int{r.First, r.Last}]; ok {
			label += fmt.Sprintf(" (max %d->%d)", rx.Declared, rx.Relaxed)
			style = "style=dashed, color=firebrick, fontcolor=firebrick"
		}
		fmt.Fprintf(&buf, "  e%d -> e%d [label=%q, constraint=false, %s];\n", r.First, r.Last, label, style)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func bounds(lo, hi, preferred *int) string {
	var parts []string
	if lo != nil {
		parts = append(parts, fmt.Sprintf("min %d", *lo))
	}
	if hi != nil {
		parts = append(parts, fmt.Sprintf("max %d", *hi))
	}
	if preferred != nil {
		parts = append(parts, fmt.Sprintf("pref %d", *preferred))
	}
	if len(parts) == 0 {
		return "free"
	}
	return strings.Join(parts, " ")
}

// RenderSVG renders DOT source to SVG with the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
