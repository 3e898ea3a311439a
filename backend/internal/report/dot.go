package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"campaign-speeches/backend/internal/mention"
)

// DOT writes the mention matrix as a Graphviz digraph. Edge labels and pen
// widths carry the mention count; self-mentions are left out.
func DOT(w io.Writer, m *mention.Matrix, color func(string) string) error {
	if m == nil {
		return nil
	}
	b := bufio.NewWriter(w)
	fmt.Fprintln(b, "digraph mentions {")
	fmt.Fprintln(b, "  rankdir=LR;")
	fmt.Fprintln(b, `  node [shape=circle, style=filled, fontcolor=white, fontname="Helvetica"];`)
	for _, name := range m.Speakers {
		fill := "#949494"
		if color != nil {
			fill = color(name)
		}
		fmt.Fprintf(b, "  %s [fillcolor=%s];\n", strconv.Quote(name), strconv.Quote(fill))
	}

	edges := m.Edges()
	maxWeight := 1
	for _, e := range edges {
		if e.Weight > maxWeight {
			maxWeight = e.Weight
		}
	}
	for _, e := range edges {
		width := 1 + 4*float64(e.Weight)/float64(maxWeight)
		fmt.Fprintf(b, "  %s -> %s [label=%d, penwidth=%.1f];\n",
			strconv.Quote(e.From), strconv.Quote(e.To), e.Weight, width)
	}
	fmt.Fprintln(b, "}")
	return b.Flush()
}
