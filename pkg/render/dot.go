package render

import (
	"bytes"
	"fmt"
	"strings"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// UnitA and UnitB are the points per layout unit along each axis.
	// Terminal cells are one unit tall and several wide, so the defaults
	// stretch axis A more than axis B.
	UnitA float64
	UnitB float64

	// VisibleOnly drops cells outside the viewport.
	VisibleOnly bool
}

const (
	defaultUnitA  = 24
	defaultUnitB  = 6
	pointsPerInch = 72
)

func (o DOTOptions) units() (a, b float64) {
	a, b = o.UnitA, o.UnitB
	if a <= 0 {
		a = defaultUnitA
	}
	if b <= 0 {
		b = defaultUnitB
	}
	return a, b
}

// ToDOT converts a snapshot to a Graphviz graph for neato. Every cell is a
// fixed-size box pinned at its placed center; the viewport is a dotted box
// behind them.
func ToDOT(s Snapshot, opts DOTOptions) string {
	ua, ub := opts.units()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=white, fixedsize=true, fontsize=10, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	vp := s.Viewport
	writeBox(&buf, "viewport", "",
		vp.Start.A, vp.Start.B, vp.End.A, vp.End.B, ua, ub,
		`style="dotted", fillcolor="none", color=grey50`)

	for _, c := range s.Cells {
		if opts.VisibleOnly && !c.Visible {
			continue
		}
		var attrs []string
		if !c.Visible {
			attrs = append(attrs, `style="filled,dashed"`, "fillcolor=grey90", "fontcolor=grey40")
		}
		if c.Anchor {
			attrs = append(attrs, "penwidth=2.5")
		}
		writeBox(&buf, fmt.Sprintf("c%d_%d_%d", c.Index, c.Leading.A, c.Leading.B), c.Content,
			c.Leading.A, c.Leading.B, c.Trailing.A, c.Trailing.B, ua, ub,
			strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeBox emits a node covering [a0, a1) x [b0, b1). Graphviz puts the
// origin at the bottom left, so axis A is negated.
func writeBox(buf *bytes.Buffer, id, label string, a0, b0, a1, b1 int, ua, ub float64, extra string) {
	x := float64(b0+b1) / 2 * ub
	y := -float64(a0+a1) / 2 * ua
	w := float64(b1-b0) * ub / pointsPerInch
	h := float64(a1-a0) * ua / pointsPerInch

	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.1f,%.1f!\"", x, y),
		fmt.Sprintf("width=%.3f", w),
		fmt.Sprintf("height=%.3f", h),
	}
	if extra != "" {
		attrs = append(attrs, extra)
	}
	fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
}
