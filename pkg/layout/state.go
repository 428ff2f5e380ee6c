package layout

import (
	"fmt"

	"github.com/matzehuels/tablegrid/pkg/grid"
)

// State is the input of one quadrant fill. It is built fresh for every
// quadrant and never mutated by the fill.
type State struct {
	Index       int                       // first cell to place
	Offset      grid.Axes[int]            // position the first cell grows from
	Available   grid.Axes[int]            // budget per axis
	Direction   grid.Axes[grid.Direction] // growth direction per axis
	Speculative bool                      // pre-layout pass
}

// chunk is the outcome of placing a single element.
type chunk struct {
	Consumed grid.Axes[int]
	Finished bool // the pool had nothing for the requested index
	Ignored  bool // removed or changed content during a speculative pass
}

// Placement is an attached element and the edges it was placed at.
type Placement struct {
	Element  Element
	Leading  grid.Axes[int]
	Trailing grid.Axes[int]
}

// Index returns the bound cell index of the placed element.
func (p Placement) Index() int { return p.Element.Index() }

// Size returns the placed extent along both axes.
func (p Placement) Size() grid.Axes[int] { return grid.Sub(p.Trailing, p.Leading) }

// shifted returns p moved by delta.
func (p Placement) shifted(delta grid.Axes[int]) Placement {
	p.Leading = grid.Add(p.Leading, delta)
	p.Trailing = grid.Add(p.Trailing, delta)
	return p
}

// String implements fmt.Stringer.
func (p Placement) String() string {
	return fmt.Sprintf("#%d [%d,%d)x[%d,%d)", p.Index(), p.Leading.A, p.Trailing.A, p.Leading.B, p.Trailing.B)
}

// spanAxes computes the edges of an element of the given size placed at
// offset and growing in dir.
func spanAxes(dir grid.Axes[grid.Direction], offset, size grid.Axes[int]) (leading, trailing grid.Axes[int]) {
	for _, axis := range grid.EachAxis {
		l, t := dir.Get(axis).Span(offset.Get(axis), size.Get(axis))
		leading, trailing = leading.With(axis, l), trailing.With(axis, t)
	}
	return leading, trailing
}

// axisPair composes the two axis helpers.
type axisPair struct {
	helpers grid.Axes[AxisHelper]
}

func (p axisPair) start() grid.Axes[int] {
	return grid.MapAxes(p.helpers, func(h AxisHelper) int { return h.StartAfterPadding() })
}

func (p axisPair) end() grid.Axes[int] {
	return grid.MapAxes(p.helpers, func(h AxisHelper) int { return h.EndAfterPadding() })
}

func (p axisPair) spaceChange() grid.Axes[int] {
	return grid.MapAxes(p.helpers, func(h AxisHelper) int { return h.TotalSpaceChange() })
}

func (p axisPair) layoutComplete() {
	for _, axis := range grid.EachAxis {
		p.helpers.Get(axis).OnLayoutComplete()
	}
}

// visible reports, per axis, whether a placement overlaps the usable area.
func (p axisPair) visible(pl Placement) grid.Axes[bool] {
	start, end := p.start(), p.end()
	return grid.ZipAxes(
		grid.ZipAxes(pl.Leading, pl.Trailing, func(l, t int) [2]int { return [2]int{l, t} }),
		grid.ZipAxes(start, end, func(s, e int) [2]int { return [2]int{s, e} }),
		func(edge, bound [2]int) bool { return edge[0] < bound[1] && edge[1] > bound[0] },
	)
}

// available returns the distance from offset to the viewport bound in the
// direction of growth.
func (p axisPair) available(offset grid.Axes[int], dir grid.Axes[grid.Direction]) grid.Axes[int] {
	start, end := p.start(), p.end()
	var out grid.Axes[int]
	for _, axis := range grid.EachAxis {
		if dir.Get(axis) == grid.End {
			out = out.With(axis, end.Get(axis)-offset.Get(axis))
		} else {
			out = out.With(axis, offset.Get(axis)-start.Get(axis))
		}
	}
	return out
}
