package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/observability"
)

// Anchor is the reference cell every layout pass is built around.
type Anchor struct {
	Index  int            `json:"index"`
	Offset grid.Axes[int] `json:"offset"`
	Valid  bool           `json:"valid"`
}

// Anchor derivation reasons reported to observability hooks.
const (
	reasonFallback    = "fallback"
	reasonFocused     = "focused"
	reasonReference   = "reference"
	reasonRevalidated = "revalidated"
)

// AnchorTracker owns the anchor and keeps it valid and visually stable
// across passes, content changes and viewport resizes.
//
// The tracker is either invalid (no trustworthy anchor) or valid. An invalid
// tracker derives a new anchor from the attached placements at the start of
// the next pass; a valid one re-derives only when the element it tracks has
// left the viewport or is no longer attached.
type AnchorTracker struct {
	anchor Anchor
	axes   axisPair
	count  int
	logger *log.Logger
}

// NewAnchorTracker returns an invalid tracker for a grid of count cells.
func NewAnchorTracker(helpers grid.Axes[AxisHelper], count int) *AnchorTracker {
	return &AnchorTracker{
		anchor: Anchor{Index: -1},
		axes:   axisPair{helpers: helpers},
		count:  count,
		logger: log.New(io.Discard),
	}
}

// Anchor returns the current anchor.
func (t *AnchorTracker) Anchor() Anchor { return t.anchor }

// Invalidate forces the next revalidation to derive a fresh anchor.
func (t *AnchorTracker) Invalidate() { t.anchor.Valid = false }

// Shift moves the anchor offset by delta without changing its validity.
func (t *AnchorTracker) Shift(delta grid.Axes[int]) {
	t.anchor.Offset = grid.Add(t.anchor.Offset, delta)
}

// Revalidate checks the anchor against the placements of the previous pass
// and derives a new one when needed. It returns the reason for the current
// anchor.
func (t *AnchorTracker) Revalidate(children []Placement, speculative bool) string {
	var reason string
	switch {
	case !t.anchor.Valid:
		reason = t.derive(children, speculative)
	case t.trackedVisible(children):
		reason = reasonRevalidated
	default:
		reason = t.derive(children, speculative)
	}
	t.anchor.Valid = true

	t.logger.Debug("anchor", "index", t.anchor.Index, "offset", t.anchor.Offset, "reason", reason)
	observability.Layout().OnAnchor(t.anchor.Index, reason)
	return reason
}

// trackedVisible reports whether the element the anchor was taken from is
// still attached and at least partly visible.
func (t *AnchorTracker) trackedVisible(children []Placement) bool {
	var tracked *Placement
	for i := range children {
		if children[i].Index() != t.anchor.Index {
			continue
		}
		if tracked == nil || children[i].Leading == t.anchor.Offset {
			tracked = &children[i]
		}
	}
	if tracked == nil || tracked.Element.IsMarkedRemoved() {
		return false
	}
	return grid.All(t.axes.visible(*tracked))
}

// derive picks a new anchor from the attached placements, falling back to
// cell 0 at the start bounds.
func (t *AnchorTracker) derive(children []Placement, speculative bool) string {
	if focused, ok := t.focusedChild(children); ok {
		t.assignKeepVisible(focused)
		return reasonFocused
	}

	if ref, ok := t.referenceChild(children); ok {
		t.assignKeepVisible(ref)
		if !speculative {
			visible, start := t.axes.visible(ref), t.axes.start()
			for _, axis := range grid.EachAxis {
				if !visible.Get(axis) {
					t.anchor.Offset = t.anchor.Offset.With(axis, start.Get(axis))
				}
			}
		}
		return reasonReference
	}

	t.anchor.Index = 0
	t.anchor.Offset = t.axes.start()
	return reasonFallback
}

func (t *AnchorTracker) inRange(p Placement) bool {
	return p.Index() >= 0 && p.Index() < t.count
}

// focusedChild returns an attached, focused, not removed element.
func (t *AnchorTracker) focusedChild(children []Placement) (Placement, bool) {
	for _, c := range children {
		f, ok := c.Element.(Focuser)
		if !ok || !f.Focused() {
			continue
		}
		if t.inRange(c) && !c.Element.IsMarkedRemoved() {
			return c, true
		}
	}
	return Placement{}, false
}

// referenceChild returns the first in-range element that is visible,
// otherwise the first attached but out-of-bounds one, otherwise the first
// removed one.
func (t *AnchorTracker) referenceChild(children []Placement) (Placement, bool) {
	var outOfBounds, removed *Placement
	for i := range children {
		c := &children[i]
		if !t.inRange(*c) {
			continue
		}
		switch {
		case c.Element.IsMarkedRemoved():
			if removed == nil {
				removed = c
			}
		case !grid.All(t.axes.visible(*c)):
			if outOfBounds == nil {
				outOfBounds = c
			}
		default:
			return *c, true
		}
	}
	if outOfBounds != nil {
		return *outOfBounds, true
	}
	if removed != nil {
		return *removed, true
	}
	return Placement{}, false
}

// assignKeepVisible takes the anchor from p. When the viewport shrank on
// some axis, the offset is pulled back so the element's trailing edge stays
// inside the viewport, moving at most by its distance from the start bound.
func (t *AnchorTracker) assignKeepVisible(p Placement) {
	t.anchor.Index = p.Index()
	t.anchor.Offset = p.Leading

	change := t.axes.spaceChange()
	if grid.All(grid.MapAxes(change, func(c int) bool { return c >= 0 })) {
		return
	}

	start, end := t.axes.start(), t.axes.end()
	var offset grid.Axes[int]
	for _, axis := range grid.EachAxis {
		offset = offset.With(axis, keepVisible(axisSnapshot{
			start:      start.Get(axis),
			end:        end.Get(axis),
			change:     change.Get(axis),
			childStart: p.Leading.Get(axis),
			childEnd:   p.Trailing.Get(axis),
		}))
	}
	t.anchor.Offset = offset
}

// axisSnapshot is the per-axis input of keepVisible.
type axisSnapshot struct {
	start      int
	end        int
	change     int
	childStart int
	childEnd   int
}

func keepVisible(s axisSnapshot) int {
	offset := s.childStart
	startMargin := s.childStart - s.start
	if startMargin <= 0 {
		return offset
	}

	estimatedEnd := s.childEnd
	previousLayoutEnd := s.end - s.change
	previousEndMargin := previousLayoutEnd - s.childEnd
	endReference := s.end - min(0, previousEndMargin)
	if endMargin := endReference - estimatedEnd; endMargin < 0 {
		offset -= min(startMargin, -endMargin)
	}
	return offset
}
