// Package pool provides the element recycler the layout engine draws cells
// from.
//
// A [Recycler] hands out [Cell] values bound to a cell index and keeps
// returned cells in a scrap list so that scrolling reuses them instead of
// allocating. Cells carry a stable handle ID for the lifetime of the
// recycler, which renderers use as a key.
package pool

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/layout"
	"github.com/matzehuels/tablegrid/pkg/observability"
)

// ContentSource supplies the text bound into a cell.
type ContentSource interface {
	CellContent(index int) string
}

// Cell is a recyclable visual element.
type Cell struct {
	ID uuid.UUID

	index    int
	content  string
	leading  grid.Axes[int]
	trailing grid.Axes[int]
	owner    *Recycler
}

// Index returns the bound cell index, or -1 while the cell sits in scrap.
func (c *Cell) Index() int { return c.index }

// Content returns the text bound into the cell.
func (c *Cell) Content() string { return c.content }

// Rect returns the edges the cell was last placed at.
func (c *Cell) Rect() (leading, trailing grid.Axes[int]) { return c.leading, c.trailing }

// IsMarkedRemoved reports whether the bound index is marked as removed.
func (c *Cell) IsMarkedRemoved() bool { return c.index >= 0 && c.owner.removed[c.index] }

// IsMarkedChanged reports whether the bound index is marked as changed.
func (c *Cell) IsMarkedChanged() bool { return c.index >= 0 && c.owner.changed[c.index] }

// Focused reports whether the bound index holds the focus.
func (c *Cell) Focused() bool { return c.index >= 0 && c.owner.focus == c.index }

// String implements fmt.Stringer.
func (c *Cell) String() string {
	return fmt.Sprintf("cell %s #%d %q", c.ID.String()[:8], c.index, c.content)
}

// Stats counts recycler activity.
type Stats struct {
	Created  int `json:"created"`
	Recycled int `json:"recycled"`
	Returned int `json:"returned"`
	Bound    int `json:"bound"`
	Scrap    int `json:"scrap"`
}

// Option configures a [Recycler].
type Option func(*Recycler)

// WithLimit caps the number of cells bound at the same time. Requests past
// the cap fail, which ends the current fill. Zero means no cap.
func WithLimit(n int) Option {
	return func(r *Recycler) {
		if n >= 0 {
			r.limit = n
		}
	}
}

// Recycler implements [layout.Pool] over a content source.
type Recycler struct {
	source  ContentSource
	size    grid.Axes[int]
	limit   int
	scrap   []*Cell
	removed map[int]bool
	changed map[int]bool
	focus   int
	stats   Stats
}

var _ layout.Pool = (*Recycler)(nil)

// New creates a recycler whose cells all measure size.
func New(source ContentSource, size grid.Axes[int], opts ...Option) *Recycler {
	r := &Recycler{
		source:  source,
		size:    size,
		removed: map[int]bool{},
		changed: map[int]bool{},
		focus:   -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request binds a cell to index, reusing scrap when available.
func (r *Recycler) Request(index int) (layout.Element, bool) {
	if r.limit > 0 && r.stats.Bound >= r.limit {
		return nil, false
	}

	var c *Cell
	if n := len(r.scrap); n > 0 {
		c = r.scrap[n-1]
		r.scrap = r.scrap[:n-1]
		r.stats.Recycled++
		observability.Pool().OnRecycle(index)
	} else {
		c = &Cell{ID: uuid.New(), owner: r}
		r.stats.Created++
		observability.Pool().OnCreate(index)
	}

	c.index = index
	c.content = r.source.CellContent(index)
	r.stats.Bound++
	return c, true
}

// Return unbinds el and keeps it for reuse. Elements from other pools are
// ignored.
func (r *Recycler) Return(el layout.Element) {
	c, ok := el.(*Cell)
	if !ok || c.owner != r || c.index < 0 {
		return
	}
	observability.Pool().OnReturn(c.index)

	c.index = -1
	c.content = ""
	r.scrap = append(r.scrap, c)
	r.stats.Returned++
	r.stats.Bound--
}

// Measure returns the fixed cell size.
func (r *Recycler) Measure(layout.Element) grid.Axes[int] { return r.size }

// Place records the edges on the cell.
func (r *Recycler) Place(el layout.Element, leading, trailing grid.Axes[int]) {
	if c, ok := el.(*Cell); ok {
		c.leading, c.trailing = leading, trailing
	}
}

// MarkRemoved flags or clears index as being removed.
func (r *Recycler) MarkRemoved(index int, removed bool) { setFlag(r.removed, index, removed) }

// MarkChanged flags or clears index as having changed content.
func (r *Recycler) MarkChanged(index int, changed bool) { setFlag(r.changed, index, changed) }

// ClearMarks drops every removed and changed flag.
func (r *Recycler) ClearMarks() {
	clear(r.removed)
	clear(r.changed)
}

// SetFocus moves the focus to index. A negative index clears it.
func (r *Recycler) SetFocus(index int) { r.focus = max(index, -1) }

// Focus returns the focused index, or -1.
func (r *Recycler) Focus() int { return r.focus }

// Stats returns a snapshot of the activity counters.
func (r *Recycler) Stats() Stats {
	s := r.stats
	s.Scrap = len(r.scrap)
	return s
}

func setFlag(m map[int]bool, index int, on bool) {
	if on {
		m[index] = true
	} else {
		delete(m, index)
	}
}
