package layout

import (
	"testing"

	"github.com/matzehuels/tablegrid/pkg/grid"
)

// testElement is a minimal Element bound by testPool.
type testElement struct {
	index int
	pool  *testPool
}

func (e *testElement) Index() int { return e.index }

func (e *testElement) IsMarkedRemoved() bool { return e.pool.removed[e.index] }

func (e *testElement) IsMarkedChanged() bool { return e.pool.changed[e.index] }

func (e *testElement) Focused() bool { return e.pool.focused == e.index }

// testPool hands out fixed-size elements and records every call.
type testPool struct {
	t        *testing.T
	size     grid.Axes[int]
	limit    int // maximum requests served per pass, 0 for unlimited
	cells    int
	served   int
	scrap    []*testElement
	requests []int
	returned int
	removed  map[int]bool
	changed  map[int]bool
	focused  int
}

func newTestPool(t *testing.T, cells int, size grid.Axes[int]) *testPool {
	return &testPool{
		t:       t,
		size:    size,
		cells:   cells,
		removed: map[int]bool{},
		changed: map[int]bool{},
		focused: -1,
	}
}

func (p *testPool) CellCount() int { return p.cells }

func (p *testPool) Request(index int) (Element, bool) {
	if index < 0 || index >= p.cells {
		p.t.Errorf("Request(%d) outside [0, %d)", index, p.cells)
	}
	p.requests = append(p.requests, index)
	if p.limit > 0 && p.served >= p.limit {
		return nil, false
	}
	p.served++
	if n := len(p.scrap); n > 0 {
		el := p.scrap[n-1]
		p.scrap = p.scrap[:n-1]
		el.index = index
		return el, true
	}
	return &testElement{index: index, pool: p}, true
}

func (p *testPool) Return(el Element) {
	te := el.(*testElement)
	te.index = -1
	p.scrap = append(p.scrap, te)
	p.returned++
}

func (p *testPool) Measure(Element) grid.Axes[int] { return p.size }

func (p *testPool) Place(Element, grid.Axes[int], grid.Axes[int]) {}

// resetPass clears the per-pass request counters.
func (p *testPool) resetPass() {
	p.served = 0
	p.requests = nil
}

// testAxis is an AxisHelper over a fixed [start, end) range.
type testAxis struct {
	start, end int
	change     int
	completed  int
}

func (a *testAxis) StartAfterPadding() int { return a.start }
func (a *testAxis) EndAfterPadding() int   { return a.end }
func (a *testAxis) TotalSpaceChange() int  { return a.change }

func (a *testAxis) OnLayoutComplete() {
	a.change = 0
	a.completed++
}

// resize moves the end bound and records the change.
func (a *testAxis) resize(end int) {
	a.change += end - a.end
	a.end = end
}

type testHarness struct {
	engine *Engine
	pool   *testPool
	axes   grid.Axes[*testAxis]
}

// newTestHarness builds an engine for a rows x cols grid of size-pixel
// cells inside a viewport of the given extent.
func newTestHarness(t *testing.T, rows, cols, size int, viewport grid.Axes[int]) *testHarness {
	t.Helper()
	mapper, err := grid.NewMapper(rows, cols)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	pool := newTestPool(t, rows*cols, grid.Both(size))
	axes := grid.Of(&testAxis{end: viewport.A}, &testAxis{end: viewport.B})
	helpers := grid.Of[AxisHelper](axes.A, axes.B)

	e, err := New(mapper, pool, pool, helpers, WithCellSize(grid.Both(size)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &testHarness{engine: e, pool: pool, axes: axes}
}

// find returns the first placement of index.
func find(placements []Placement, index int) (Placement, bool) {
	for _, p := range placements {
		if p.Index() == index {
			return p, true
		}
	}
	return Placement{}, false
}

func overlaps(p, q Placement) bool {
	return grid.All(grid.ZipAxes(
		grid.ZipAxes(p.Leading, p.Trailing, func(l, t int) [2]int { return [2]int{l, t} }),
		grid.ZipAxes(q.Leading, q.Trailing, func(l, t int) [2]int { return [2]int{l, t} }),
		func(a, b [2]int) bool { return a[0] < b[1] && b[0] < a[1] },
	))
}
