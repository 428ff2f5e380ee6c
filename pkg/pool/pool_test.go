package pool

import (
	"fmt"
	"testing"

	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/layout"
	"github.com/matzehuels/tablegrid/pkg/observability"
	"github.com/matzehuels/tablegrid/pkg/viewport"
)

type indexSource int

func (n indexSource) CellContent(index int) string { return fmt.Sprintf("cell %d", index) }

func (n indexSource) CellCount() int { return int(n) }

func TestRequestAndReturn(t *testing.T) {
	r := New(indexSource(10), grid.Of(1, 16))

	el, ok := r.Request(3)
	if !ok {
		t.Fatal("Request(3) failed")
	}
	c := el.(*Cell)
	if c.Index() != 3 {
		t.Errorf("Index() = %d, want 3", c.Index())
	}
	if c.Content() != "cell 3" {
		t.Errorf("Content() = %q, want %q", c.Content(), "cell 3")
	}
	if got := r.Measure(c); got != grid.Of(1, 16) {
		t.Errorf("Measure() = %v, want (1, 16)", got)
	}

	r.Place(c, grid.Of(2, 32), grid.Of(3, 48))
	if l, tr := c.Rect(); l != grid.Of(2, 32) || tr != grid.Of(3, 48) {
		t.Errorf("Rect() = %v, %v, want (2, 32), (3, 48)", l, tr)
	}

	id := c.ID
	r.Return(c)
	if c.Index() != -1 {
		t.Errorf("Index() after Return = %d, want -1", c.Index())
	}

	el, _ = r.Request(7)
	if got := el.(*Cell); got.ID != id || got.Content() != "cell 7" {
		t.Errorf("recycled cell = %v, want ID %s rebound to 7", got, id)
	}

	want := Stats{Created: 1, Recycled: 1, Returned: 1, Bound: 1}
	if got := r.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestReturnIgnoresForeignCells(t *testing.T) {
	a := New(indexSource(4), grid.Both(1))
	b := New(indexSource(4), grid.Both(1))

	el, _ := a.Request(0)
	b.Return(el)
	b.Return(nil)
	if got := b.Stats().Scrap; got != 0 {
		t.Errorf("foreign Return left %d cells in scrap, want 0", got)
	}

	a.Return(el)
	a.Return(el)
	if got := a.Stats(); got.Returned != 1 || got.Bound != 0 {
		t.Errorf("double Return stats = %+v, want one return", got)
	}
}

func TestWithLimit(t *testing.T) {
	r := New(indexSource(10), grid.Both(1), WithLimit(2))
	for i := range 2 {
		if _, ok := r.Request(i); !ok {
			t.Fatalf("Request(%d) failed under limit", i)
		}
	}
	if _, ok := r.Request(2); ok {
		t.Error("Request past limit should fail")
	}
}

func TestMarks(t *testing.T) {
	r := New(indexSource(10), grid.Both(1))
	el, _ := r.Request(4)
	c := el.(*Cell)

	r.MarkRemoved(4, true)
	r.MarkChanged(4, true)
	r.SetFocus(4)
	if !c.IsMarkedRemoved() || !c.IsMarkedChanged() || !c.Focused() {
		t.Error("cell 4 should be removed, changed and focused")
	}
	if r.Focus() != 4 {
		t.Errorf("Focus() = %d, want 4", r.Focus())
	}

	r.MarkRemoved(4, false)
	if c.IsMarkedRemoved() {
		t.Error("cell 4 should no longer be removed")
	}
	r.ClearMarks()
	if c.IsMarkedChanged() {
		t.Error("ClearMarks should drop changed flags")
	}
	r.SetFocus(-5)
	if c.Focused() || r.Focus() != -1 {
		t.Errorf("Focus() = %d after clearing, want -1", r.Focus())
	}

	// Scrap cells never report marks.
	r.SetFocus(4)
	r.Return(c)
	if c.Focused() {
		t.Error("scrap cell should not report focus")
	}
}

type countingHooks struct {
	observability.NoopPoolHooks
	created, recycled, returned int
}

func (h *countingHooks) OnCreate(int)  { h.created++ }
func (h *countingHooks) OnRecycle(int) { h.recycled++ }
func (h *countingHooks) OnReturn(int)  { h.returned++ }

func TestRecyclerDrivesEngine(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPoolHooks(hooks)
	t.Cleanup(observability.Reset)

	src := indexSource(100)
	mapper, err := grid.NewMapper(10, 10)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	vp, err := viewport.New(grid.Of(3, 32), viewport.Padding{})
	if err != nil {
		t.Fatalf("viewport.New: %v", err)
	}
	r := New(src, grid.Of(1, 16))
	e, err := layout.New(mapper, src, r, vp.Helpers(), layout.WithCellSize(grid.Of(1, 16)))
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}

	first := e.RunLayoutPass(false)
	if first.Placed != 6 {
		t.Fatalf("Placed = %d, want 6", first.Placed)
	}
	created := r.Stats().Created

	e.RunLayoutPass(false)
	stats := r.Stats()
	if stats.Created != created {
		t.Errorf("Created = %d after second pass, want %d", stats.Created, created)
	}
	if stats.Recycled != 6 {
		t.Errorf("Recycled = %d, want 6", stats.Recycled)
	}
	if stats.Bound != 6 {
		t.Errorf("Bound = %d, want 6", stats.Bound)
	}
	if hooks.created != created || hooks.recycled != 6 || hooks.returned != 6 {
		t.Errorf("hooks = %d/%d/%d, want %d/6/6", hooks.created, hooks.recycled, hooks.returned, created)
	}

	for _, p := range e.Placements() {
		c := p.Element.(*Cell)
		if l, tr := c.Rect(); l != p.Leading || tr != p.Trailing {
			t.Errorf("cell %d rect = %v-%v, want %v-%v", c.Index(), l, tr, p.Leading, p.Trailing)
		}
	}
}
