package layout

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tablegrid/pkg/errors"
	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/observability"
)

// DefaultCellSize is the per-axis element size reported before the host
// configures one.
const DefaultCellSize = 96

// quadrant is one of the four fill regions around the anchor.
type quadrant struct {
	name string
	dir  grid.Axes[grid.Direction]
}

// quadrants lists the fill order of a pass.
var quadrants = [4]quadrant{
	{"end,end", grid.Of(grid.End, grid.End)},
	{"start,end", grid.Of(grid.Start, grid.End)},
	{"end,start", grid.Of(grid.End, grid.Start)},
	{"start,start", grid.Of(grid.Start, grid.Start)},
}

// PassResult summarizes one layout pass.
type PassResult struct {
	Speculative bool              `json:"speculative"`
	Anchor      Anchor            `json:"anchor"`
	Reason      string            `json:"reason"`
	Placed      int               `json:"placed"`
	Consumed    [4]grid.Axes[int] `json:"consumed"`
	Errors      int               `json:"errors"`
}

// String implements fmt.Stringer.
func (r PassResult) String() string {
	kind := "final"
	if r.Speculative {
		kind = "speculative"
	}
	return fmt.Sprintf("%s pass: anchor #%d at %v (%s), %d placed", kind, r.Anchor.Index, r.Anchor.Offset, r.Reason, r.Placed)
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCellSize sets the size reported by [Engine.DefaultElementSize] and
// the largest step [Engine.ScrollBy] takes per pass.
func WithCellSize(size grid.Axes[int]) Option {
	return func(e *Engine) {
		if grid.All(grid.MapAxes(size, func(v int) bool { return v > 0 })) {
			e.cellSize = size
		}
	}
}

// Engine lays out a toroidal grid of cells inside a viewport.
type Engine struct {
	mapper   grid.Mapper
	pool     Pool
	axes     axisPair
	anchor   *AnchorTracker
	cellSize grid.Axes[int]
	attached []Placement
	passes   int
	dirty    bool
	logger   *log.Logger
}

// New creates an engine for the grid described by mapper. The source must
// provide exactly Rows*Cols cells.
func New(mapper grid.Mapper, source CellCounter, pool Pool, helpers grid.Axes[AxisHelper], opts ...Option) (*Engine, error) {
	if err := errors.ValidateDimensions(mapper.Rows, mapper.Cols); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "cell source is required")
	}
	if n := source.CellCount(); n != mapper.Len() {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"cell count %d does not match %dx%d grid (%d cells)", n, mapper.Rows, mapper.Cols, mapper.Len())
	}
	if pool == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "element pool is required")
	}
	if helpers.A == nil || helpers.B == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "axis helpers are required for both axes")
	}

	e := &Engine{
		mapper:   mapper,
		pool:     pool,
		axes:     axisPair{helpers: helpers},
		anchor:   NewAnchorTracker(helpers, mapper.Len()),
		cellSize: grid.Both(DefaultCellSize),
		dirty:    true,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.anchor.logger = e.logger
	return e, nil
}

// RunLayoutPass performs one full layout pass. A speculative pass charges
// nothing for removed or changed elements and leaves the anchor invalid so
// the following final pass derives a fresh one.
func (e *Engine) RunLayoutPass(speculative bool) PassResult {
	began := time.Now()
	observability.Layout().OnPassStart(speculative)

	res := PassResult{Speculative: speculative}
	res.Reason = e.anchor.Revalidate(e.attached, speculative)
	res.Anchor = e.anchor.Anchor()

	e.detach()
	for i, q := range quadrants {
		st := e.stateFor(q.dir, speculative)
		before := len(e.attached)
		consumed, err := e.fill(st)
		if err != nil {
			e.logger.Error("fill failed", "quadrant", q.name, "index", st.Index, "err", err)
			res.Errors++
		}
		res.Consumed[i] = consumed
		placed := len(e.attached) - before
		e.logger.Debug("fill", "quadrant", q.name, "index", st.Index, "available", st.Available, "placed", placed, "consumed", consumed)
		observability.Layout().OnFill(q.name, placed, consumed.A, consumed.B)
	}
	res.Placed = len(e.attached)

	if speculative {
		e.anchor.Invalidate()
	} else {
		e.axes.layoutComplete()
	}
	e.passes++
	e.dirty = speculative

	elapsed := time.Since(began)
	e.logger.Debug("pass complete", "speculative", speculative, "placed", res.Placed, "duration", elapsed)
	observability.Layout().OnPassComplete(speculative, res.Placed, elapsed)
	return res
}

// stateFor builds the fill input of the quadrant growing in dir. Quadrants
// growing toward the start begin one cell before the anchor on that axis so
// the anchor's row and column are not placed twice.
func (e *Engine) stateFor(dir grid.Axes[grid.Direction], speculative bool) State {
	a := e.anchor.Anchor()
	index := a.Index
	for _, axis := range grid.EachAxis {
		if dir.Get(axis) == grid.Start {
			// The anchor index is validated by the tracker, so stepping
			// cannot fail.
			index, _ = e.mapper.StepIndex(index, axis, grid.Start)
		}
	}
	return State{
		Index:       index,
		Offset:      a.Offset,
		Available:   e.axes.available(a.Offset, dir),
		Direction:   dir,
		Speculative: speculative,
	}
}

// detach returns every attached element to the pool.
func (e *Engine) detach() {
	for _, p := range e.attached {
		e.pool.Return(p.Element)
	}
	e.attached = e.attached[:0]
}

// DetachAll returns every attached element to the pool without running a
// pass. The anchor is kept.
func (e *Engine) DetachAll() {
	e.detach()
	e.dirty = true
}

// ScrollBy moves the content by delta and relays out. Large deltas are
// applied in steps of at most one cell per axis so that the anchor always
// has an attached neighbor to move to. Because the grid wraps, the whole
// delta is always consumed and returned; only its remainder modulo one
// full turn of the grid is stepped through.
func (e *Engine) ScrollBy(delta grid.Axes[int]) grid.Axes[int] {
	if e.passes == 0 || e.dirty {
		e.RunLayoutPass(false)
	}

	period := grid.ZipAxes(e.mapper.Extent(), e.cellSize, func(n, size int) int { return n * size })
	remaining := grid.ZipAxes(delta, period, func(v, p int) int { return v % p })
	for grid.Any(grid.MapAxes(remaining, func(v int) bool { return v != 0 })) {
		step := grid.ZipAxes(remaining, e.cellSize, func(v, limit int) int {
			return max(-limit, min(limit, v))
		})
		shift := grid.MapAxes(step, func(v int) int { return -v })
		for i := range e.attached {
			e.attached[i] = e.attached[i].shifted(shift)
			e.pool.Place(e.attached[i].Element, e.attached[i].Leading, e.attached[i].Trailing)
		}
		e.anchor.Shift(shift)
		e.RunLayoutPass(false)
		remaining = grid.Sub(remaining, step)
	}
	return delta
}

// OnViewportChanged marks the layout stale after a resize or padding change.
func (e *Engine) OnViewportChanged() {
	e.anchor.Invalidate()
	e.dirty = true
}

// OnDatasetChanged marks the layout stale after the cell contents were
// replaced wholesale.
func (e *Engine) OnDatasetChanged() {
	e.anchor.Invalidate()
	e.dirty = true
}

// NeedsLayout reports whether a final pass is due.
func (e *Engine) NeedsLayout() bool { return e.dirty }

// Anchor returns the current anchor.
func (e *Engine) Anchor() Anchor { return e.anchor.Anchor() }

// Placements returns a copy of the elements attached by the last pass, in
// placement order.
func (e *Engine) Placements() []Placement {
	out := make([]Placement, len(e.attached))
	copy(out, e.attached)
	return out
}

// Mapper returns the engine's coordinate mapper.
func (e *Engine) Mapper() grid.Mapper { return e.mapper }

// CanScrollAxisA reports whether content can scroll along axis A.
func (e *Engine) CanScrollAxisA() bool { return true }

// CanScrollAxisB reports whether content can scroll along axis B.
func (e *Engine) CanScrollAxisB() bool { return true }

// DefaultElementSize returns the configured cell size along axis.
func (e *Engine) DefaultElementSize(axis grid.Axis) int { return e.cellSize.Get(axis) }
