package render

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/layout"
	"github.com/matzehuels/tablegrid/pkg/viewport"
)

// ContentSource resolves the text of a cell by index.
type ContentSource interface {
	CellContent(index int) string
}

// contentElement is implemented by pool cells that carry their bound text.
type contentElement interface {
	Content() string
}

// Snapshot is the exportable state of an engine after a pass.
type Snapshot struct {
	ID       uuid.UUID      `json:"id"`
	Created  time.Time      `json:"created"`
	Grid     grid.Axes[int] `json:"grid"`
	Viewport Bounds         `json:"viewport"`
	Anchor   layout.Anchor  `json:"anchor"`
	Cells    []Cell         `json:"cells"`
}

// Bounds is the usable viewport area.
type Bounds struct {
	Start grid.Axes[int] `json:"start"`
	End   grid.Axes[int] `json:"end"`
}

// overlaps reports whether the rectangle [leading, trailing) overlaps b.
func (b Bounds) overlaps(leading, trailing grid.Axes[int]) bool {
	return leading.A < b.End.A && trailing.A > b.Start.A &&
		leading.B < b.End.B && trailing.B > b.Start.B
}

// Cell is one placed element.
type Cell struct {
	Index    int            `json:"index"`
	Coord    grid.Coord     `json:"coord"`
	Content  string         `json:"content"`
	Leading  grid.Axes[int] `json:"leading"`
	Trailing grid.Axes[int] `json:"trailing"`
	Visible  bool           `json:"visible"`
	Anchor   bool           `json:"anchor,omitempty"`
}

// NewSnapshot captures the current placements of e. Cell text is taken from
// the element when it carries one, otherwise from src.
func NewSnapshot(e *layout.Engine, src ContentSource, vp *viewport.Viewport) Snapshot {
	mapper := e.Mapper()
	anchor := e.Anchor()
	bounds := Bounds{
		Start: grid.Of(vp.A.StartAfterPadding(), vp.B.StartAfterPadding()),
		End:   grid.Of(vp.A.EndAfterPadding(), vp.B.EndAfterPadding()),
	}

	placements := e.Placements()
	cells := make([]Cell, 0, len(placements))
	anchored := false
	for _, p := range placements {
		index := p.Index()
		coord, err := mapper.ToCoordinate(index)
		if err != nil {
			continue
		}
		var content string
		if ce, ok := p.Element.(contentElement); ok {
			content = ce.Content()
		} else if src != nil {
			content = src.CellContent(index)
		}

		c := Cell{
			Index:    index,
			Coord:    coord,
			Content:  content,
			Leading:  p.Leading,
			Trailing: p.Trailing,
			Visible:  bounds.overlaps(p.Leading, p.Trailing),
		}
		if !anchored && index == anchor.Index && p.Leading == anchor.Offset {
			c.Anchor, anchored = true, true
		}
		cells = append(cells, c)
	}

	return Snapshot{
		ID:       uuid.New(),
		Created:  time.Now().UTC(),
		Grid:     mapper.Extent(),
		Viewport: bounds,
		Anchor:   anchor,
		Cells:    cells,
	}
}

// Visible returns the cells overlapping the viewport.
func (s Snapshot) Visible() []Cell {
	var out []Cell
	for _, c := range s.Cells {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent      bool
	visibleOnly bool
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithJSONVisibleOnly drops cells outside the viewport.
func WithJSONVisibleOnly() JSONOption { return func(r *jsonRenderer) { r.visibleOnly = true } }

// RenderJSON encodes the snapshot.
func RenderJSON(s Snapshot, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.visibleOnly {
		s.Cells = s.Visible()
	}
	if s.Cells == nil {
		s.Cells = []Cell{}
	}
	if r.indent {
		return json.MarshalIndent(s, "", "  ")
	}
	return json.Marshal(s)
}
