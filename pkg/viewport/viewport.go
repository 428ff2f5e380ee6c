// Package viewport provides the padded, resizable viewport the layout engine
// fills.
//
// Axis A is the vertical axis (rows, padded top and bottom) and axis B the
// horizontal one (columns, padded left and right). Each [Axis] implements
// layout.AxisHelper and remembers its usable size at the last completed
// layout, so the engine can tell how much space was gained or lost since.
package viewport

import (
	"fmt"

	"github.com/matzehuels/tablegrid/pkg/errors"
	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/layout"
)

// Padding is the inset on each side of the viewport.
type Padding struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Axis is one dimension of the viewport.
type Axis struct {
	size       int
	padStart   int
	padEnd     int
	lastUsable int
}

var _ layout.AxisHelper = (*Axis)(nil)

func newAxis(size, padStart, padEnd int) (*Axis, error) {
	a := &Axis{}
	if err := a.set(size, padStart, padEnd); err != nil {
		return nil, err
	}
	a.lastUsable = a.Usable()
	return a, nil
}

func (a *Axis) set(size, padStart, padEnd int) error {
	if size < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport size cannot be negative, got %d", size)
	}
	if err := errors.ValidatePadding(size, padStart, padEnd); err != nil {
		return err
	}
	a.size, a.padStart, a.padEnd = size, padStart, padEnd
	return nil
}

// Size returns the full extent including padding.
func (a *Axis) Size() int { return a.size }

// Usable returns the extent between the paddings.
func (a *Axis) Usable() int { return a.size - a.padStart - a.padEnd }

// StartAfterPadding implements layout.AxisHelper.
func (a *Axis) StartAfterPadding() int { return a.padStart }

// EndAfterPadding implements layout.AxisHelper.
func (a *Axis) EndAfterPadding() int { return a.size - a.padEnd }

// TotalSpaceChange implements layout.AxisHelper.
func (a *Axis) TotalSpaceChange() int { return a.Usable() - a.lastUsable }

// OnLayoutComplete implements layout.AxisHelper.
func (a *Axis) OnLayoutComplete() { a.lastUsable = a.Usable() }

// Viewport is a padded rectangle with one [Axis] per grid axis.
type Viewport struct {
	A *Axis
	B *Axis
}

// New creates a viewport of size (height, width) with the given padding.
func New(size grid.Axes[int], padding Padding) (*Viewport, error) {
	a, err := newAxis(size.A, padding.Top, padding.Bottom)
	if err != nil {
		return nil, err
	}
	b, err := newAxis(size.B, padding.Left, padding.Right)
	if err != nil {
		return nil, err
	}
	return &Viewport{A: a, B: b}, nil
}

// Helpers returns both axes as layout helpers.
func (v *Viewport) Helpers() grid.Axes[layout.AxisHelper] {
	return grid.Of[layout.AxisHelper](v.A, v.B)
}

// Size returns the full extent of both axes.
func (v *Viewport) Size() grid.Axes[int] { return grid.Of(v.A.Size(), v.B.Size()) }

// Usable returns the padding-adjusted extent of both axes.
func (v *Viewport) Usable() grid.Axes[int] { return grid.Of(v.A.Usable(), v.B.Usable()) }

// Padding returns the current padding.
func (v *Viewport) Padding() Padding {
	return Padding{Top: v.A.padStart, Bottom: v.A.padEnd, Left: v.B.padStart, Right: v.B.padEnd}
}

// Resize changes the extent of both axes and keeps the padding. It reports
// whether anything changed; the caller then notifies the engine.
func (v *Viewport) Resize(size grid.Axes[int]) (bool, error) {
	return v.update(size, v.Padding())
}

// SetPadding changes the padding and keeps the extent.
func (v *Viewport) SetPadding(p Padding) (bool, error) {
	return v.update(v.Size(), p)
}

func (v *Viewport) update(size grid.Axes[int], p Padding) (bool, error) {
	if size == v.Size() && p == v.Padding() {
		return false, nil
	}
	// Validate both axes before mutating either.
	if _, err := New(size, p); err != nil {
		return false, err
	}
	_ = v.A.set(size.A, p.Top, p.Bottom)
	_ = v.B.set(size.B, p.Left, p.Right)
	return true, nil
}

// Contains reports whether the position lies in the usable area.
func (v *Viewport) Contains(pos grid.Axes[int]) bool {
	return pos.A >= v.A.StartAfterPadding() && pos.A < v.A.EndAfterPadding() &&
		pos.B >= v.B.StartAfterPadding() && pos.B < v.B.EndAfterPadding()
}

// String implements fmt.Stringer.
func (v *Viewport) String() string {
	return fmt.Sprintf("%dx%d (usable %dx%d)", v.A.Size(), v.B.Size(), v.A.Usable(), v.B.Usable())
}
