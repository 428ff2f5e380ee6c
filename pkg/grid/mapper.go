package grid

import (
	"fmt"

	"github.com/matzehuels/tablegrid/pkg/errors"
)

// Coord is a grid coordinate: A in [0, Rows), B in [0, Cols).
type Coord = Axes[int]

// Mapper converts between linear cell indices and grid coordinates for a
// fixed Rows x Cols grid. Consecutive indices advance along axis A:
//
//	index = B*Rows + A
//
// The grid is toroidal: stepping past either edge wraps to the other.
type Mapper struct {
	Rows int // extent of axis A
	Cols int // extent of axis B
}

// NewMapper returns a Mapper for a rows x cols grid.
// It fails with INVALID_CONFIG when either extent is not positive.
func NewMapper(rows, cols int) (Mapper, error) {
	if err := errors.ValidateDimensions(rows, cols); err != nil {
		return Mapper{}, err
	}
	return Mapper{Rows: rows, Cols: cols}, nil
}

// Len returns the number of addressable cells.
func (m Mapper) Len() int { return m.Rows * m.Cols }

// Extent returns the extent of both axes.
func (m Mapper) Extent() Axes[int] { return Axes[int]{A: m.Rows, B: m.Cols} }

// Contains reports whether c lies inside the grid.
func (m Mapper) Contains(c Coord) bool {
	return All(ZipAxes(c, m.Extent(), func(v, n int) bool { return v >= 0 && v < n }))
}

// ToIndex converts a coordinate to its linear index.
func (m Mapper) ToIndex(c Coord) (int, error) {
	if !m.Contains(c) {
		return 0, errors.New(errors.ErrCodeOutOfRange,
			"(rows, cols)=(%d, %d), (a, b)=(%d, %d)", m.Rows, m.Cols, c.A, c.B)
	}
	return c.B*m.Rows + c.A, nil
}

// ToCoordinate converts a linear index to its coordinate.
func (m Mapper) ToCoordinate(index int) (Coord, error) {
	if index < 0 || index >= m.Len() {
		return Coord{}, errors.New(errors.ErrCodeOutOfRange,
			"index %d outside [0, %d)", index, m.Len())
	}
	return Coord{A: index % m.Rows, B: index / m.Rows}, nil
}

// WrapA normalizes an axis A coordinate that is at most one extent out of range.
func (m Mapper) WrapA(v int) int { return wrap(v, m.Rows) }

// WrapB normalizes an axis B coordinate that is at most one extent out of range.
func (m Mapper) WrapB(v int) int { return wrap(v, m.Cols) }

// Wrap normalizes the component of c for axis.
func (m Mapper) Wrap(axis Axis, v int) int {
	return wrap(v, m.Extent().Get(axis))
}

// Step moves c one cell along axis in direction d, wrapping at the edge.
func (m Mapper) Step(c Coord, axis Axis, d Direction) Coord {
	return c.With(axis, m.Wrap(axis, c.Get(axis)+d.Diff()))
}

// StepIndex moves index one cell along axis in direction d, wrapping at the edge.
func (m Mapper) StepIndex(index int, axis Axis, d Direction) (int, error) {
	c, err := m.ToCoordinate(index)
	if err != nil {
		return 0, err
	}
	return m.ToIndex(m.Step(c, axis, d))
}

// String implements fmt.Stringer.
func (m Mapper) String() string {
	return fmt.Sprintf("%dx%d", m.Rows, m.Cols)
}

// wrap applies a single add or subtract of n. Per-step deltas are always
// one cell, so one correction is enough.
func wrap(v, n int) int {
	switch {
	case v < 0:
		return v + n
	case v >= n:
		return v - n
	default:
		return v
	}
}
