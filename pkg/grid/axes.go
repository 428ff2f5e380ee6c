// Package grid provides the two-axis value type and the wrap-aware mapping
// between linear cell indices and grid coordinates.
//
// Axis A is the axis along which consecutive indices advance (the vertical
// axis in the terminal browser). Axis B is perpendicular to it. A lane is a
// run of cells sharing the same B coordinate.
package grid

// Axis names one of the two grid axes.
type Axis int

const (
	AxisA Axis = iota
	AxisB
)

// EachAxis lists both axes in A, B order.
var EachAxis = [2]Axis{AxisA, AxisB}

// String returns "A" or "B".
func (a Axis) String() string {
	if a == AxisB {
		return "B"
	}
	return "A"
}

// Axes holds one value per axis. Every per-axis computation in the layout
// engine is written once against Axes and applied to both fields.
type Axes[T any] struct {
	A T `json:"a"`
	B T `json:"b"`
}

// Of builds an Axes value from its two components.
func Of[T any](a, b T) Axes[T] { return Axes[T]{A: a, B: b} }

// Both builds an Axes value with the same component on both axes.
func Both[T any](v T) Axes[T] { return Axes[T]{A: v, B: v} }

// Get returns the component for axis.
func (x Axes[T]) Get(axis Axis) T {
	if axis == AxisB {
		return x.B
	}
	return x.A
}

// With returns a copy of x with the component for axis replaced.
func (x Axes[T]) With(axis Axis, v T) Axes[T] {
	if axis == AxisB {
		x.B = v
	} else {
		x.A = v
	}
	return x
}

// MapAxes applies f to each component.
func MapAxes[T, U any](x Axes[T], f func(T) U) Axes[U] {
	return Axes[U]{A: f(x.A), B: f(x.B)}
}

// ZipAxes combines two Axes values component-wise.
func ZipAxes[T, U, V any](x Axes[T], y Axes[U], f func(T, U) V) Axes[V] {
	return Axes[V]{A: f(x.A, y.A), B: f(x.B, y.B)}
}

// CombineAxes folds the two components of x into a single value.
func CombineAxes[T, U any](x Axes[T], f func(a, b T) U) U {
	return f(x.A, x.B)
}

// Any reports whether either component is true.
func Any(x Axes[bool]) bool { return x.A || x.B }

// All reports whether both components are true.
func All(x Axes[bool]) bool { return x.A && x.B }

// Add returns the component-wise sum.
func Add(x, y Axes[int]) Axes[int] {
	return ZipAxes(x, y, func(a, b int) int { return a + b })
}

// Sub returns the component-wise difference x - y.
func Sub(x, y Axes[int]) Axes[int] {
	return ZipAxes(x, y, func(a, b int) int { return a - b })
}

// Direction is the direction in which a fill grows along one axis.
type Direction int

const (
	// Start grows toward the leading edge of the viewport (decreasing
	// offsets and coordinates).
	Start Direction = iota
	// End grows toward the trailing edge.
	End
)

// Diff returns -1 for Start and +1 for End.
func (d Direction) Diff() int {
	if d == Start {
		return -1
	}
	return 1
}

// String returns "start" or "end".
func (d Direction) String() string {
	if d == Start {
		return "start"
	}
	return "end"
}

// Span returns the leading and trailing edge of an element of the given size
// placed at offset and growing in direction d.
func (d Direction) Span(offset, size int) (leading, trailing int) {
	if d == Start {
		return offset - size, offset
	}
	return offset, offset + size
}
