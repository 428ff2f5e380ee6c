package layout

import "github.com/matzehuels/tablegrid/pkg/grid"

// Element is a visual element handed out by a [Pool].
type Element interface {
	// Index returns the cell index the element is currently bound to,
	// or a negative value when unbound.
	Index() int

	// IsMarkedRemoved reports whether the cell is being removed.
	IsMarkedRemoved() bool

	// IsMarkedChanged reports whether the cell content is being changed.
	IsMarkedChanged() bool
}

// Focuser is an optional capability of an [Element]. A focused element is
// preferred over any other when the anchor is derived.
type Focuser interface {
	Focused() bool
}

// Pool supplies elements for cell indices and takes them back for reuse.
type Pool interface {
	// Request returns an element bound to index. It returns false when no
	// element can be obtained; the current fill then stops.
	Request(index int) (Element, bool)

	// Return hands an element back for recycling.
	Return(el Element)

	// Measure returns the element's size along both axes.
	Measure(el Element) grid.Axes[int]

	// Place positions the element between its leading and trailing edges.
	Place(el Element, leading, trailing grid.Axes[int])
}

// AxisHelper reports viewport state along one axis.
type AxisHelper interface {
	// StartAfterPadding returns the first usable position.
	StartAfterPadding() int

	// EndAfterPadding returns the position just past the last usable one.
	EndAfterPadding() int

	// TotalSpaceChange returns how much the usable space grew (positive) or
	// shrank (negative) since the last completed layout.
	TotalSpaceChange() int

	// OnLayoutComplete is called after every final pass.
	OnLayoutComplete()
}

// CellCounter reports the number of cells a data source provides.
type CellCounter interface {
	CellCount() int
}
