package layout

import (
	"github.com/matzehuels/tablegrid/pkg/grid"
)

// fill places elements for one quadrant, lane by lane, and returns the
// space consumed per axis.
//
// A lane starts at the quadrant's first row and walks axis A in
// st.Direction.A, wrapping at the grid edge, until the axis A budget is
// spent. The next lane restarts at the first row one step further along
// axis B. The walk ends when the axis B budget is spent or the pool has
// nothing left.
//
// Each axis's consumed total exceeds its budget by at most one element.
// Ignored elements (see chunk) and elements measuring zero along A move
// the cursor but are not charged.
func (e *Engine) fill(st State) (grid.Axes[int], error) {
	var consumed grid.Axes[int]
	if !grid.All(grid.MapAxes(st.Available, func(v int) bool { return v > 0 })) {
		return consumed, nil
	}

	first, err := e.mapper.ToCoordinate(st.Index)
	if err != nil {
		return consumed, err
	}

	var (
		cursor    = first
		offset    = st.Offset
		remaining = st.Available

		laneExtent   int // widest element of the lane along B, ignored ones included
		laneConsumed int // widest charged element of the lane along B
		idleSteps    int // consecutive ignored elements in the lane
		idleLanes    int // consecutive lanes that charged nothing
	)

	closeLane := func() {
		consumed.A = max(consumed.A, st.Available.A-remaining.A)
		consumed.B += laneConsumed
	}

	for remaining.B > 0 {
		index, err := e.mapper.ToIndex(cursor)
		if err != nil {
			return consumed, err
		}

		c := e.layoutChunk(index, offset, st.Direction, st.Speculative)
		if c.Finished {
			break
		}

		offset.A += c.Consumed.A * st.Direction.A.Diff()
		laneExtent = max(laneExtent, c.Consumed.B)
		if c.Ignored || c.Consumed.A <= 0 {
			// Elements without extent along A make no progress on the lane.
			idleSteps++
		} else {
			remaining.A -= c.Consumed.A
			laneConsumed = max(laneConsumed, c.Consumed.B)
			idleSteps = 0
		}
		cursor = e.mapper.Step(cursor, grid.AxisA, st.Direction.A)

		if remaining.A > 0 && idleSteps < e.mapper.Rows {
			continue
		}

		// Lane exhausted: rewind axis A, advance axis B.
		closeLane()
		if laneConsumed == 0 {
			idleLanes++
			if idleLanes >= e.mapper.Cols {
				return consumed, nil
			}
		} else {
			idleLanes = 0
		}
		remaining = grid.Of(st.Available.A, remaining.B-laneConsumed)
		offset = grid.Of(st.Offset.A, offset.B+laneExtent*st.Direction.B.Diff())
		cursor = grid.Of(first.A, e.mapper.WrapB(cursor.B+st.Direction.B.Diff()))
		laneExtent, laneConsumed, idleSteps = 0, 0, 0
	}

	if remaining.A < st.Available.A || laneConsumed > 0 {
		closeLane()
	}
	return consumed, nil
}

// layoutChunk requests, measures and places the element for index.
func (e *Engine) layoutChunk(index int, offset grid.Axes[int], dir grid.Axes[grid.Direction], speculative bool) chunk {
	el, ok := e.pool.Request(index)
	if !ok {
		return chunk{Finished: true}
	}

	size := e.pool.Measure(el)
	leading, trailing := spanAxes(dir, offset, size)
	e.pool.Place(el, leading, trailing)
	e.attached = append(e.attached, Placement{Element: el, Leading: leading, Trailing: trailing})

	return chunk{
		Consumed: size,
		Ignored:  speculative && (el.IsMarkedRemoved() || el.IsMarkedChanged()),
	}
}
