// Package layout implements the virtualized grid layout engine.
//
// The engine lays out a fixed Rows x Cols grid of uniformly sized cells
// inside a scrollable viewport while only materializing the elements that
// are on screen. It never owns elements or viewport state itself; those are
// supplied by the host through three collaborators:
//
//   - [Pool] creates, recycles, measures and positions elements
//   - [AxisHelper] (one per axis) reports padding-adjusted viewport bounds
//     and the space change since the last completed layout
//   - a cell counter (usually a pkg/source.Source) whose count must equal
//     Rows*Cols
//
// # Layout Pass
//
// [Engine.RunLayoutPass] performs one pass:
//
//  1. Revalidate the anchor (see [AnchorTracker])
//  2. Return every attached element to the pool
//  3. Fill the four quadrants around the anchor in the order
//     (end,end), (start,end), (end,start), (start,start)
//  4. Notify the axis helpers (final pass) or invalidate the anchor
//     (speculative pass)
//
// Each quadrant is filled lane by lane: a lane runs along axis A from the
// anchor's row, wrapping at the grid edge, until the axis A budget is spent;
// the next lane starts one step further along axis B. The grid is toroidal,
// so scrolling never reaches a hard edge.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Hosts run passes sequentially,
// typically from a UI event loop.
package layout
