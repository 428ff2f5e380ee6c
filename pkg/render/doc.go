// Package render exports the result of a layout pass.
//
// # Overview
//
// A [Snapshot] captures the attached cells of an engine after a pass,
// together with the anchor, the grid extent and the viewport bounds. It is
// the single input of every exporter:
//
//   - [RenderJSON] writes the snapshot as JSON (used by the HTTP service)
//   - [ToDOT] writes a Graphviz graph with one pinned box per cell
//   - [RenderSVG] lays the DOT graph out with neato and renders SVG
//
// # DOT and SVG
//
// Cells are emitted as fixed-size boxes whose positions are pinned
// (pos="x,y!"), so neato draws them exactly where the engine placed them.
// Axis A runs downward and axis B to the right. Cells outside the viewport
// are drawn dashed and the anchor cell is drawn bold.
//
//	snap := render.NewSnapshot(engine, src, vp)
//	dot := render.ToDOT(snap, render.DOTOptions{})
//	svg, err := render.RenderSVG(ctx, dot)
package render
