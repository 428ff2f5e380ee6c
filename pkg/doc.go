// Package pkg provides the libraries behind tablegrid, a layout engine for a
// large fixed grid of cells shown through a small scrollable viewport.
//
// # Overview
//
// The grid has Rows x Cols cells and wraps around on both axes, so scrolling
// never runs out of content. Only the cells that overlap the viewport are
// attached; everything else stays in an element pool for reuse.
//
// # Architecture
//
// The typical data flow through tablegrid:
//
//	Cell source (text file, redis list, bundled sample)
//	         ↓
//	    [pool] package (bind contents into recyclable cells)
//	         ↓
//	    [layout] package (anchor + four-quadrant fill around it)
//	         ↓
//	    [render] package (snapshot → JSON, DOT, SVG)
//
// # Quick Start
//
//	src := source.Lorem()
//	dims := src.Dimensions()
//	mapper, _ := grid.NewMapper(dims.A, dims.B)
//	vp, _ := viewport.New(grid.Of(24, 80), viewport.Padding{})
//	cell := grid.Of(1, 16)
//
//	engine, _ := layout.New(mapper, src, pool.New(src, cell), vp.Helpers(),
//	    layout.WithCellSize(cell))
//	engine.RunLayoutPass(false)
//	engine.ScrollBy(grid.Of(3, 0))
//
//	snap := render.NewSnapshot(engine, src, vp)
//	data, _ := render.RenderJSON(snap)
//
// # Main Packages
//
// [grid] - The two-axis value type and the wrap-aware index/coordinate
// mapper every other package is written against.
//
// [layout] - The engine: anchor tracking, quadrant fills, scrolling in
// cell-sized steps and dataset/viewport invalidation.
//
// [pool] - The element recycler. Cells carry a stable ID and their bound
// content; removed, changed and focused marks live here.
//
// [viewport] - Axis helpers exposing size, padding and the space change since
// the last completed pass.
//
// [source] - Cell contents: paragraphs of words, static slices and redis
// lists.
//
// [render] - Snapshots of a pass and their JSON, Graphviz DOT and SVG
// exports.
//
// ## Infrastructure
//
// [config] - TOML configuration with defaults and validation.
//
// [cache] - File-backed artifact cache for rendered SVGs.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hooks for layout and pool events.
//
// [buildinfo] - Version information injected at build time.
package pkg
