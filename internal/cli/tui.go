package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/layout"
	"github.com/matzehuels/tablegrid/pkg/render"
)

// Browser styles
var (
	browseStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	browseAnchorStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	browseErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// BrowseModel - Interactive grid scrolling
// =============================================================================

// BrowseModel is the bubbletea model that scrolls the grid in the terminal.
// The terminal is the viewport; every key press scrolls the engine and the
// view draws whatever cells the last pass attached.
type BrowseModel struct {
	sess *session
	last layout.PassResult
	err  error
}

// newBrowseModel creates a model over sess and runs the first pass.
func newBrowseModel(sess *session) BrowseModel {
	m := BrowseModel{sess: sess}
	m.last = sess.engine.RunLayoutPass(false)
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	engine := m.sess.engine
	cell := grid.Of(engine.DefaultElementSize(grid.AxisA), engine.DefaultElementSize(grid.AxisB))
	page := m.sess.viewport.Usable()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(grid.Of(-cell.A, 0))
		case "down", "j":
			m.scroll(grid.Of(cell.A, 0))
		case "left", "h":
			m.scroll(grid.Of(0, -cell.B))
		case "right", "l":
			m.scroll(grid.Of(0, cell.B))
		case "pgup":
			m.scroll(grid.Of(-page.A, 0))
		case "pgdown", " ":
			m.scroll(grid.Of(page.A, 0))
		case "H":
			m.scroll(grid.Of(0, -page.B))
		case "L":
			m.scroll(grid.Of(0, page.B))
		case "f":
			m.sess.pool.SetFocus(engine.Anchor().Index)
		case "F":
			m.sess.pool.SetFocus(-1)
		case "s":
			engine.RunLayoutPass(true)
			m.last = engine.RunLayoutPass(false)
		case "g":
			engine.OnDatasetChanged()
			m.last = engine.RunLayoutPass(false)
		}
	case tea.WindowSizeMsg:
		changed, err := m.sess.viewport.Resize(grid.Of(msg.Height, msg.Width))
		m.err = err
		if err == nil && changed {
			engine.OnViewportChanged()
			m.last = engine.RunLayoutPass(false)
		}
	}
	return m, nil
}

// scroll moves the grid by delta and records the pass that settled it.
func (m *BrowseModel) scroll(delta grid.Axes[int]) {
	m.sess.engine.ScrollBy(delta)
	m.last = layout.PassResult{
		Anchor: m.sess.engine.Anchor(),
		Reason: "scroll",
		Placed: len(m.sess.engine.Placements()),
	}
}

func (m BrowseModel) View() string {
	snap := render.NewSnapshot(m.sess.engine, m.sess.source, m.sess.viewport)

	var b strings.Builder
	b.WriteString(drawCells(snap))
	b.WriteString(m.statusLine())
	return b.String()
}

// statusLine summarizes the anchor and recycler activity.
func (m BrowseModel) statusLine() string {
	if m.err != nil {
		return browseErrorStyle.Render(FormatError(m.err))
	}
	a := m.last.Anchor
	coord, _ := m.sess.engine.Mapper().ToCoordinate(a.Index)
	stats := m.sess.pool.Stats()

	anchor := browseAnchorStyle.Render(fmt.Sprintf("#%d (%d,%d)", a.Index, coord.A, coord.B))
	rest := browseStatusStyle.Render(fmt.Sprintf(" %s · %d placed · %d created %d recycled · focus %d · hjkl scroll  q quit",
		m.last.Reason, m.last.Placed, stats.Created, stats.Recycled, m.sess.pool.Focus()))
	return anchor + rest
}

// drawCells rasterizes the visible part of snap into text lines covering
// the viewport down to its end bound. Rows in the top padding stay blank.
// Cell text starts at the cell's leading edge and is clipped to the cell
// and viewport bounds, leaving one column free as a separator.
func drawCells(snap render.Snapshot) string {
	vp := snap.Viewport
	rows := max(vp.End.A, 0)
	cols := max(vp.End.B, 0)

	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", cols))
	}

	for _, c := range snap.Cells {
		if !c.Visible {
			continue
		}
		row := c.Leading.A
		if row < vp.Start.A || row >= vp.End.A {
			continue
		}
		text := []rune(c.Content)
		for i, r := range text {
			col := c.Leading.B + i
			if col >= c.Trailing.B-1 || col >= vp.End.B {
				break
			}
			if col >= vp.Start.B {
				canvas[row][col] = r
			}
		}
	}

	var b strings.Builder
	for _, line := range canvas {
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	return b.String()
}
