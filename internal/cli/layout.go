package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tablegrid/pkg/cache"
	"github.com/matzehuels/tablegrid/pkg/errors"
	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/render"
)

// formatTable prints placements as a terminal table.
const formatTable = "table"

// layoutOpts holds the flags of the layout command.
type layoutOpts struct {
	width       int    // viewport width, 0 for the configured value
	height      int    // viewport height, 0 for the configured value
	scrollA     int    // scroll along axis A after the first pass
	scrollB     int    // scroll along axis B after the first pass
	focus       int    // focused cell index, -1 for none
	speculative bool   // run a speculative pass before the final one
	visibleOnly bool   // drop cells outside the viewport
	format      string // table, json, dot or svg
	output      string // output file, stdout when empty
	noCache     bool   // bypass the artifact cache
}

// layoutCommand creates the layout command for headless layout passes.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{focus: -1, format: formatTable}

	cmd := &cobra.Command{
		Use:   "layout [text-file]",
		Short: "Run layout passes headlessly and export the placements",
		Long: `Run layout passes over the configured source without a terminal UI.

The viewport is laid out once, optionally scrolled by --scroll-a/--scroll-b
(in the same units as the cell size), and the attached cells are exported.

Formats:
  table  placements as a terminal table (default)
  json   the full snapshot
  dot    a Graphviz graph with every cell pinned at its position
  svg    the dot graph rendered with neato (cached)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.sourceArg(args)
			return c.runLayout(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "viewport height (default from config)")
	cmd.Flags().IntVar(&opts.scrollA, "scroll-a", 0, "scroll distance along axis A (rows)")
	cmd.Flags().IntVar(&opts.scrollB, "scroll-b", 0, "scroll distance along axis B (columns)")
	cmd.Flags().IntVar(&opts.focus, "focus", -1, "index of the focused cell")
	cmd.Flags().BoolVar(&opts.speculative, "speculative", false, "run a speculative pass first")
	cmd.Flags().BoolVar(&opts.visibleOnly, "visible-only", false, "only export cells inside the viewport")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table, json, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout builds a session, runs the passes and writes the export.
func (c *CLI) runLayout(ctx context.Context, opts layoutOpts) error {
	if err := errors.ValidateFormat(opts.format, append([]string{formatTable}, render.Formats...)); err != nil {
		return err
	}

	sess, err := c.newSession(ctx, c.viewportSize(opts.height, opts.width))
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	snap := sess.layout(opts)
	prog.done(fmt.Sprintf("Laid out %d cells", len(snap.Cells)))

	if opts.visibleOnly {
		snap.Cells = snap.Visible()
	}

	data, cached, err := c.export(ctx, snap, opts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", opts.output, err)
	}

	printSuccess("Layout complete")
	printFile(opts.output)
	printStats(len(snap.Cells), len(snap.Visible()), cached)
	if opts.format == "dot" {
		printNextStep("Render", "neato -n -Tsvg "+opts.output)
	}
	return nil
}

// viewportSize resolves the --height/--width flags against the config.
func (c *CLI) viewportSize(height, width int) grid.Axes[int] {
	size := c.Config.ViewportSize()
	if height > 0 {
		size.A = height
	}
	if width > 0 {
		size.B = width
	}
	return size
}

// layout runs the passes requested by opts and captures the result.
func (s *session) layout(opts layoutOpts) render.Snapshot {
	if opts.focus >= 0 {
		s.pool.SetFocus(opts.focus)
	}
	if opts.speculative {
		s.engine.RunLayoutPass(true)
	}
	s.engine.RunLayoutPass(false)
	if opts.scrollA != 0 || opts.scrollB != 0 {
		s.engine.ScrollBy(grid.Of(opts.scrollA, opts.scrollB))
	}
	return render.NewSnapshot(s.engine, s.source, s.viewport)
}

// export encodes snap in the requested format. SVG output goes through the
// artifact cache keyed by the DOT source.
func (c *CLI) export(ctx context.Context, snap render.Snapshot, opts layoutOpts) ([]byte, bool, error) {
	switch opts.format {
	case formatTable:
		return []byte(renderTable(snap) + "\n"), false, nil
	case "svg":
	default:
		data, err := render.Render(ctx, snap, opts.format)
		return data, false, err
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return nil, false, err
	}
	defer store.Close()

	dot := render.ToDOT(snap, render.DOTOptions{})
	key := cache.ArtifactKey("svg", []byte(dot))
	return cache.Cached(ctx, store, key, cache.ArtifactTTL, func() ([]byte, error) {
		return renderSVG(ctx, out, dot)
	})
}

// renderSVG renders dot with neato while a spinner runs on w.
func renderSVG(ctx context.Context, w io.Writer, dot string) ([]byte, error) {
	spinner := newSpinnerTo(ctx, w, "Rendering SVG...")
	spinner.Start()
	svg, err := render.RenderSVG(ctx, dot)
	if spinner.Cancelled() {
		spinner.StopWithError("Render cancelled")
		return nil, fmt.Errorf("render svg: %w", ctx.Err())
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, err
	}
	spinner.Stop()
	return svg, nil
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableAnchorStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	tableHiddenStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// renderTable lists the cells of snap sorted by index.
func renderTable(snap render.Snapshot) string {
	cells := slices.Clone(snap.Cells)
	slices.SortStableFunc(cells, func(a, b render.Cell) int { return a.Index - b.Index })

	rows := make([][]string, len(cells))
	for i, cell := range cells {
		mark := ""
		if cell.Anchor {
			mark = "▸"
		}
		rows[i] = []string{
			mark,
			strconv.Itoa(cell.Index),
			fmt.Sprintf("%d,%d", cell.Coord.A, cell.Coord.B),
			cell.Content,
			fmt.Sprintf("%d,%d", cell.Leading.A, cell.Leading.B),
			fmt.Sprintf("%d,%d", cell.Trailing.A, cell.Trailing.B),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Index", "Coord", "Content", "Leading", "Trailing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row < 0 || row >= len(cells) {
				return lipgloss.NewStyle()
			}
			switch {
			case cells[row].Anchor:
				return tableAnchorStyle
			case !cells[row].Visible:
				return tableHiddenStyle
			}
			return lipgloss.NewStyle()
		})

	anchor := snap.Anchor
	footer := StyleDim.Render(fmt.Sprintf("  anchor #%d at %d,%d · %d cells", anchor.Index, anchor.Offset.A, anchor.Offset.B, len(cells)))
	return t.Render() + "\n" + footer
}
