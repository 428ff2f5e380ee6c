package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the interactive browser command.
func (c *CLI) browseCommand() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "browse [text-file]",
		Short: "Scroll the grid interactively in the terminal",
		Long: `Scroll the grid interactively. The terminal window is the viewport and the
grid wraps around in both directions.

Keys:
  arrows, hjkl   scroll one cell
  pgup, pgdown   scroll one page along rows
  H, L           scroll one page along columns
  f, F           focus the anchor cell, clear the focus
  s              run a speculative pass before relaying out
  g              treat the data set as replaced
  q              quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.sourceArg(args)
			return c.runBrowse(cmd.Context(), logFile)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the browser runs")

	return cmd
}

// runBrowse starts the bubbletea program. The logger is redirected while the
// alternate screen is active so that log lines do not corrupt the view.
func (c *CLI) runBrowse(ctx context.Context, logFile string) error {
	sess, err := c.newSession(ctx, c.Config.ViewportSize())
	if err != nil {
		return err
	}

	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	c.Logger.SetOutput(w)
	defer c.Logger.SetOutput(os.Stderr)

	p := tea.NewProgram(newBrowseModel(sess), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	stats := sess.pool.Stats()
	c.Logger.Debug("browser closed", "created", stats.Created, "recycled", stats.Recycled)
	return nil
}
