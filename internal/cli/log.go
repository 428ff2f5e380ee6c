package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Laid out 42 cells (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks forwards layout and pool events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("events")}
}

func (h *logHooks) OnPassStart(speculative bool) {
	h.logger.Debug("pass start", "speculative", speculative)
}

func (h *logHooks) OnPassComplete(speculative bool, placed int, d time.Duration) {
	h.logger.Debug("pass complete", "speculative", speculative, "placed", placed, "took", d)
}

func (h *logHooks) OnFill(quadrant string, placed, consumedA, consumedB int) {
	h.logger.Debug("fill", "quadrant", quadrant, "placed", placed, "consumed_a", consumedA, "consumed_b", consumedB)
}

func (h *logHooks) OnAnchor(index int, reason string) {
	h.logger.Debug("anchor", "index", index, "reason", reason)
}

func (h *logHooks) OnCreate(index int)  { h.logger.Debug("cell created", "index", index) }
func (h *logHooks) OnRecycle(index int) { h.logger.Debug("cell recycled", "index", index) }
func (h *logHooks) OnReturn(index int)  { h.logger.Debug("cell returned", "index", index) }
