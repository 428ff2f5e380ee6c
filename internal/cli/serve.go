package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tablegrid/pkg/buildinfo"
	"github.com/matzehuels/tablegrid/pkg/cache"
	"github.com/matzehuels/tablegrid/pkg/errors"
	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/render"
	"github.com/matzehuels/tablegrid/pkg/source"
)

const (
	defaultAddr     = "localhost:8080"
	shutdownTimeout = 5 * time.Second

	// Query parameter limits for /layout.
	maxViewportSize = 4096
	maxScroll       = 1 << 30
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [text-file]",
		Short: "Serve layout snapshots over HTTP",
		Long: `Serve layout snapshots over HTTP.

Every request lays out its own viewport over the shared source, so requests
are independent of each other.

Endpoints:
  GET /healthz          liveness and version
  GET /layout           snapshot; query: height, width, scroll_a, scroll_b,
                        focus, speculative, visible, format (json, dot, svg)
  GET /cells/{index}    one cell's coordinate and content`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.sourceArg(args)
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the SVG cache")

	return cmd
}

// runServe listens until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	src, err := source.Open(ctx, c.Config.SourceOptions(c.Logger))
	if err != nil {
		return err
	}
	store, err := newCache(noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.newRouter(src, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	dims := src.Dimensions()
	c.Logger.Info("listening", "addr", addr, "rows", dims.A, "cols", dims.B)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	c.Logger.Info("server stopped")
	return nil
}

// api serves snapshots over one shared source.
type api struct {
	cli    *CLI
	source source.Source
	cache  cache.Cache
}

// newRouter builds the HTTP routes.
func (c *CLI) newRouter(src source.Source, store cache.Cache) http.Handler {
	a := &api{cli: c, source: src, cache: store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(c.Logger))

	r.Get("/healthz", a.health)
	r.Get("/layout", a.layout)
	r.Get("/cells/{index}", a.cell)
	return r
}

// requestLogger logs one line per request at debug level.
func requestLogger(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"took", time.Since(start).Round(time.Microsecond),
				"id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	dims := a.source.Dimensions()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Short(),
		"grid":    dims,
	})
}

func (a *api) layout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := layoutOpts{
		focus:       -1,
		format:      "json",
		speculative: q.Get("speculative") == "true",
		visibleOnly: q.Get("visible") == "true",
	}
	if f := q.Get("format"); f != "" {
		opts.format = f
	}
	if err := errors.ValidateFormat(opts.format, render.Formats); err != nil {
		writeError(w, err)
		return
	}

	for _, p := range []struct {
		name  string
		dst   *int
		limit int
	}{
		{"height", &opts.height, maxViewportSize},
		{"width", &opts.width, maxViewportSize},
		{"scroll_a", &opts.scrollA, maxScroll},
		{"scroll_b", &opts.scrollB, maxScroll},
		{"focus", &opts.focus, maxScroll},
	} {
		if err := intParam(q.Get(p.name), p.name, p.limit, p.dst); err != nil {
			writeError(w, err)
			return
		}
	}

	sess, err := a.cli.sessionFor(a.source, a.cli.viewportSize(opts.height, opts.width))
	if err != nil {
		writeError(w, err)
		return
	}
	snap := sess.layout(opts)
	if opts.visibleOnly {
		snap.Cells = snap.Visible()
	}
	if err := r.Context().Err(); err != nil {
		a.cli.Logger.Debug("client gone", "err", err, "id", middleware.GetReqID(r.Context()))
		return
	}

	var data []byte
	if opts.format == "svg" {
		dot := render.ToDOT(snap, render.DOTOptions{})
		data, _, err = cache.Cached(r.Context(), a.cache, cache.ArtifactKey("svg", []byte(dot)), cache.ArtifactTTL,
			func() ([]byte, error) { return render.RenderSVG(r.Context(), dot) })
	} else {
		data, err = render.Render(r.Context(), snap, opts.format)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[opts.format])
	w.Header().Set("X-Snapshot-ID", snap.ID.String())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (a *api) cell(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "cell index must be an integer"))
		return
	}
	dims := a.source.Dimensions()
	mapper, err := grid.NewMapper(dims.A, dims.B)
	if err != nil {
		writeError(w, err)
		return
	}
	coord, err := mapper.ToCoordinate(index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"index":   index,
		"coord":   coord,
		"content": a.source.CellContent(index),
	})
}

var contentTypes = map[string]string{
	"json": "application/json",
	"dot":  "text/vnd.graphviz; charset=utf-8",
	"svg":  "image/svg+xml",
}

// intParam parses an optional integer query parameter into dst. Values
// beyond ±limit are rejected.
func intParam(raw, name string, limit int, dst *int) error {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", name)
	}
	if v > limit || v < -limit {
		return errors.New(errors.ErrCodeInvalidInput, "query parameter %s = %d outside [-%d, %d]", name, v, limit, limit)
	}
	*dst = v
	return nil
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeOutOfRange:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), map[string]string{
		"code":    string(code),
		"message": errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
