// Package source provides the cell contents shown in the grid.
//
// A [Source] reports its grid dimensions and the text of every cell. The
// layout engine only needs the cell count; the element pool binds
// [Source.CellContent] into cells as they are requested.
//
// Three sources are available:
//
//   - [Text] turns paragraphs into lanes of words (see [ParseText] and
//     [Lorem] for the bundled sample)
//   - [Static] serves a fixed slice of strings
//   - [LoadRedis] builds a [Text] from a redis list of paragraphs
//
// [Open] picks one of them from [Options].
package source

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/tablegrid/pkg/errors"
	"github.com/matzehuels/tablegrid/pkg/grid"
)

// Source supplies cell contents for a fixed Rows x Cols grid.
type Source interface {
	// CellContent returns the text of the cell at index. Indices outside
	// the grid return an empty string.
	CellContent(index int) string

	// CellCount returns Rows*Cols.
	CellCount() int

	// Dimensions returns the grid extent as (rows, cols).
	Dimensions() grid.Axes[int]
}

// Options selects a source. Path takes precedence over RedisAddr; with
// neither set the bundled sample text is used.
type Options struct {
	Path      string
	RedisAddr string
	RedisKey  string
	Logger    *log.Logger
}

// DefaultRedisKey is the list key read when none is configured.
const DefaultRedisKey = "tablegrid:cells"

// Open returns the source described by opts.
func Open(ctx context.Context, opts Options) (Source, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	switch {
	case opts.Path != "":
		f, err := os.Open(opts.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", opts.Path)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", opts.Path)
		}
		defer f.Close()
		logger.Debug("loading text source", "path", opts.Path)
		return ParseText(f)

	case opts.RedisAddr != "":
		key := opts.RedisKey
		if key == "" {
			key = DefaultRedisKey
		}
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		defer client.Close()
		logger.Debug("loading redis source", "addr", opts.RedisAddr, "key", key)
		return LoadRedis(ctx, client, key)

	default:
		logger.Debug("using bundled sample text")
		return Lorem(), nil
	}
}

// Static serves a fixed set of cells.
type Static struct {
	rows, cols int
	cells      []string
}

// NewStatic creates a rows x cols source. Cells are stored in index order
// (index = col*rows + row); missing trailing cells are empty and extra ones
// are rejected.
func NewStatic(rows, cols int, cells []string) (*Static, error) {
	if err := errors.ValidateDimensions(rows, cols); err != nil {
		return nil, err
	}
	if len(cells) > rows*cols {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"%d cells do not fit a %dx%d grid", len(cells), rows, cols)
	}
	return &Static{rows: rows, cols: cols, cells: cells}, nil
}

// CellContent implements Source.
func (s *Static) CellContent(index int) string {
	if index < 0 || index >= len(s.cells) {
		return ""
	}
	return s.cells[index]
}

// CellCount implements Source.
func (s *Static) CellCount() int { return s.rows * s.cols }

// Dimensions implements Source.
func (s *Static) Dimensions() grid.Axes[int] { return grid.Of(s.rows, s.cols) }
