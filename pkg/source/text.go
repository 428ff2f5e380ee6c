package source

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/tablegrid/pkg/errors"
	"github.com/matzehuels/tablegrid/pkg/grid"
)

//go:embed lorem.txt
var lorem string

// Blank is shown for cells past the end of a short paragraph.
const Blank = "blank"

// Text lays paragraphs out as lanes: paragraph n is column n and its words
// run down the rows. The grid is as tall as the longest paragraph; shorter
// paragraphs are padded with [Blank]. Each cell reads "word(row, col)".
type Text struct {
	paragraphs [][]string
	mapper     grid.Mapper
}

// NewText builds a text source from paragraphs. Words are split on single
// spaces and empty paragraphs are skipped.
func NewText(paragraphs []string) (*Text, error) {
	t := &Text{}
	rows := 0
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		words := strings.Split(p, " ")
		t.paragraphs = append(t.paragraphs, words)
		rows = max(rows, len(words))
	}
	if len(t.paragraphs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "text has no paragraphs")
	}

	m, err := grid.NewMapper(rows, len(t.paragraphs))
	if err != nil {
		return nil, err
	}
	t.mapper = m
	return t, nil
}

// ParseText reads one paragraph per line.
func ParseText(r io.Reader) (*Text, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read text")
	}
	return NewText(lines)
}

// Lorem returns the bundled sample text.
func Lorem() *Text {
	t, err := ParseText(strings.NewReader(lorem))
	if err != nil {
		panic(fmt.Sprintf("bundled text: %v", err))
	}
	return t
}

// Word returns the word at coordinate c, or false for padding cells.
func (t *Text) Word(c grid.Coord) (string, bool) {
	if !t.mapper.Contains(c) {
		return "", false
	}
	words := t.paragraphs[c.B]
	if c.A >= len(words) {
		return "", false
	}
	return words[c.A], true
}

// CellContent implements Source.
func (t *Text) CellContent(index int) string {
	c, err := t.mapper.ToCoordinate(index)
	if err != nil {
		return ""
	}
	word, ok := t.Word(c)
	if !ok {
		word = Blank
	}
	return fmt.Sprintf("%s(%d, %d)", word, c.A, c.B)
}

// CellCount implements Source.
func (t *Text) CellCount() int { return t.mapper.Len() }

// Dimensions implements Source.
func (t *Text) Dimensions() grid.Axes[int] { return t.mapper.Extent() }
