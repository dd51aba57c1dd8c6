// Package puzzle generates word-search grids and exposes them for rendering
// and answer checking.
package puzzle

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kyiku/wordsearch-back/internal/geometry"
)

// empty marks a cell no word has been written to yet.
const empty rune = 0

var (
	// ErrInvalidArgument is returned for an empty word list or an empty word.
	ErrInvalidArgument = errors.New("puzzle: invalid argument")
	// ErrCantFit is returned when no attempt produced an acceptable layout.
	ErrCantFit = errors.New("puzzle: words can't fit")
	// ErrMalformedRecord is returned when a Record does not describe a valid grid.
	ErrMalformedRecord = errors.New("puzzle: malformed record")
)

// Puzzle is a rectangular grid of letters plus the placement of every word
// hidden in it. Cells are stored row by row: index = col + columns*row.
type Puzzle struct {
	columns   int
	rows      int
	table     []rune
	solutions map[geometry.Segment]struct{}
	words     []string
}

// Empty allocates a columns x rows grid with every cell unset.
func Empty(columns, rows int) *Puzzle {
	return &Puzzle{
		columns:   columns,
		rows:      rows,
		table:     make([]rune, columns*rows),
		solutions: make(map[geometry.Segment]struct{}),
		words:     []string{},
	}
}

// FromTable rebuilds a puzzle from rendered rows, e.g. after loading it from
// storage. Solutions are canonicalised.
func FromTable(table []string, columns, rows int, solutions []geometry.Segment, words []string) (*Puzzle, error) {
	if columns < 1 || rows < 1 || len(table) != rows {
		return nil, fmt.Errorf("%w: %d rows for a %dx%d grid", ErrMalformedRecord, len(table), columns, rows)
	}

	p := Empty(columns, rows)
	p.table = p.table[:0]
	for i, line := range table {
		r := []rune(line)
		if len(r) != columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedRecord, i, len(r), columns)
		}
		p.table = append(p.table, r...)
	}

	for _, s := range solutions {
		p.solutions[s.Canonical()] = struct{}{}
	}
	p.words = append(p.words, words...)
	return p, nil
}

// Table returns a copy of the flat cell buffer.
func (p *Puzzle) Table() []rune {
	out := make([]rune, len(p.table))
	copy(out, p.table)
	return out
}

// RenderTable returns one string per row, top to bottom.
func (p *Puzzle) RenderTable() []string {
	out := make([]string, 0, p.rows)
	for r := 0; r < p.rows; r++ {
		out = append(out, string(p.table[p.columns*r:p.columns*(r+1)]))
	}
	return out
}

// Shape returns the number of columns and rows.
func (p *Puzzle) Shape() (int, int) {
	return p.columns, p.rows
}

// Columns returns the grid width.
func (p *Puzzle) Columns() int { return p.columns }

// Rows returns the grid height.
func (p *Puzzle) Rows() int { return p.rows }

// Solutions returns every placed word's canonical segment in a stable order.
func (p *Puzzle) Solutions() []geometry.Segment {
	out := make([]geometry.Segment, 0, len(p.solutions))
	for s := range p.solutions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start.Less(out[j].Start)
		}
		return out[i].End.Less(out[j].End)
	})
	return out
}

// HasSolution reports whether s, in either orientation, is a placed word.
func (p *Puzzle) HasSolution(s geometry.Segment) bool {
	_, ok := p.solutions[s.Canonical()]
	return ok
}

// Words returns the words in placement order.
func (p *Puzzle) Words() []string {
	out := make([]string, len(p.words))
	copy(out, p.words)
	return out
}

// At returns the letter at (col, row).
func (p *Puzzle) At(col, row int) rune {
	return p.table[p.index(col, row)]
}

// Set writes r at (col, row).
func (p *Puzzle) Set(col, row int, r rune) {
	p.table[p.index(col, row)] = r
}

func (p *Puzzle) index(col, row int) int {
	if col < 0 || col >= p.columns || row < 0 || row >= p.rows {
		panic(fmt.Sprintf("puzzle: cell (%d, %d) outside %dx%d grid", col, row, p.columns, p.rows))
	}
	return col + p.columns*row
}

// ReadSegment returns the letters under s, walked from s.Start along its step.
// Cells outside the grid end the read.
func (p *Puzzle) ReadSegment(s geometry.Segment) string {
	var b strings.Builder
	step := s.Step()
	cur := s.Start
	for i := 0; i < s.Cells(); i++ {
		if cur.X < 0 || cur.X >= p.columns || cur.Y < 0 || cur.Y >= p.rows {
			break
		}
		b.WriteRune(p.At(cur.X, cur.Y))
		cur = cur.Add(step)
	}
	return b.String()
}

// String dumps the shape, the solutions and the grid.
func (p *Puzzle) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Puzzle %d×%d\nSolutions:\n", p.columns, p.rows)
	for _, s := range p.Solutions() {
		fmt.Fprintf(&b, "%s\n", s)
	}
	b.WriteString("\n")
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.columns; c++ {
			b.WriteRune(p.At(c, r))
			b.WriteByte(' ')
		}
		b.WriteString("\n")
	}
	return b.String()
}
