package puzzle

import (
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/kyiku/wordsearch-back/internal/geometry"
)

const (
	// startBox bounds the random starting cell of every word on both axes.
	// The layout is translated to the origin afterwards, so it only needs to
	// be small compared to typical word lengths.
	startBox = 5

	// baseRelaxations is the relaxation budget of the first attempt. Attempt
	// i gets baseRelaxations + i rounds.
	baseRelaxations = 10

	// maxAspectDelta is the largest accepted difference between the longer
	// and the shorter side of a grid.
	maxAspectDelta = 2
)

// Generator lays words out on a grid. It is not safe for concurrent use;
// FromWords creates a private Generator per call.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// FromWords generates a puzzle holding every word, retrying up to
// maxAttempts times with a growing relaxation budget.
func FromWords(words []string, maxAttempts int) (*Puzzle, error) {
	return NewGenerator(rand.NewSource(time.Now().UnixNano())).FromWords(words, maxAttempts)
}

// FromWords generates a puzzle holding every word. A layout is accepted only
// when it converges and its sides differ by at most two cells; otherwise the
// next attempt starts from a fresh random layout with one more relaxation
// round. It returns ErrInvalidArgument for bad input and ErrCantFit when no
// attempt was accepted.
func (g *Generator) FromWords(words []string, maxAttempts int) (*Puzzle, error) {
	if len(words) == 0 || maxAttempts < 1 {
		return nil, ErrInvalidArgument
	}
	for _, w := range words {
		if w == "" {
			return nil, ErrInvalidArgument
		}
	}

	for i := 0; i < maxAttempts; i++ {
		p, ok := g.place(words, baseRelaxations+i)
		if ok && almostSquare(p.columns, p.rows) {
			return p, nil
		}
	}
	return nil, ErrCantFit
}

func almostSquare(columns, rows int) bool {
	long, short := max(columns, rows), min(columns, rows)
	return long-short <= maxAspectDelta
}

// placement is one word's segment plus the unit direction it was drawn with.
// The direction is kept separately because a one-letter word has a
// degenerate segment and no direction of its own to slide along.
type placement struct {
	seg geometry.Segment
	dir geometry.Vector
}

func (pl placement) slide(k int) placement {
	if pl.seg.Degenerate() {
		pl.seg = pl.seg.Translate(pl.dir.Scale(k))
		return pl
	}
	pl.seg = pl.seg.Slide(k)
	return pl
}

// place runs one attempt with the given relaxation budget. It reports false
// when segments still intersect after the last round.
func (g *Generator) place(words []string, relaxations int) (*Puzzle, bool) {
	placements := make([]placement, len(words))
	for i, w := range words {
		placements[i] = g.randomPlacement(w)
	}

	pairs := make([][2]int, 0, len(words)*2)
	for round := 0; round < relaxations; round++ {
		pairs = intersections(placements, pairs[:0])
		if len(pairs) == 0 {
			break
		}
		for _, pair := range pairs {
			i, j := pair[0], pair[1]
			placements[i] = placements[i].slide(g.coin())
			placements[j] = placements[j].slide(g.coin())
		}
	}
	if len(intersections(placements, pairs[:0])) > 0 {
		return nil, false
	}

	return build(words, placements, g.rng), true
}

func (g *Generator) randomPlacement(word string) placement {
	dir := geometry.Directions[g.rng.Intn(len(geometry.Directions))]
	start := geometry.Vec(g.rng.Intn(startBox), g.rng.Intn(startBox))
	end := start.Add(dir.Scale(utf8.RuneCountInString(word) - 1))
	return placement{seg: geometry.Seg(start, end), dir: dir}
}

// coin returns +1 or -1 with equal probability.
func (g *Generator) coin() int {
	if g.rng.Intn(2) == 0 {
		return 1
	}
	return -1
}

// intersections appends the index pairs of every intersecting placement to dst.
func intersections(placements []placement, dst [][2]int) [][2]int {
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			if placements[i].seg.Intersects(placements[j].seg) {
				dst = append(dst, [2]int{i, j})
			}
		}
	}
	return dst
}

// bounds returns the component-wise minimum and maximum over all endpoints.
func bounds(placements []placement) (geometry.Vector, geometry.Vector) {
	lo, hi := placements[0].seg.Start, placements[0].seg.Start
	for _, pl := range placements {
		for _, v := range [2]geometry.Vector{pl.seg.Start, pl.seg.End} {
			lo = geometry.Vec(min(lo.X, v.X), min(lo.Y, v.Y))
			hi = geometry.Vec(max(hi.X, v.X), max(hi.Y, v.Y))
		}
	}
	return lo, hi
}

// build translates the converged layout to the origin, writes every word and
// fills the remaining cells with random letters.
func build(words []string, placements []placement, rng *rand.Rand) *Puzzle {
	lo, hi := bounds(placements)
	p := Empty(hi.X-lo.X+1, hi.Y-lo.Y+1)
	shift := geometry.Vector{}.Sub(lo)

	for i, w := range words {
		seg := placements[i].seg.Translate(shift)
		step := placements[i].dir
		cur := seg.Start
		for _, r := range w {
			p.Set(cur.X, cur.Y, r)
			cur = cur.Add(step)
		}
		p.solutions[seg.Canonical()] = struct{}{}
		p.words = append(p.words, w)
	}

	for i, r := range p.table {
		if r == empty {
			p.table[i] = rune('a' + rng.Intn(26))
		}
	}
	return p
}
