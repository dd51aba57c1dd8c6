package geometry

import "fmt"

// Segment is a finite line between two grid points, inclusive of both ends.
type Segment struct {
	Start Vector `json:"start"`
	End   Vector `json:"end"`
}

// Seg returns the segment from start to end.
func Seg(start, end Vector) Segment {
	return Segment{Start: start, End: end}
}

// Direction returns End - Start.
func (s Segment) Direction() Vector {
	return s.End.Sub(s.Start)
}

// Step returns the unit step that walks from Start towards End.
func (s Segment) Step() Vector {
	return s.Direction().Normal()
}

// Degenerate reports whether the segment covers a single point.
func (s Segment) Degenerate() bool {
	return s.Start == s.End
}

// Cells returns the number of grid cells the segment covers when walked
// along Step. Only meaningful for axis-aligned and diagonal segments.
func (s Segment) Cells() int {
	d := s.Direction()
	return max(abs(d.X), abs(d.Y)) + 1
}

// Translate moves both endpoints by d.
func (s Segment) Translate(d Vector) Segment {
	return Segment{Start: s.Start.Add(d), End: s.End.Add(d)}
}

// Slide moves the segment along its own direction by k segment lengths.
func (s Segment) Slide(k int) Segment {
	return s.Translate(s.Direction().Scale(k))
}

// Canonical returns the segment with the smaller endpoint (by X, then Y) first.
func (s Segment) Canonical() Segment {
	if s.End.Less(s.Start) {
		return Segment{Start: s.End, End: s.Start}
	}
	return s
}

// Flat returns the endpoints as x1, y1, x2, y2.
func (s Segment) Flat() [4]int {
	return [4]int{s.Start.X, s.Start.Y, s.End.X, s.End.Y}
}

// FromFlat is the inverse of Flat.
func FromFlat(f [4]int) Segment {
	return Segment{Start: Vec(f[0], f[1]), End: Vec(f[2], f[3])}
}

// Intersects reports whether s and o share at least one point under the
// SegmentsIntersecting rules. Single-point segments are handled here so that
// SegmentsIntersecting can keep requiring non-degenerate input.
func (s Segment) Intersects(o Segment) bool {
	switch {
	case s.Degenerate() && o.Degenerate():
		return s.Start == o.Start
	case s.Degenerate():
		return o.contains(s.Start)
	case o.Degenerate():
		return s.contains(o.Start)
	}
	return SegmentsIntersecting(s.Start, s.End, o.Start, o.End)
}

// contains reports whether p lies on the non-degenerate segment s.
func (s Segment) contains(p Vector) bool {
	a := s.Direction()
	d := p.Sub(s.Start)
	if a.X*d.Y-a.Y*d.X != 0 {
		return false
	}
	return p.X >= min(s.Start.X, s.End.X) && p.X <= max(s.Start.X, s.End.X) &&
		p.Y >= min(s.Start.Y, s.End.Y) && p.Y <= max(s.Start.Y, s.End.Y)
}

func (s Segment) String() string {
	return fmt.Sprintf("%s, %s", s.Start, s.End)
}

// SegmentsIntersecting reports whether segment A (startA to endA) and segment
// B (startB to endB) intersect. Shared endpoints count as an intersection.
//
// Parallel segments intersect only when they are collinear, and every
// collinear pair is reported as intersecting whether or not the segments
// overlap. Both segments must have non-zero length; a degenerate segment
// panics.
func SegmentsIntersecting(startA, endA, startB, endB Vector) bool {
	a := endA.Sub(startA)
	b := startB.Sub(endB)
	if a.IsZero() || b.IsZero() {
		panic("geometry: degenerate segment")
	}

	d := startB.Sub(startA)
	det := a.X*b.Y - a.Y*b.X

	if det == 0 {
		return a.X*d.Y-a.Y*d.X == 0
	}

	r := float64(d.X*b.Y-d.Y*b.X) / float64(det)
	s := float64(a.X*d.Y-a.Y*d.X) / float64(det)

	return r >= 0 && r <= 1 && s >= 0 && s <= 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
