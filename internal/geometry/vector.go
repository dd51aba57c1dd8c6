// Package geometry provides the integer vector and line segment primitives
// used to lay words out on a puzzle grid.
package geometry

import "fmt"

// Vector is an integer 2-D vector. The zero value is the origin.
type Vector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec returns the vector (x, y).
func Vec(x, y int) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vector) Scale(k int) Vector {
	return Vector{X: v.X * k, Y: v.Y * k}
}

// Normal reduces every non-zero component to ±1 and leaves zero components
// untouched. For the eight compass directions this yields the unit step.
func (v Vector) Normal() Vector {
	return Vector{X: sign(v.X), Y: sign(v.Y)}
}

// IsZero reports whether v is the origin.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Less orders vectors by X, then by Y.
func (v Vector) Less(o Vector) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	return v.Y < o.Y
}

func (v Vector) String() string {
	return fmt.Sprintf("(%d, %d)", v.X, v.Y)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Directions are the eight compass and diagonal unit steps a word may follow.
var Directions = [8]Vector{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: -1, Y: -1},
}
