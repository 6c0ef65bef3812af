// Package placement turns pointer and keyboard input into canvas positions.
// It never mutates a graph; callers feed its results to graph.Store.
package placement

import "github.com/msalah0e/tourney/internal/graph"

// Point is a coordinate pair in client or canvas space.
type Point struct {
	X float64
	Y float64
}

// Extents is half the size of a block, used to centre it under the pointer.
type Extents struct {
	W float64
	H float64
}

// DropPosition places a new block so that its centre sits under the
// pointer, clamped to the canvas' non-negative quadrant.
func DropPosition(pointer, origin Point, half Extents) graph.Position {
	return graph.Position{
		X: pointer.X - origin.X - half.W,
		Y: pointer.Y - origin.Y - half.H,
	}.Clamp()
}

// DragDelta converts a pointer delta into a store move. It is the seam every
// input device goes through.
func DragDelta(pointerDelta Point) graph.Delta {
	return graph.Delta{DX: pointerDelta.X, DY: pointerDelta.Y}
}

// Direction is a keyboard nudge direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Nudge turns a keyboard step into the same delta a drag would produce.
func Nudge(dir Direction, step float64) graph.Delta {
	var p Point
	switch dir {
	case Up:
		p.Y = -step
	case Down:
		p.Y = step
	case Left:
		p.X = -step
	case Right:
		p.X = step
	}
	return DragDelta(p)
}
