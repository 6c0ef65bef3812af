package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
)

func TestDropPosition(t *testing.T) {
	tests := []struct {
		name    string
		pointer Point
		origin  Point
		half    Extents
		want    graph.Position
	}{
		{"centred", Point{400, 300}, Point{100, 50}, Extents{90, 30}, graph.Position{X: 210, Y: 220}},
		{"clamped left", Point{120, 300}, Point{100, 50}, Extents{90, 30}, graph.Position{X: 0, Y: 220}},
		{"clamped both", Point{0, 0}, Point{100, 50}, Extents{90, 30}, graph.Position{X: 0, Y: 0}},
		{"no extents", Point{15.5, 8}, Point{}, Extents{}, graph.Position{X: 15.5, Y: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DropPosition(tt.pointer, tt.origin, tt.half))
		})
	}
}

func TestDragDeltaIsIdentity(t *testing.T) {
	assert.Equal(t, graph.Delta{DX: -3, DY: 12.5}, DragDelta(Point{-3, 12.5}))
}

func TestNudge(t *testing.T) {
	assert.Equal(t, graph.Delta{DY: -10}, Nudge(Up, 10))
	assert.Equal(t, graph.Delta{DY: 10}, Nudge(Down, 10))
	assert.Equal(t, graph.Delta{DX: -10}, Nudge(Left, 10))
	assert.Equal(t, graph.Delta{DX: 10}, Nudge(Right, 10))
}

func TestDropThenDragFeedsStore(t *testing.T) {
	s := graph.New("cup")
	b := s.AddBlock(block.Group, DropPosition(Point{200, 200}, Point{}, Extents{90, 30}), "")
	assert.Equal(t, graph.Position{X: 110, Y: 170}, b.Position)

	s.MovePosition(b.ID, DragDelta(Point{-500, 5}))
	s.MovePosition(b.ID, Nudge(Down, 20))
	got, _ := s.Block(b.ID)
	assert.Equal(t, graph.Position{X: 0, Y: 195}, got.Position)
}
