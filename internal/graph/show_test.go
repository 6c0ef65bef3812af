package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/tourney/internal/block"
)

func plain(s string) string { return s }

func TestRenderShow(t *testing.T) {
	s := New("cup", seqIDs())
	a := s.AddBlock(block.Group, Position{}, "Pools")
	b := s.AddBlock(block.SingleElimination, Position{X: 200}, "Playoffs")
	c := s.AddBlock(block.Ladder, Position{X: 400}, "Ladder")
	_, err := s.AddConnection(a.ID, b.ID)
	require.NoError(t, err)
	_, err = s.AddConnection(b.ID, c.ID)
	require.NoError(t, err)

	out, err := RenderShow(s, b.ID, plain, plain, plain)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "from")
	assert.Contains(t, lines[0], "Pools")
	assert.Contains(t, out, "● Playoffs")
	assert.Contains(t, out, "Single Elimination")
	assert.Contains(t, out, "└── to ── Ladder")

	_, err = RenderShow(s, "nope", plain, plain, plain)
	assert.ErrorIs(t, err, ErrUnknownBlock)
}

func TestRenderOrder(t *testing.T) {
	s := New("cup", seqIDs())
	a := s.AddBlock(block.Group, Position{}, "Pools")
	b := s.AddBlock(block.SingleElimination, Position{}, "Playoffs")
	_, err := s.AddConnection(b.ID, a.ID)
	require.NoError(t, err)

	out, err := RenderOrder(s, plain, plain)
	require.NoError(t, err)
	assert.Equal(t, "   1. Playoffs (Single Elimination)\n   2. Pools (Group Stage)\n", out)

	_, err = s.AddConnection(a.ID, b.ID)
	require.NoError(t, err)
	_, err = RenderOrder(s, plain, plain)
	assert.ErrorIs(t, err, ErrCycle)
}
