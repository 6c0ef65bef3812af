package connect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
)

type recordingConnector struct {
	calls [][2]string
}

func (r *recordingConnector) AddConnection(from, to string) (*graph.Connection, error) {
	r.calls = append(r.calls, [2]string{from, to})
	return &graph.Connection{ID: "c", From: from, To: to}, nil
}

func TestZeroValueIsIdle(t *testing.T) {
	var s Session
	assert.Equal(t, Idle, s.State())
	assert.False(t, s.Active())
	assert.Empty(t, s.Source())
}

func TestCreateAndConnect(t *testing.T) {
	store := graph.New("cup")
	a := store.AddBlock(block.Group, graph.Position{}, "")
	b := store.AddBlock(block.Swiss, graph.Position{X: 300}, "")

	var s Session
	require.True(t, s.Start(a.ID))
	assert.Equal(t, Connecting, s.State())
	assert.Equal(t, a.ID, s.Source())

	c, err := s.Complete(store, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, c.From)
	assert.Equal(t, b.ID, c.To)

	conns := store.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, a.ID, conns[0].From)
	assert.Equal(t, b.ID, conns[0].To)
	assert.Equal(t, Idle, s.State())
}

func TestDuplicateConnectReturnsToIdle(t *testing.T) {
	store := graph.New("cup")
	a := store.AddBlock(block.Group, graph.Position{}, "")
	b := store.AddBlock(block.Swiss, graph.Position{X: 300}, "")

	var s Session
	s.Start(a.ID)
	_, err := s.Complete(store, b.ID)
	require.NoError(t, err)

	s.Start(a.ID)
	c, err := s.Complete(store, b.ID)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, graph.ErrInvalidConnection)
	assert.Len(t, store.Connections(), 1)
	assert.Equal(t, Idle, s.State())
}

func TestCompleteOnSourceSkipsStore(t *testing.T) {
	rec := &recordingConnector{}
	var s Session
	s.Start("a")

	c, err := s.Complete(rec, "a")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, graph.ErrInvalidConnection)
	assert.Empty(t, rec.calls)
	assert.False(t, s.Active())
}

func TestCompleteWhenIdle(t *testing.T) {
	rec := &recordingConnector{}
	var s Session
	_, err := s.Complete(rec, "b")
	assert.ErrorIs(t, err, ErrNotConnecting)
	assert.Empty(t, rec.calls)
}

func TestStartWhileConnectingIsIgnored(t *testing.T) {
	rec := &recordingConnector{}
	var s Session
	require.True(t, s.Start("a"))
	assert.False(t, s.Start("b"))
	assert.Equal(t, "a", s.Source())

	_, err := s.Complete(rec, "c")
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"a", "c"}}, rec.calls)
}

func TestCancel(t *testing.T) {
	rec := &recordingConnector{}
	var s Session
	s.Start("a")
	s.Cancel()
	assert.Equal(t, Idle, s.State())
	assert.Empty(t, s.Source())

	_, err := s.Complete(rec, "b")
	assert.ErrorIs(t, err, ErrNotConnecting)
	assert.Empty(t, rec.calls)

	// After a cancel a new gesture may start from another block
	assert.True(t, s.Start("b"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "connecting", Connecting.String())
}
