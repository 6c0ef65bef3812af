package persist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/inspector"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleStore(t *testing.T) *graph.Store {
	t.Helper()
	s := graph.New("Spring Open 2026")
	a := s.AddBlock(block.Group, graph.Position{X: 0, Y: 0}, "Pools")
	b := s.AddBlock(block.DoubleElimination, graph.Position{X: 300.5, Y: 40}, "")
	c := s.AddBlock(block.Ladder, graph.Position{X: 600, Y: 120}, "Ladder")
	require.NoError(t, inspector.SetField(s, a.ID, "teams_per_group", "6"))
	require.NoError(t, inspector.SetField(s, b.ID, "third_place", "true"))
	_, err := s.AddConnection(a.ID, b.ID)
	require.NoError(t, err)
	_, err = s.AddConnection(b.ID, c.ID)
	require.NoError(t, err)
	return s
}

func TestExportShape(t *testing.T) {
	s := sampleStore(t)
	data, err := Marshal(Export(s, fixedNow), JSON)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Spring Open 2026", doc["name"])
	assert.Equal(t, "2026-03-14T09:30:00Z", doc["createdAt"])

	blocks := doc["blocks"].([]any)
	require.Len(t, blocks, 3)
	first := blocks[0].(map[string]any)
	assert.Equal(t, "group", first["type"])
	assert.Equal(t, "Pools", first["title"])
	assert.Equal(t, map[string]any{"x": 0.0, "y": 0.0}, first["position"])
	assert.Equal(t, []any{}, first["participants"])
	assert.Equal(t, 6.0, first["config"].(map[string]any)["teams_per_group"])

	conns := doc["connections"].([]any)
	require.Len(t, conns, 2)
	assert.Contains(t, conns[0], "from")
	assert.Contains(t, conns[0], "to")
	assert.Contains(t, conns[0], "id")
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{JSON, YAML} {
		t.Run(string(f), func(t *testing.T) {
			src := sampleStore(t)
			data, err := Marshal(Export(src, fixedNow), f)
			require.NoError(t, err)

			dst := graph.New("scratch")
			rep, err := Import(dst, data, f, "")
			require.NoError(t, err)
			assert.Equal(t, 3, rep.Blocks)
			assert.Equal(t, 2, rep.Connections)
			assert.Zero(t, rep.DroppedBlocks)
			assert.Zero(t, rep.DroppedConnections)

			assert.Equal(t, src.Name(), dst.Name())
			if diff := cmp.Diff(src.Blocks(), dst.Blocks()); diff != "" {
				t.Errorf("blocks mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(src.Connections(), dst.Connections()); diff != "" {
				t.Errorf("connections mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTripKeepsParticipants(t *testing.T) {
	src := graph.New("cup")
	src.ReplaceAll("cup", []graph.Block{{
		ID:           "b1",
		Kind:         block.Swiss,
		Title:        "Swiss",
		Config:       block.DefaultConfig(block.Swiss),
		Participants: []any{"player-7", map[string]any{"id": "team-2"}},
	}}, nil)

	data, err := Marshal(Export(src, fixedNow), JSON)
	require.NoError(t, err)
	dst := graph.New("")
	_, err = Import(dst, data, JSON, "")
	require.NoError(t, err)

	if diff := cmp.Diff(src.Blocks(), dst.Blocks()); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestImportMalformedBlockEntryYieldsEmptyGraph(t *testing.T) {
	s := graph.New("before")
	rep, err := Import(s, []byte(`{"blocks": [{"id":"x"}], "connections": []}`), JSON, "")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.DroppedBlocks)
	assert.Empty(t, s.Blocks())
	assert.Empty(t, s.Connections())
	assert.Equal(t, DefaultName, s.Name())
}

func TestImportMalformedDocumentLeavesStoreUntouched(t *testing.T) {
	docs := map[string]string{
		"not json":            `{"blocks": [`,
		"array":               `[1,2,3]`,
		"missing connections": `{"name":"x","blocks":[]}`,
		"missing blocks":      `{"connections":[]}`,
		"null blocks":         `{"blocks":null,"connections":[]}`,
		"blocks not array":    `{"blocks":{},"connections":[]}`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			s := sampleStore(t)
			before := s.Blocks()
			_, err := Import(s, []byte(doc), JSON, "")
			assert.ErrorIs(t, err, ErrMalformedDocument)
			assert.Equal(t, before, s.Blocks())
			assert.Equal(t, "Spring Open 2026", s.Name())
		})
	}
}

func TestImportBestEffort(t *testing.T) {
	doc := `{
	  "blocks": [
	    {"id":"a","type":"group","position":{"x":10,"y":-5},"config":{"advance_count":9,"bogus":1}},
	    {"id":"b","type":"swiss","position":{"x":200,"y":0},"title":"Open"},
	    {"id":"c","type":"knockout","position":{"x":0,"y":0}},
	    {"id":"d","type":"ladder","position":{"x":"left","y":0}},
	    {"id":"e","type":"ladder","position":{"x":1}},
	    "not an object"
	  ],
	  "connections": [
	    {"id":"k1","from":"a","to":"b"},
	    {"id":"k2","from":"a","to":"c"},
	    {"id":"k3","from":"b"},
	    {"id":"k4","from":"b","to":"b"},
	    42
	  ]
	}`
	s := graph.New("")
	rep, err := Import(s, []byte(doc), JSON, "Fallback Cup")
	require.NoError(t, err)

	assert.Equal(t, "Fallback Cup", s.Name())
	assert.Equal(t, 2, rep.Blocks)
	assert.Equal(t, 4, rep.DroppedBlocks)
	assert.Equal(t, 1, rep.Connections)
	assert.Equal(t, 4, rep.DroppedConnections)

	a, ok := s.Block("a")
	require.True(t, ok)
	assert.Equal(t, "Group Stage", a.Title)
	assert.Equal(t, graph.Position{X: 10, Y: 0}, a.Position)
	assert.Equal(t, block.Config{
		"group_count":     4,
		"teams_per_group": 4,
		"advance_count":   4,
		"round_robin":     false,
	}, a.Config)

	b, _ := s.Block("b")
	assert.Equal(t, "Open", b.Title)
	assert.Equal(t, block.DefaultConfig(block.Swiss), b.Config)
}

func TestImportYAMLWithNonStringKeys(t *testing.T) {
	doc := `
name: Harbour League
7: stray
blocks:
  - id: a
    type: swiss
    position: {x: 10, y: 0}
    title: Opening
    config:
      team_count: 20
      1: odd key
  - id: b
    type: ladder
    position: {x: 300, y: 0}
    title: Ladder
    config: {}
  - id: c
    type: group
    position: {x: .nan, y: 0}
connections:
  - id: c1
    from: a
    to: b
`
	s := graph.New("scratch")
	rep, err := Import(s, []byte(doc), YAML, "")
	require.NoError(t, err)
	assert.Equal(t, "Harbour League", rep.Name)
	assert.Equal(t, 2, rep.Blocks)
	assert.Equal(t, 1, rep.DroppedBlocks)
	assert.Equal(t, 1, rep.Connections)

	a, ok := s.Block("a")
	require.True(t, ok)
	assert.Equal(t, 20, a.Config["team_count"])
	assert.NotContains(t, a.Config, "1")

	_, ok = s.Block("c")
	assert.False(t, ok)
}

func TestSuggestedFilename(t *testing.T) {
	assert.Equal(t, "spring-open-2026.json", SuggestedFilename("Spring  Open\t2026", JSON))
	assert.Equal(t, "club-cup.yaml", SuggestedFilename(" Club Cup ", YAML))
	assert.Equal(t, "tournament.dot", SuggestedFilename("   ", DOT))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, YAML, FormatFromPath("a/b.yml"))
	assert.Equal(t, JSON, FormatFromPath("a/b.txt"))
}

func TestRenderDrawings(t *testing.T) {
	s := sampleStore(t)
	dot, err := Render(s, DOT, fixedNow)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dot), "digraph"))

	page, err := Render(s, HTML, fixedNow)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<svg")

	_, err = Marshal(Document{}, DOT)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestBridgeFiles(t *testing.T) {
	dir := t.TempDir()
	src := sampleStore(t)
	br := NewBridge(src, "")
	br.now = func() time.Time { return fixedNow }

	path := filepath.Join(dir, "nested", SuggestedFilename(src.Name(), YAML))
	require.NoError(t, br.ExportFile(path, YAML))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "name: Spring Open 2026")

	dst := graph.New("")
	rep, err := NewBridge(dst, "").ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Blocks)
	if diff := cmp.Diff(src.Blocks(), dst.Blocks()); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}

	_, err = NewBridge(dst, "").ImportFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBridgeRejectsReentrantImport(t *testing.T) {
	s := graph.New("")
	br := NewBridge(s, "")

	var nested error
	unsubscribe := s.Subscribe(func() {
		_, nested = br.Import([]byte(`{"blocks":[],"connections":[]}`), JSON)
	})
	_, err := br.Import([]byte(`{"name":"outer","blocks":[],"connections":[]}`), JSON)
	unsubscribe()

	require.NoError(t, err)
	assert.ErrorIs(t, nested, ErrImportInProgress)
	assert.Equal(t, "outer", s.Name())

	// The guard is released once the first import returns
	_, err = br.Import([]byte(`{"name":"again","blocks":[],"connections":[]}`), JSON)
	require.NoError(t, err)
}
