package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
)

// Report summarises an import.
type Report struct {
	Name               string
	Blocks             int
	Connections        int
	DroppedBlocks      int
	DroppedConnections int
}

// Entries with pointer fields so a missing key can be told apart from a
// zero value.
type rawPosition struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type rawBlock struct {
	ID           *string        `json:"id"`
	Type         *string        `json:"type"`
	Position     *rawPosition   `json:"position"`
	Title        *string        `json:"title"`
	Participants []any          `json:"participants"`
	Config       map[string]any `json:"config"`
}

type rawConnection struct {
	ID   *string `json:"id"`
	From *string `json:"from"`
	To   *string `json:"to"`
}

// Import parses data and replaces the whole store with it. A document whose
// top level is not an object with blocks and connections arrays fails with
// ErrMalformedDocument and leaves the store untouched. Otherwise broken
// entries are skipped and everything else is imported.
func Import(s *graph.Store, data []byte, f Format, fallbackName string) (Report, error) {
	if f == YAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return Report{}, err
		}
		data = converted
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	rawBlocks, err := requireArray(top, "blocks")
	if err != nil {
		return Report{}, err
	}
	rawConns, err := requireArray(top, "connections")
	if err != nil {
		return Report{}, err
	}

	var rep Report
	rep.Name = fallbackName
	if rep.Name == "" {
		rep.Name = DefaultName
	}
	if raw, ok := top["name"]; ok {
		var name string
		if json.Unmarshal(raw, &name) == nil && name != "" {
			rep.Name = name
		}
	}

	blocks := make([]graph.Block, 0, len(rawBlocks))
	for _, raw := range rawBlocks {
		b, ok := decodeBlock(raw)
		if !ok {
			rep.DroppedBlocks++
			continue
		}
		blocks = append(blocks, b)
	}

	conns := make([]graph.Connection, 0, len(rawConns))
	for _, raw := range rawConns {
		c, ok := decodeConnection(raw)
		if !ok {
			rep.DroppedConnections++
			continue
		}
		conns = append(conns, c)
	}

	db, dc := s.ReplaceAll(rep.Name, blocks, conns)
	rep.DroppedBlocks += db
	rep.DroppedConnections += dc
	rep.Blocks = len(blocks) - db
	rep.Connections = len(conns) - dc
	return rep, nil
}

func requireArray(top map[string]json.RawMessage, key string) ([]json.RawMessage, error) {
	raw, ok := top[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: missing %q array", ErrMalformedDocument, key)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedDocument, key)
	}
	return items, nil
}

func decodeBlock(raw json.RawMessage) (graph.Block, bool) {
	var rb rawBlock
	if err := json.Unmarshal(raw, &rb); err != nil {
		return graph.Block{}, false
	}
	if rb.ID == nil || *rb.ID == "" || rb.Type == nil || rb.Position == nil ||
		rb.Position.X == nil || rb.Position.Y == nil {
		return graph.Block{}, false
	}
	kind := block.Kind(*rb.Type)
	if !kind.Valid() {
		return graph.Block{}, false
	}

	title := block.Label(kind)
	if rb.Title != nil {
		title = *rb.Title
	}
	participants := rb.Participants
	if participants == nil {
		participants = make([]any, 0)
	}
	return graph.Block{
		ID:           *rb.ID,
		Kind:         kind,
		Title:        title,
		Position:     graph.Position{X: *rb.Position.X, Y: *rb.Position.Y},
		Config:       block.Normalize(kind, rb.Config),
		Participants: participants,
	}, true
}

func decodeConnection(raw json.RawMessage) (graph.Connection, bool) {
	var rc rawConnection
	if err := json.Unmarshal(raw, &rc); err != nil {
		return graph.Connection{}, false
	}
	if rc.ID == nil || *rc.ID == "" || rc.From == nil || rc.To == nil {
		return graph.Connection{}, false
	}
	return graph.Connection{ID: *rc.ID, From: *rc.From, To: *rc.To}, true
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one
// validation path.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	out, err := json.Marshal(jsonSafe(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return out, nil
}

// jsonSafe rewrites what YAML allows and JSON does not: non-string map keys
// and non-finite floats. Problems stay local to the entry that has them.
func jsonSafe(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = jsonSafe(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = jsonSafe(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = jsonSafe(e)
		}
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	default:
		return v
	}
}
