// Package persist converts a graph store to and from the portable structure
// document, and moves that document through files.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
)

// DefaultName is used when an imported document carries no name.
const DefaultName = "Untitled tournament"

var (
	// ErrMalformedDocument is returned when the top level of a document is
	// unusable. Nothing is imported in that case.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUnknownFormat is returned for an unsupported export format.
	ErrUnknownFormat = errors.New("unknown format")
)

// Document is the exported form of a graph.
type Document struct {
	Name        string       `json:"name" yaml:"name"`
	Blocks      []Block      `json:"blocks" yaml:"blocks"`
	Connections []Connection `json:"connections" yaml:"connections"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
}

// Block is one exported block.
type Block struct {
	ID           string         `json:"id" yaml:"id"`
	Type         block.Kind     `json:"type" yaml:"type"`
	Position     graph.Position `json:"position" yaml:"position"`
	Title        string         `json:"title" yaml:"title"`
	Participants []any          `json:"participants" yaml:"participants"`
	Config       block.Config   `json:"config" yaml:"config"`
}

// Connection is one exported connection.
type Connection struct {
	ID   string `json:"id" yaml:"id"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Format names an encoding of the document or a rendering of the graph.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	DOT  Format = "dot"
	HTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, YAML, DOT, HTML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use json, yaml, dot, or html)", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks a document format from a file extension. Anything
// that is not YAML is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Ext returns the file extension for f, with the dot.
func (f Format) Ext() string {
	if f == YAML {
		return ".yaml"
	}
	return "." + string(f)
}

// SuggestedFilename derives a file name from a graph name: whitespace runs
// become hyphens and everything is lower-cased.
func SuggestedFilename(name string, f Format) string {
	base := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	if base == "" {
		base = "tournament"
	}
	return base + f.Ext()
}

// Export snapshots the store into a document.
func Export(s *graph.Store, now time.Time) Document {
	blocks := s.Blocks()
	conns := s.Connections()

	doc := Document{
		Name:        s.Name(),
		Blocks:      make([]Block, 0, len(blocks)),
		Connections: make([]Connection, 0, len(conns)),
		CreatedAt:   now.UTC(),
	}
	for _, b := range blocks {
		participants := b.Participants
		if participants == nil {
			participants = make([]any, 0)
		}
		doc.Blocks = append(doc.Blocks, Block{
			ID:           b.ID,
			Type:         b.Kind,
			Position:     b.Position,
			Title:        b.Title,
			Participants: participants,
			Config:       b.Config,
		})
	}
	for _, c := range conns {
		doc.Connections = append(doc.Connections, Connection{ID: c.ID, From: c.From, To: c.To})
	}
	return doc
}

// Marshal encodes a document as JSON or YAML.
func Marshal(doc Document, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("yaml encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q is not a document format", ErrUnknownFormat, f)
	}
}

// Render produces f for the store: a document for json/yaml, a drawing for
// dot/html.
func Render(s *graph.Store, f Format, now time.Time) ([]byte, error) {
	switch f {
	case DOT:
		return []byte(s.ExportDOT()), nil
	case HTML:
		return []byte(s.ExportHTML()), nil
	default:
		return Marshal(Export(s, now), f)
	}
}
