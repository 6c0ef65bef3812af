// Package inspector exposes the editable fields of a block and writes user
// input back through the graph store.
//
// Numeric input that parses but falls outside a field's range is clamped to
// the nearest bound rather than rejected. Only input that does not parse at
// all is an error.
package inspector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
)

var (
	// ErrInvalidNumber is returned when an int field gets unparsable input.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrInvalidBool is returned when a bool field gets unparsable input.
	ErrInvalidBool = errors.New("invalid boolean")
	// ErrUnknownField is returned for a field the block's kind does not have.
	ErrUnknownField = errors.New("unknown field")
)

// TitleField is the name of the free text title field every block has.
const TitleField = "title"

// FieldType is the value type of an editable field.
type FieldType int

const (
	Int FieldType = iota
	Bool
	String
)

func (t FieldType) String() string {
	switch t {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Field describes one editable field and its current value.
type Field struct {
	Name  string    `json:"name"`
	Type  FieldType `json:"-"`
	Min   int       `json:"min,omitempty"`
	Max   int       `json:"max,omitempty"`
	Value any       `json:"value"`
}

// Store is the part of graph.Store the inspector needs.
type Store interface {
	Block(id string) (graph.Block, bool)
	UpdateConfig(id string, cfg block.Config) bool
	UpdateTitle(id, title string) bool
}

// Fields lists the editable fields of b: the title first, then the kind's
// options in schema order. Int bounds reflect the block's current config.
func Fields(b graph.Block) []Field {
	schema := block.Schema(b.Kind)
	fields := make([]Field, 0, len(schema)+1)
	fields = append(fields, Field{Name: TitleField, Type: String, Value: b.Title})
	for _, o := range schema {
		f := Field{Name: o.Name, Value: b.Config[o.Name]}
		switch o.Type {
		case block.IntOption:
			f.Type = Int
			f.Min, f.Max = o.Bounds(b.Config)
		case block.BoolOption:
			f.Type = Bool
		}
		fields = append(fields, f)
	}
	return fields
}

// SetField parses raw for the named field of block id and writes it back.
func SetField(s Store, id, name, raw string) error {
	b, ok := s.Block(id)
	if !ok {
		return fmt.Errorf("%w: %s", graph.ErrUnknownBlock, id)
	}

	if name == TitleField {
		s.UpdateTitle(id, raw)
		return nil
	}

	opt, ok := block.Lookup(b.Kind, name)
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, block.Label(b.Kind), name)
	}

	cfg := b.Config.Clone()
	switch opt.Type {
	case block.IntOption:
		// Atoi saturates on ErrRange, so huge values clamp like any other.
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%w: %s: %q", ErrInvalidNumber, name, raw)
		}
		cfg[name] = opt.Clamp(n, cfg)
		reclampDependents(b.Kind, name, cfg)
	case block.BoolOption:
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s: %q", ErrInvalidBool, name, raw)
		}
		cfg[name] = v
	}

	s.UpdateConfig(id, cfg)
	return nil
}

// Toggle flips a bool field.
func Toggle(s Store, id, name string) error {
	b, ok := s.Block(id)
	if !ok {
		return fmt.Errorf("%w: %s", graph.ErrUnknownBlock, id)
	}
	opt, ok := block.Lookup(b.Kind, name)
	if !ok || opt.Type != block.BoolOption {
		return fmt.Errorf("%w: %s has no toggle %q", ErrUnknownField, block.Label(b.Kind), name)
	}
	return SetField(s, id, name, strconv.FormatBool(!b.Config.Bool(name)))
}

// reclampDependents keeps options whose upper bound comes from changed in
// range, e.g. advance_count after teams_per_group shrinks.
func reclampDependents(k block.Kind, changed string, cfg block.Config) {
	for _, o := range block.Schema(k) {
		if o.MaxFrom == changed && o.Type == block.IntOption {
			cfg[o.Name] = o.Clamp(cfg.Int(o.Name), cfg)
		}
	}
}
