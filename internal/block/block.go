// Package block holds the catalogue of tournament stage kinds and the
// configuration schema each kind carries.
package block

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Kind identifies a tournament stage type. It never changes once a block exists.
type Kind string

const (
	Group             Kind = "group"
	SingleElimination Kind = "single_elimination"
	DoubleElimination Kind = "double_elimination"
	Swiss             Kind = "swiss"
	RoundRobin        Kind = "round_robin"
	Ladder            Kind = "ladder"
)

// OptionType is the value type of a config option.
type OptionType int

const (
	IntOption OptionType = iota
	BoolOption
)

func (t OptionType) String() string {
	switch t {
	case IntOption:
		return "int"
	case BoolOption:
		return "bool"
	default:
		return "unknown"
	}
}

// Option describes one configuration field of a kind.
type Option struct {
	Name    string
	Type    OptionType
	Default any // int or bool, matching Type
	Min     int
	Max     int
	// MaxFrom names an earlier option whose current value further caps Max.
	MaxFrom string
}

// Bounds returns the inclusive range for an int option given the rest of cfg.
func (o Option) Bounds(cfg Config) (lo, hi int) {
	lo, hi = o.Min, o.Max
	if o.MaxFrom != "" {
		if v, ok := cfg[o.MaxFrom].(int); ok && v < hi {
			hi = v
		}
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Clamp pins v into the option's bounds.
func (o Option) Clamp(v int, cfg Config) int {
	lo, hi := o.Bounds(cfg)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type kindSpec struct {
	label   string
	options []Option
}

func eliminationOptions() []Option {
	return []Option{
		{Name: "team_count", Type: IntOption, Default: 16, Min: 4, Max: 128},
		{Name: "seeded", Type: BoolOption, Default: true},
		{Name: "third_place", Type: BoolOption, Default: false},
	}
}

// registry is the one place that maps a kind to its label and schema.
// Options that depend on another option must come after it.
var registry = map[Kind]kindSpec{
	Group: {
		label: "Group Stage",
		options: []Option{
			{Name: "group_count", Type: IntOption, Default: 4, Min: 1, Max: 16},
			{Name: "teams_per_group", Type: IntOption, Default: 4, Min: 2, Max: 8},
			{Name: "advance_count", Type: IntOption, Default: 2, Min: 1, Max: 8, MaxFrom: "teams_per_group"},
			{Name: "round_robin", Type: BoolOption, Default: false},
		},
	},
	SingleElimination: {
		label:   "Single Elimination",
		options: eliminationOptions(),
	},
	DoubleElimination: {
		label: "Double Elimination",
		options: append(eliminationOptions(),
			Option{Name: "grand_final_reset", Type: BoolOption, Default: true}),
	},
	Swiss: {
		label: "Swiss System",
		options: []Option{
			{Name: "team_count", Type: IntOption, Default: 16, Min: 4, Max: 64},
			{Name: "rounds", Type: IntOption, Default: 5, Min: 3, Max: 10},
			{Name: "accelerated_pairing", Type: BoolOption, Default: false},
		},
	},
	RoundRobin: {
		label: "Round Robin",
		options: []Option{
			{Name: "team_count", Type: IntOption, Default: 8, Min: 3, Max: 20},
			{Name: "double_round_robin", Type: BoolOption, Default: false},
		},
	},
	Ladder: {
		label: "Ladder",
		options: []Option{
			{Name: "team_count", Type: IntOption, Default: 20, Min: 5, Max: 100},
			{Name: "challenge_window_days", Type: IntOption, Default: 7, Min: 1, Max: 30},
			{Name: "max_challenge_range", Type: IntOption, Default: 3, Min: 1, Max: 10},
		},
	},
}

var kinds = []Kind{Group, SingleElimination, DoubleElimination, Swiss, RoundRobin, Ladder}

// Kinds returns every kind in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := registry[k]
	return ok
}

// Label returns the human readable name of k.
func Label(k Kind) string {
	if s, ok := registry[k]; ok {
		return s.label
	}
	return string(k)
}

// Schema returns the ordered options of k.
func Schema(k Kind) []Option {
	s := registry[k]
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

// Lookup returns the option called name for k.
func Lookup(k Kind, name string) (Option, bool) {
	for _, o := range registry[k].options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// DefaultConfig returns a fully populated config for k.
func DefaultConfig(k Kind) Config {
	cfg := make(Config, len(registry[k].options))
	for _, o := range registry[k].options {
		cfg[o.Name] = o.Default
	}
	return cfg
}

// Normalize resolves raw into a complete config for k: missing keys take
// their defaults, numbers are coerced to int and clamped, unknown keys drop.
func Normalize(k Kind, raw map[string]any) Config {
	cfg := make(Config, len(registry[k].options))
	for _, o := range registry[k].options {
		v, present := raw[o.Name]
		switch o.Type {
		case IntOption:
			n, ok := toInt(v)
			if !present || !ok {
				n = o.Default.(int)
			}
			cfg[o.Name] = o.Clamp(n, cfg)
		case BoolOption:
			b, ok := v.(bool)
			if !present || !ok {
				b = o.Default.(bool)
			}
			cfg[o.Name] = b
		}
	}
	return cfg
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return floatToInt(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	default:
		return 0, false
	}
}

// floatToInt rounds n, saturating at the int range.
func floatToInt(n float64) (int, bool) {
	switch {
	case math.IsNaN(n):
		return 0, false
	case n >= math.MaxInt64:
		return math.MaxInt, true
	case n <= math.MinInt64:
		return math.MinInt, true
	}
	return int(math.Round(n)), true
}

func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// ParseKind matches s against kind tags and labels, ignoring case and
// treating spaces and hyphens as underscores.
func ParseKind(s string) (Kind, error) {
	c := canonical(s)
	for _, k := range kinds {
		if c == string(k) || c == canonical(registry[k].label) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown block kind: %q", s)
}

// LookupKind is ParseKind with a fuzzy fallback, so "swis" or "dbl elim"
// still resolve.
func LookupKind(query string) (Kind, error) {
	if k, err := ParseKind(query); err == nil {
		return k, nil
	}
	candidates := make([]string, 0, 2*len(kinds))
	owners := make([]Kind, 0, 2*len(kinds))
	for _, k := range kinds {
		candidates = append(candidates, string(k), strings.ToLower(registry[k].label))
		owners = append(owners, k, k)
	}
	matches := fuzzy.Find(strings.ToLower(strings.TrimSpace(query)), candidates)
	if len(matches) == 0 {
		return "", fmt.Errorf("unknown block kind: %q", query)
	}
	return owners[matches[0].Index], nil
}
