package block

import (
	"fmt"
	"sort"
	"strings"
)

// Config maps option names to values. Values are int or bool.
type Config map[string]any

// Int returns the int value of name, or 0.
func (c Config) Int(name string) int {
	v, _ := c[name].(int)
	return v
}

// Bool returns the bool value of name, or false.
func (c Config) Bool(name string) bool {
	v, _ := c[name].(bool)
	return v
}

// Clone returns a shallow copy; values are scalars so it is independent.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// String renders the config as sorted key=value pairs.
func (c Config) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c[k]))
	}
	return strings.Join(parts, " ")
}
