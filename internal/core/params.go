package core

import "strconv"

// Stat is a single labelled value a game exposes to front ends.
type Stat struct {
	Key   string
	Label string
	Value string
}

// StatusSnapshot captures the current status of one game.
type StatusSnapshot struct {
	Name  string
	State RunState
	Stats []Stat
}

// StatusProvider is implemented by games that report a status line.
type StatusProvider interface {
	Status() StatusSnapshot
}

// IntStat builds an integer-valued Stat.
func IntStat(key, label string, value int) Stat {
	return Stat{Key: key, Label: label, Value: strconv.Itoa(value)}
}

// String renders the snapshot as a compact one-line summary.
func (s StatusSnapshot) String() string {
	out := s.Name + ": " + s.State.String()
	for _, st := range s.Stats {
		out += " " + st.Label + "=" + st.Value
	}
	return out
}

// IntSetting parses an integer setting from a string map, returning def when
// the key is absent or malformed.
func IntSetting(cfg map[string]string, key string, def int, valid func(int) bool) int {
	if cfg == nil {
		return def
	}
	v, ok := cfg[key]
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if valid != nil && !valid(parsed) {
		return def
	}
	return parsed
}

// NonNegative reports whether v >= 0.
func NonNegative(v int) bool { return v >= 0 }

// Positive reports whether v > 0.
func Positive(v int) bool { return v > 0 }
