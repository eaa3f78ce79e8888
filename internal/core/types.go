package core

import (
	"log/slog"
	"sort"
)

// RunState is the lifecycle of a single game.
type RunState uint8

const (
	Idle RunState = iota
	Running
	GameOver
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Prompt delivers user-visible notifications. Messages are fire-and-forget.
type Prompt interface {
	Message(msg string)
}

// Tick is invoked once per scheduler tick. It reports whether the grid
// changed and must be re-rendered.
type Tick interface {
	OnTick(p Prompt) (bool, error)
}

// TickFunc adapts a function to the Tick interface.
type TickFunc func(p Prompt) (bool, error)

// OnTick calls f.
func (f TickFunc) OnTick(p Prompt) (bool, error) { return f(p) }

// Action is a zero-argument command or key handler.
type Action func(p Prompt) error

// UI is the host side of feature registration.
type UI interface {
	OnTick(t Tick)
	AddFeature(name, description string, action Action)
	OnKey(key, description string, action Action)
}

// Feature is anything that registers ticks, commands or keys with a host.
type Feature interface {
	Name() string
	Register(ui UI)
}

// Env carries the collaborators a game factory needs.
type Env struct {
	Sheet GridView
	RNG   *RNG
	Log   *slog.Logger
}

// Logger returns the env logger or the default one.
func (e Env) Logger() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}

// Factory constructs a game using an optional configuration map.
type Factory func(env Env, cfg map[string]string) Feature

var games = map[string]Factory{}

// Register adds a game factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	games[name] = f
}

// Games exposes the registry of available game factories.
func Games() map[string]Factory {
	return games
}

// GameNames returns the registered names in sorted order.
func GameNames() []string {
	names := make([]string, 0, len(games))
	for name := range games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
