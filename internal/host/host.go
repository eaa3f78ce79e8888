package host

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"sheet-arcade/internal/core"
)

// ErrUnknownCommand is returned by Perform for unregistered command names.
var ErrUnknownCommand = errors.New("unknown command")

const maxMessages = 32

// Command describes a registered named action.
type Command struct {
	Name        string
	Description string
}

// Binding describes a registered key action.
type Binding struct {
	Key         string
	Description string
}

type command struct {
	Command
	action core.Action
}

type binding struct {
	Binding
	owner  string
	action core.Action
}

// Host schedules ticks and dispatches commands and key presses to the
// installed features. Every entry point takes the same mutex, so ticks and
// input never interleave.
type Host struct {
	mu  sync.Mutex
	log *slog.Logger

	ticks    []core.Tick
	commands map[string]command
	keys     map[string][]binding
	keyOrder []string
	status   []core.StatusProvider
	messages []string

	// installing names the feature whose Register call is in progress.
	installing string
}

// New returns an empty Host.
func New(log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	return &Host{
		log:      log,
		commands: map[string]command{},
		keys:     map[string][]binding{},
	}
}

// Install registers a feature with the host.
func (h *Host) Install(f core.Feature) {
	h.mu.Lock()
	h.installing = f.Name()
	if sp, ok := f.(core.StatusProvider); ok {
		h.status = append(h.status, sp)
	}
	h.mu.Unlock()

	f.Register(h)

	h.mu.Lock()
	h.installing = ""
	h.mu.Unlock()
	h.log.Debug("installed feature", "feature", f.Name())
}

// OnTick implements core.UI.
func (h *Host) OnTick(t core.Tick) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ticks = append(h.ticks, t)
}

// AddFeature implements core.UI. A later registration under the same name
// replaces the earlier one.
func (h *Host) AddFeature(name, description string, action core.Action) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands[name] = command{Command: Command{Name: name, Description: description}, action: action}
}

// OnKey implements core.UI. Several features may bind the same key; all of
// them run in registration order.
func (h *Host) OnKey(key, description string, action core.Action) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.keys[key]; !ok {
		h.keyOrder = append(h.keyOrder, key)
	}
	h.keys[key] = append(h.keys[key], binding{
		Binding: Binding{Key: key, Description: description},
		owner:   h.installing,
		action:  action,
	})
}

// Tick runs every registered tick once and reports whether any of them
// changed the grid.
func (h *Host) Tick() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := inbox{h}
	changed := false
	for i, t := range h.ticks {
		c, err := t.OnTick(p)
		if err != nil {
			return changed, fmt.Errorf("tick handler %d: %w", i, err)
		}
		changed = changed || c
	}
	return changed, nil
}

// Perform runs the named command.
func (h *Host) Perform(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	cmd, ok := h.commands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	h.log.Debug("perform", "command", name)
	if err := cmd.action(inbox{h}); err != nil {
		return fmt.Errorf("command %s: %w", name, err)
	}
	return nil
}

// Press runs every action bound to key. Unbound keys are ignored and
// reported as not handled.
func (h *Host) Press(key string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	bs, ok := h.keys[key]
	if !ok {
		return false, nil
	}
	for _, b := range bs {
		if err := b.action(inbox{h}); err != nil {
			return true, fmt.Errorf("key %s (%s %s): %w", key, b.owner, b.Description, err)
		}
	}
	return true, nil
}

// Commands lists the registered commands sorted by name.
func (h *Host) Commands() []Command {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Command, 0, len(h.commands))
	for _, c := range h.commands {
		out = append(out, c.Command)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Keys lists every key binding in registration order.
func (h *Host) Keys() []Binding {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []Binding
	for _, k := range h.keyOrder {
		for _, b := range h.keys[k] {
			out = append(out, b.Binding)
		}
	}
	return out
}

// Message posts a notification from outside a tick or action.
func (h *Host) Message(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.post(msg)
}

// Messages returns the retained notifications, oldest first.
func (h *Host) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.messages...)
}

// LastMessage returns the most recent notification, or "".
func (h *Host) LastMessage() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.messages) == 0 {
		return ""
	}
	return h.messages[len(h.messages)-1]
}

// Statuses collects a snapshot from every installed status provider.
func (h *Host) Statuses() []core.StatusSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]core.StatusSnapshot, 0, len(h.status))
	for _, sp := range h.status {
		out = append(out, sp.Status())
	}
	return out
}

func (h *Host) post(msg string) {
	h.log.Info("message", "text", msg)
	h.messages = append(h.messages, msg)
	if len(h.messages) > maxMessages {
		h.messages = h.messages[len(h.messages)-maxMessages:]
	}
}

// inbox is the Prompt handed to features while the host lock is held.
type inbox struct{ h *Host }

func (i inbox) Message(msg string) { i.h.post(msg) }
