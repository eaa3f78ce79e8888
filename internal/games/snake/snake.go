package snake

import (
	"errors"
	"log/slog"

	"sheet-arcade/internal/core"
	"sheet-arcade/internal/games/random"
)

const (
	// Body marks a cell occupied by the snake.
	Body = "1"
	// Food marks the food cell.
	Food = "2"
)

// Direction is a unit step in grid coordinates.
type Direction struct {
	DRow, DCol int
}

var (
	Up    = Direction{DRow: -1}
	Down  = Direction{DRow: 1}
	Left  = Direction{DCol: -1}
	Right = Direction{DCol: 1}
)

// Snake is a classic snake game rendered into the sheet. The body is an
// ordered slice with the head first; membership tests are linear scans, so
// each tick costs O(length).
type Snake struct {
	grid   core.GridView
	picker random.CellPicker
	cfg    Config
	log    *slog.Logger

	state   core.RunState
	body    []core.Location
	dir     Direction
	food    core.Location
	hasFood bool
}

// New returns a snake game bound to grid.
func New(grid core.GridView, picker random.CellPicker, cfg Config, log *slog.Logger) *Snake {
	if log == nil {
		log = slog.Default()
	}
	return &Snake{grid: grid, picker: picker, cfg: cfg, log: log.With("game", "snake")}
}

// Name returns the game identifier.
func (s *Snake) Name() string { return "snake" }

// Register binds the tick, the start command and the movement keys.
func (s *Snake) Register(ui core.UI) {
	ui.OnTick(s)
	ui.AddFeature("snake-start", "Start Snake Game", s.Start)
	ui.OnKey("w", "Move Up", s.turn(Up))
	ui.OnKey("a", "Move Left", s.turn(Left))
	ui.OnKey("s", "Move Down", s.turn(Down))
	ui.OnKey("d", "Move Right", s.turn(Right))
}

func (s *Snake) turn(d Direction) core.Action {
	return func(core.Prompt) error {
		s.Turn(d)
		return nil
	}
}

// Turn sets the direction used by the next move. Reversing into the body is
// allowed and ends the game on the next tick.
func (s *Snake) Turn(d Direction) {
	if s.state != core.Running {
		return
	}
	s.dir = d
}

// Start clears the sheet and begins a new game from the configured origin.
func (s *Snake) Start(p core.Prompt) error {
	if err := core.ClearAll(s.grid); err != nil {
		return err
	}
	s.body = []core.Location{s.cfg.Origin}
	s.dir = Down
	s.hasFood = false
	if !s.grid.Contains(s.cfg.Origin) {
		s.gameOver(p, "origin outside grid")
		return nil
	}
	s.state = core.Running

	food, err := s.picker.PickFreeCellExcluding(s.cfg.Origin)
	switch {
	case errors.Is(err, random.ErrNoFreeCell):
	case err != nil:
		return err
	default:
		s.food, s.hasFood = food, true
	}
	s.log.Debug("started", "origin", s.cfg.Origin, "food", s.food, "has_food", s.hasFood)
	return s.render()
}

// State returns the run state.
func (s *Snake) State() core.RunState { return s.state }

// Body returns a copy of the body cells, head first.
func (s *Snake) Body() []core.Location {
	return append([]core.Location(nil), s.body...)
}

// Food returns the food location and whether food is present.
func (s *Snake) Food() (core.Location, bool) { return s.food, s.hasFood }

// OnTick moves the snake one cell while running.
func (s *Snake) OnTick(p core.Prompt) (bool, error) {
	if s.state != core.Running {
		return false, nil
	}
	grew, err := s.move()
	if err != nil {
		return false, err
	}
	collided := s.selfCollision() || s.wallCollision()
	if !collided && !grew && !s.hasFood {
		if err := s.placeFood(); err != nil {
			return false, err
		}
	}
	if err := s.render(); err != nil {
		return false, err
	}
	if collided {
		s.gameOver(p, "collision")
	}
	return true, nil
}

func (s *Snake) move() (bool, error) {
	newHead := s.body[0].Add(s.dir.DRow, s.dir.DCol)

	if s.hasFood && newHead == s.food {
		s.body = append([]core.Location{s.food}, s.body...)
		next, err := s.picker.PickFreeCell()
		switch {
		case errors.Is(err, random.ErrNoFreeCell):
			s.hasFood = false
		case err != nil:
			return true, err
		case s.onBody(next, 0):
			// Skip one food cycle rather than retrying.
			s.hasFood = false
		default:
			s.food = next
		}
		return true, nil
	}

	tail := s.body[len(s.body)-1]
	if s.grid.Contains(tail) {
		if err := core.Write(s.grid, tail, ""); err != nil {
			return false, err
		}
	}
	s.body = append([]core.Location{newHead}, s.body[:len(s.body)-1]...)
	return false, nil
}

func (s *Snake) placeFood() error {
	next, err := s.picker.PickFreeCell()
	switch {
	case errors.Is(err, random.ErrNoFreeCell):
		return nil
	case err != nil:
		return err
	}
	if !s.onBody(next, 0) {
		s.food, s.hasFood = next, true
	}
	return nil
}

func (s *Snake) render() error {
	for _, cell := range s.body {
		if !s.grid.Contains(cell) {
			continue
		}
		if err := core.Write(s.grid, cell, Body); err != nil {
			return err
		}
	}
	if s.hasFood {
		return core.Write(s.grid, s.food, Food)
	}
	return nil
}

// onBody reports whether loc is one of the body cells from index from on.
func (s *Snake) onBody(loc core.Location, from int) bool {
	for _, cell := range s.body[from:] {
		if cell == loc {
			return true
		}
	}
	return false
}

func (s *Snake) selfCollision() bool {
	return s.onBody(s.body[0], 1)
}

func (s *Snake) wallCollision() bool {
	return !s.grid.Contains(s.body[0])
}

func (s *Snake) gameOver(p core.Prompt, reason string) {
	s.state = core.GameOver
	s.log.Debug("game over", "reason", reason, "length", len(s.body))
	p.Message("Game Over!")
}

// Status reports the run state and body length.
func (s *Snake) Status() core.StatusSnapshot {
	return core.StatusSnapshot{
		Name:  s.Name(),
		State: s.state,
		Stats: []core.Stat{core.IntStat("length", "len", len(s.body))},
	}
}

func init() {
	core.Register("snake", func(env core.Env, cfg map[string]string) core.Feature {
		return New(env.Sheet, random.New(env.Sheet, env.RNG), FromMap(cfg), env.Logger())
	})
}
