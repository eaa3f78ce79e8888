package life

import (
	"log/slog"

	"sheet-arcade/internal/core"
)

// Alive is the cell content marking a living cell.
const Alive = "1"

// Life runs Conway's Game of Life over the whole sheet. Cells outside the
// sheet count as dead; there is no wrapping.
type Life struct {
	grid  core.GridView
	log   *slog.Logger
	state core.RunState

	cur []bool
	gen int
}

// New returns a Life game bound to grid.
func New(grid core.GridView, log *slog.Logger) *Life {
	if log == nil {
		log = slog.Default()
	}
	return &Life{grid: grid, log: log.With("game", "life")}
}

// Name returns the game identifier.
func (l *Life) Name() string { return "life" }

// Register binds the tick and the start/stop commands.
func (l *Life) Register(ui core.UI) {
	ui.OnTick(l)
	ui.AddFeature("gol-start", "Start Game of Life", func(core.Prompt) error {
		l.Start()
		return nil
	})
	ui.AddFeature("gol-end", "Stop Game of Life", func(core.Prompt) error {
		l.Stop()
		return nil
	})
}

// Start resumes stepping on the next tick.
func (l *Life) Start() {
	l.state = core.Running
	l.log.Debug("started")
}

// Stop pauses stepping. An in-progress tick is not interrupted.
func (l *Life) Stop() {
	l.state = core.Idle
	l.log.Debug("stopped", "generations", l.gen)
}

// State returns the run state.
func (l *Life) State() core.RunState { return l.state }

// OnTick advances one generation while running.
func (l *Life) OnTick(core.Prompt) (bool, error) {
	if l.state != core.Running {
		return false, nil
	}
	if err := l.Step(); err != nil {
		return false, err
	}
	return true, nil
}

// Step computes the next generation from a snapshot of the current one and
// writes every cell back.
func (l *Life) Step() error {
	rows, cols := l.grid.Rows(), l.grid.Columns()
	if len(l.cur) != rows*cols {
		l.cur = make([]bool, rows*cols)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			l.cur[y*cols+x] = l.grid.ContentAt(core.Location{Row: y, Col: x}) == Alive
		}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= rows {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= cols || (dx == 0 && dy == 0) {
						continue
					}
					if l.cur[ny*cols+nx] {
						neighbors++
					}
				}
			}
			alive := l.cur[y*cols+x]
			next := ""
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				next = Alive
			}
			if err := core.Write(l.grid, core.Location{Row: y, Col: x}, next); err != nil {
				return err
			}
		}
	}
	l.gen++
	return nil
}

// Status reports the run state and generation count.
func (l *Life) Status() core.StatusSnapshot {
	return core.StatusSnapshot{
		Name:  l.Name(),
		State: l.state,
		Stats: []core.Stat{core.IntStat("generation", "gen", l.gen)},
	}
}

func init() {
	core.Register("life", func(env core.Env, _ map[string]string) core.Feature {
		return New(env.Sheet, env.Logger())
	})
}
