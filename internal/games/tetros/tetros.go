package tetros

import (
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"sheet-arcade/internal/core"
	"sheet-arcade/internal/games/random"
)

// Tetros is a falling-block puzzle played inside the sheet. Settled blocks
// are ordinary non-empty cells; only the falling piece is tracked.
type Tetros struct {
	grid   core.GridView
	picker random.ShapePicker
	cfg    Config
	log    *slog.Logger

	state core.RunState
	shape Shape
	cells []core.Location

	pieces int
	lines  int
}

// New returns a Tetros game bound to grid.
func New(grid core.GridView, picker random.ShapePicker, cfg Config, log *slog.Logger) *Tetros {
	if log == nil {
		log = slog.Default()
	}
	return &Tetros{grid: grid, picker: picker, cfg: cfg, log: log.With("game", "tetros")}
}

// Name returns the game identifier.
func (t *Tetros) Name() string { return "tetros" }

// Register binds the tick, the start command and the piece controls.
func (t *Tetros) Register(ui core.UI) {
	ui.OnTick(t)
	ui.AddFeature("tetros", "Start Tetros", t.Start)
	ui.OnKey("a", "Move Left", t.whileRunning(func() error { return t.Shift(-1) }))
	ui.OnKey("d", "Move Right", t.whileRunning(func() error { return t.Shift(1) }))
	ui.OnKey("q", "Rotate Left", t.whileRunning(func() error { return t.Rotate(-1) }))
	ui.OnKey("e", "Rotate Right", t.whileRunning(func() error { return t.Rotate(1) }))
	ui.OnKey("s", "Drop", t.whileRunning(t.HardDrop))
}

func (t *Tetros) whileRunning(fn func() error) core.Action {
	return func(core.Prompt) error {
		if t.state != core.Running {
			return nil
		}
		return fn()
	}
}

// Start begins a game by spawning the first piece. The sheet is not cleared.
func (t *Tetros) Start(p core.Prompt) error {
	t.state = core.Running
	t.pieces, t.lines = 0, 0
	t.log.Debug("started")
	blocked, err := t.spawn()
	if err != nil {
		return err
	}
	if blocked {
		t.gameOver(p)
	}
	return nil
}

// State returns the run state.
func (t *Tetros) State() core.RunState { return t.state }

// Piece returns a copy of the falling piece cells.
func (t *Tetros) Piece() []core.Location {
	return append([]core.Location(nil), t.cells...)
}

// OnTick drops the falling piece, spawns the next one when it lands and
// clears full rows.
func (t *Tetros) OnTick(p core.Prompt) (bool, error) {
	if t.state != core.Running {
		return false, nil
	}
	landed, err := t.DropTile()
	if err != nil {
		return false, err
	}
	if landed {
		blocked, err := t.spawn()
		if err != nil {
			return false, err
		}
		if blocked {
			t.gameOver(p)
		}
	}
	if err := t.clearLines(); err != nil {
		return false, err
	}
	return true, nil
}

// DropTile moves the falling piece one row down. It reports true when the
// piece could not move and has landed.
func (t *Tetros) DropTile() (bool, error) {
	if len(t.cells) == 0 {
		return true, nil
	}
	next := offset(t.cells, 1, 0)
	if err := t.unrender(); err != nil {
		return false, err
	}
	for _, loc := range next {
		if t.stopper(loc) {
			return true, t.render(t.cells)
		}
	}
	t.cells = next
	return false, t.render(t.cells)
}

// HardDrop drops the falling piece until it lands.
func (t *Tetros) HardDrop() error {
	for {
		landed, err := t.DropTile()
		if err != nil || landed {
			return err
		}
	}
}

// Shift moves the falling piece x columns sideways. Moves that would leave
// the grid are ignored.
func (t *Tetros) Shift(x int) error {
	return t.place(offset(t.cells, 0, x))
}

// Rotate turns the falling piece by reflecting each cell about the piece's
// integer centroid; direction is +1 or -1. Only bounds are checked, so a
// rotation may overlap settled blocks.
func (t *Tetros) Rotate(direction int) error {
	if len(t.cells) == 0 {
		return nil
	}
	var sumRow, sumCol int
	for _, c := range t.cells {
		sumRow += c.Row
		sumCol += c.Col
	}
	cr, cc := sumRow/len(t.cells), sumCol/len(t.cells)

	next := make([]core.Location, len(t.cells))
	for i, c := range t.cells {
		next[i] = core.Location{
			Row: cr + (cc-c.Col)*direction,
			Col: cc + (cr-c.Row)*direction,
		}
	}
	return t.place(next)
}

// place replaces the falling piece with next when every cell is in bounds.
func (t *Tetros) place(next []core.Location) error {
	if len(next) == 0 {
		return nil
	}
	for _, loc := range next {
		if !t.grid.Contains(loc) {
			return nil
		}
	}
	if err := t.unrender(); err != nil {
		return err
	}
	t.cells = next
	return t.render(t.cells)
}

// spawn places a new random piece at the top of the grid. It reports true
// when a spawn cell is out of bounds or already occupied.
func (t *Tetros) spawn() (bool, error) {
	t.shape = shapeAt(t.picker.PickShape())
	t.cells = make([]core.Location, 0, len(t.shape.Offsets))
	for _, off := range t.shape.Offsets {
		t.cells = append(t.cells, off.Add(0, t.cfg.SpawnCol))
	}
	for _, loc := range t.cells {
		if !t.grid.Contains(loc) || !core.IsEmpty(t.grid, loc) {
			t.cells = nil
			return true, nil
		}
	}
	t.pieces++
	t.log.Debug("spawned", "shape", t.shape.Name, "pieces", t.pieces)
	return false, t.render(t.cells)
}

// clearLines scans rows bottom to top and removes every full row. The same
// row index is examined again after a removal because content shifted in.
func (t *Tetros) clearLines() error {
	falling := mapset.New[core.Location]()
	for _, c := range t.cells {
		falling.Put(c)
	}
	for row := t.grid.Rows() - 1; row >= 0; row-- {
		if !t.full(row) {
			continue
		}
		changed, err := t.clearRow(row, falling)
		if err != nil {
			return err
		}
		if !changed {
			// Only falling cells keep this row full.
			continue
		}
		t.lines++
		row++
	}
	return nil
}

// clearRow shifts every row above row down by one and empties the top row.
// Cells of the falling piece are neither moved nor overwritten, and read as
// empty when they are the source of a shift.
func (t *Tetros) clearRow(row int, falling mapset.Set[core.Location]) (bool, error) {
	changed := false
	settled := func(loc core.Location) string {
		if falling.Has(loc) {
			return ""
		}
		return t.grid.ContentAt(loc)
	}
	write := func(loc core.Location, value string) error {
		if falling.Has(loc) || t.grid.ContentAt(loc) == value {
			return nil
		}
		changed = true
		return core.Write(t.grid, loc, value)
	}
	for r := row; r > 0; r-- {
		for col := 0; col < t.grid.Columns(); col++ {
			above := settled(core.Location{Row: r - 1, Col: col})
			if err := write(core.Location{Row: r, Col: col}, above); err != nil {
				return changed, err
			}
		}
	}
	for col := 0; col < t.grid.Columns(); col++ {
		if err := write(core.Location{Row: 0, Col: col}, ""); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func (t *Tetros) full(row int) bool {
	for col := 0; col < t.grid.Columns(); col++ {
		if core.IsEmpty(t.grid, core.Location{Row: row, Col: col}) {
			return false
		}
	}
	return true
}

// stopper reports whether loc blocks a falling piece: outside the grid or
// occupied by anything other than the (already unrendered) piece itself.
func (t *Tetros) stopper(loc core.Location) bool {
	return !t.grid.Contains(loc) || !core.IsEmpty(t.grid, loc)
}

func (t *Tetros) unrender() error {
	return core.Fill(t.grid, t.cells, "")
}

func (t *Tetros) render(cells []core.Location) error {
	return core.Fill(t.grid, cells, t.shape.Code)
}

func (t *Tetros) gameOver(p core.Prompt) {
	t.state = core.GameOver
	t.log.Debug("game over", "pieces", t.pieces, "lines", t.lines)
	p.Message("Game Over!")
}

// Status reports the run state, pieces spawned and rows cleared.
func (t *Tetros) Status() core.StatusSnapshot {
	return core.StatusSnapshot{
		Name:  t.Name(),
		State: t.state,
		Stats: []core.Stat{
			core.IntStat("pieces", "pieces", t.pieces),
			core.IntStat("lines", "lines", t.lines),
		},
	}
}

func offset(cells []core.Location, dRow, dCol int) []core.Location {
	out := make([]core.Location, len(cells))
	for i, c := range cells {
		out[i] = c.Add(dRow, dCol)
	}
	return out
}

func init() {
	core.Register("tetros", func(env core.Env, cfg map[string]string) core.Feature {
		return New(env.Sheet, random.New(env.Sheet, env.RNG), FromMap(cfg), env.Logger())
	})
}
