package snake

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sheet-arcade/internal/core"
	"sheet-arcade/internal/games/random"
)

type recordPrompt struct {
	messages []string
}

func (p *recordPrompt) Message(msg string) { p.messages = append(p.messages, msg) }

// scriptedPicker hands out a fixed sequence of cells, then reports a full grid.
type scriptedPicker struct {
	cells []core.Location
}

func (p *scriptedPicker) PickFreeCell() (core.Location, error) {
	if len(p.cells) == 0 {
		return core.Location{}, random.ErrNoFreeCell
	}
	next := p.cells[0]
	p.cells = p.cells[1:]
	return next, nil
}

func (p *scriptedPicker) PickFreeCellExcluding(core.Location) (core.Location, error) {
	return p.PickFreeCell()
}

func loc(r, c int) core.Location { return core.Location{Row: r, Col: c} }

func startGame(t *testing.T, rows, cols int, picks ...core.Location) (*Snake, *core.Sheet, *recordPrompt) {
	t.Helper()
	sheet := core.NewSheet(rows, cols)
	p := &recordPrompt{}
	s := New(sheet, &scriptedPicker{cells: picks}, DefaultConfig(), nil)
	if err := s.Start(p); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s, sheet, p
}

func tick(t *testing.T, s *Snake, p core.Prompt) bool {
	t.Helper()
	changed, err := s.OnTick(p)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	return changed
}

func TestStartClearsAndRenders(t *testing.T) {
	sheet := core.NewSheet(6, 6)
	if err := sheet.Update(loc(5, 0), "9"); err != nil {
		t.Fatal(err)
	}
	s := New(sheet, &scriptedPicker{cells: []core.Location{loc(4, 4)}}, DefaultConfig(), nil)
	if err := s.Start(&recordPrompt{}); err != nil {
		t.Fatalf("start: %v", err)
	}

	if s.State() != core.Running {
		t.Fatalf("state = %v", s.State())
	}
	if got := sheet.ContentAt(loc(1, 1)); got != Body {
		t.Fatalf("origin = %q, expected body", got)
	}
	if got := sheet.ContentAt(loc(4, 4)); got != Food {
		t.Fatalf("food cell = %q", got)
	}
	if got := sheet.ContentAt(loc(5, 0)); got != "" {
		t.Fatalf("start must clear the sheet, found %q", got)
	}
}

func TestMoveTranslates(t *testing.T) {
	s, sheet, p := startGame(t, 6, 6, loc(5, 5))

	if !tick(t, s, p) {
		t.Fatal("running tick should report a change")
	}
	if diff := cmp.Diff([]core.Location{loc(2, 1)}, s.Body()); diff != "" {
		t.Fatalf("body (-want +got):\n%s", diff)
	}
	if got := sheet.ContentAt(loc(1, 1)); got != "" {
		t.Fatalf("old tail should be cleared, got %q", got)
	}
	if got := sheet.ContentAt(loc(2, 1)); got != Body {
		t.Fatalf("head not rendered, got %q", got)
	}
}

func TestEatingGrowsByOne(t *testing.T) {
	s, sheet, p := startGame(t, 6, 6, loc(2, 1), loc(5, 5))

	tick(t, s, p)

	body := s.Body()
	if diff := cmp.Diff([]core.Location{loc(2, 1), loc(1, 1)}, body); diff != "" {
		t.Fatalf("body (-want +got):\n%s", diff)
	}
	if body[0] == body[1] {
		t.Fatal("body cells must be distinct after growth")
	}
	food, ok := s.Food()
	if !ok || food != loc(5, 5) {
		t.Fatalf("food = %v, %v", food, ok)
	}
	for _, c := range body {
		if got := sheet.ContentAt(c); got != Body {
			t.Fatalf("body cell %v = %q", c, got)
		}
	}
	if got := sheet.ContentAt(loc(5, 5)); got != Food {
		t.Fatalf("new food not rendered, got %q", got)
	}
}

func TestFoodOnBodySkipsOneCycle(t *testing.T) {
	s, sheet, p := startGame(t, 6, 6, loc(2, 1), loc(1, 1), loc(0, 5))

	tick(t, s, p)
	if _, ok := s.Food(); ok {
		t.Fatal("food picked on the body should be dropped")
	}

	tick(t, s, p)
	food, ok := s.Food()
	if !ok || food != loc(0, 5) {
		t.Fatalf("food should be placed on the next cycle, got %v, %v", food, ok)
	}
	if got := sheet.ContentAt(loc(0, 5)); got != Food {
		t.Fatalf("food not rendered, got %q", got)
	}
}

func TestNoRoomLeavesFoodAbsent(t *testing.T) {
	s, _, p := startGame(t, 6, 6, loc(2, 1))
	tick(t, s, p)
	if _, ok := s.Food(); ok {
		t.Fatal("no free cell should leave food absent")
	}
	tick(t, s, p)
	if s.State() != core.Running {
		t.Fatalf("state = %v", s.State())
	}
	if len(s.Body()) != 2 {
		t.Fatalf("length = %d", len(s.Body()))
	}
}

func TestReversalSelfCollision(t *testing.T) {
	s, sheet, p := startGame(t, 8, 8, loc(2, 1), loc(3, 1), loc(7, 7))
	tick(t, s, p)
	tick(t, s, p)
	if len(s.Body()) != 3 {
		t.Fatalf("length = %d, expected 3", len(s.Body()))
	}

	s.Turn(Up)
	if !tick(t, s, p) {
		t.Fatal("collision tick still renders")
	}
	if s.State() != core.GameOver {
		t.Fatalf("state = %v, expected game over", s.State())
	}
	if diff := cmp.Diff([]string{"Game Over!"}, p.messages); diff != "" {
		t.Fatalf("messages (-want +got):\n%s", diff)
	}

	before := sheet.Codes()
	for i := 0; i < 3; i++ {
		if tick(t, s, p) {
			t.Fatal("ticks after game over must report no change")
		}
	}
	if diff := cmp.Diff(before, sheet.Codes()); diff != "" {
		t.Fatalf("grid mutated after game over (-before +after):\n%s", diff)
	}
	s.Turn(Right)
	if diff := cmp.Diff([]core.Location{loc(2, 1), loc(3, 1), loc(2, 1)}, s.Body()); diff != "" {
		t.Fatalf("body changed after game over (-want +got):\n%s", diff)
	}
}

func TestWallCollisionBottom(t *testing.T) {
	s, _, p := startGame(t, 4, 4)
	tick(t, s, p)
	tick(t, s, p)
	if s.State() != core.Running {
		t.Fatalf("bottom row is inside the grid, state = %v", s.State())
	}
	tick(t, s, p)
	if s.State() != core.GameOver {
		t.Fatalf("leaving the bottom edge should end the game, state = %v", s.State())
	}
}

func TestWallCollisionRightIsSymmetric(t *testing.T) {
	s, sheet, p := startGame(t, 3, 4)
	s.Turn(Right)
	tick(t, s, p)
	tick(t, s, p)
	if s.State() != core.Running {
		t.Fatalf("rightmost column is inside the grid, state = %v", s.State())
	}
	if got := sheet.ContentAt(loc(1, 3)); got != Body {
		t.Fatalf("head in last column not rendered, got %q", got)
	}
	tick(t, s, p)
	if s.State() != core.GameOver {
		t.Fatalf("leaving the right edge should end the game, state = %v", s.State())
	}
}

func TestWallCollisionLeft(t *testing.T) {
	s, _, p := startGame(t, 4, 4)
	s.Turn(Left)
	tick(t, s, p)
	tick(t, s, p)
	if s.State() != core.GameOver {
		t.Fatalf("state = %v", s.State())
	}
	if len(p.messages) != 1 {
		t.Fatalf("messages = %v", p.messages)
	}
}

func TestTurnIgnoredWhenIdle(t *testing.T) {
	s := New(core.NewSheet(4, 4), &scriptedPicker{}, DefaultConfig(), nil)
	s.Turn(Left)
	if changed, err := s.OnTick(&recordPrompt{}); changed || err != nil {
		t.Fatalf("idle tick: changed=%v err=%v", changed, err)
	}
	if s.dir != (Direction{}) {
		t.Fatalf("direction changed while idle: %v", s.dir)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	s, sheet, p := startGame(t, 4, 4)
	s.Turn(Up)
	tick(t, s, p)
	tick(t, s, p)
	if s.State() != core.GameOver {
		t.Fatalf("state = %v", s.State())
	}

	s.picker = &scriptedPicker{cells: []core.Location{loc(3, 3)}}
	if err := s.Start(p); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.State() != core.Running {
		t.Fatalf("state = %v", s.State())
	}
	if diff := cmp.Diff([]core.Location{loc(1, 1)}, s.Body()); diff != "" {
		t.Fatalf("body (-want +got):\n%s", diff)
	}
	if got := sheet.ContentAt(loc(0, 1)); got != "" {
		t.Fatalf("previous game not cleared, got %q", got)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"origin_row": "3", "origin_col": "-1"})
	if c.Origin != loc(3, 1) {
		t.Fatalf("origin = %v", c.Origin)
	}
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Games()["snake"]
	if !ok {
		t.Fatal("snake not registered")
	}
	sheet := core.NewSheet(5, 5)
	f := factory(core.Env{Sheet: sheet, RNG: core.NewRNG(1)}, nil)
	s, ok := f.(*Snake)
	if !ok {
		t.Fatalf("factory returned %T", f)
	}
	if err := s.Start(&recordPrompt{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	food, ok := s.Food()
	if !ok || food == loc(1, 1) {
		t.Fatalf("food = %v, %v", food, ok)
	}
}
