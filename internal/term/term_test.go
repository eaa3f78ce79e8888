package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"sheet-arcade/internal/core"
	_ "sheet-arcade/internal/games/snake"
	"sheet-arcade/internal/host"
	"sheet-arcade/internal/render"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen, *core.Sheet, *host.Host) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	sheet := core.NewSheet(6, 6)
	h := host.New(nil)
	factory, ok := core.Games()["snake"]
	require.True(t, ok)
	h.Install(factory(core.Env{Sheet: sheet, RNG: core.NewRNG(1)}, nil))
	return New(screen, h, sheet, 10, nil), screen, sheet, h
}

func readText(screen tcell.Screen, x, y, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, _, _, _ := screen.GetContent(x+i, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func typeRunes(t *testing.T, term *Terminal, s string) {
	t.Helper()
	for _, r := range s {
		quit, err := term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		require.NoError(t, err)
		require.False(t, quit)
	}
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func TestDrawPaintsCellsTwoColumnsWide(t *testing.T) {
	term, screen, sheet, _ := newTestTerminal(t)
	require.NoError(t, sheet.Update(core.Location{Row: 0, Col: 1}, "2"))
	term.Draw()

	want := render.Palette[2]
	for _, x := range []int{2, 3} {
		_, _, style, _ := screen.GetContent(x, 0)
		_, bg, _ := style.Decompose()
		require.Equal(t, tcell.NewRGBColor(int32(want.R), int32(want.G), int32(want.B)), bg, "column %d", x)
	}
	_, _, style, _ := screen.GetContent(0, 0)
	_, bg, _ := style.Decompose()
	empty := render.Palette[0]
	require.Equal(t, tcell.NewRGBColor(int32(empty.R), int32(empty.G), int32(empty.B)), bg)

	require.Equal(t, "Commands (:name)", readText(screen, 14, 0, 16))
	require.True(t, strings.HasPrefix(readText(screen, 14, 1, 30), "snake-start"))
}

func TestCommandModePerformsCommand(t *testing.T) {
	term, screen, sheet, h := newTestTerminal(t)

	typeRunes(t, term, ":snake-start")
	require.True(t, term.cmdMode)
	quit, err := term.HandleEvent(key(tcell.KeyEnter))
	require.NoError(t, err)
	require.False(t, quit)
	require.False(t, term.cmdMode)

	require.Equal(t, core.Running, h.Statuses()[0].State)
	require.Equal(t, "1", sheet.ContentAt(core.Location{Row: 1, Col: 1}))

	term.Draw()
	require.True(t, strings.HasPrefix(readText(screen, 0, 6, 40), "snake"), readText(screen, 0, 6, 40))
}

func TestUnknownCommandPostsMessage(t *testing.T) {
	term, screen, _, h := newTestTerminal(t)

	typeRunes(t, term, ":nope")
	_, err := term.HandleEvent(key(tcell.KeyBackspace2))
	require.NoError(t, err)
	_, err = term.HandleEvent(key(tcell.KeyEnter))
	require.NoError(t, err)
	require.Equal(t, "Unknown command: nop", h.LastMessage())

	term.Draw()
	require.Equal(t, "Unknown command: nop", readText(screen, 0, 7, 40))
}

func TestEscapeAndCtrlC(t *testing.T) {
	term, _, _, _ := newTestTerminal(t)

	typeRunes(t, term, ":x")
	quit, err := term.HandleEvent(key(tcell.KeyEscape))
	require.NoError(t, err)
	require.False(t, quit, "escape leaves command mode first")
	require.False(t, term.cmdMode)

	quit, err = term.HandleEvent(key(tcell.KeyEscape))
	require.NoError(t, err)
	require.True(t, quit)

	quit, err = term.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	require.NoError(t, err)
	require.True(t, quit)
}

func TestAdvanceTicksHostAndArrowsTurn(t *testing.T) {
	term, _, sheet, h := newTestTerminal(t)
	require.NoError(t, h.Perform("snake-start"))

	now := time.Now()
	changed, err := term.Advance(now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "1", sheet.ContentAt(core.Location{Row: 2, Col: 1}))

	changed, err = term.Advance(now)
	require.NoError(t, err)
	require.False(t, changed, "no tick is due without elapsed time")

	_, err = term.HandleEvent(key(tcell.KeyRight))
	require.NoError(t, err)
	changed, err = term.Advance(now.Add(100 * time.Millisecond))
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "1", sheet.ContentAt(core.Location{Row: 2, Col: 2}))
}
