package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerminal(t *testing.T, mode ColorMode) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term, err := Open(sim, mode)
	require.NoError(t, err)
	sim.SetSize(20, 10)
	t.Cleanup(term.Fini)
	return term, sim
}

func TestRGBTo256(t *testing.T) {
	assert.Equal(t, uint8(16), RGBTo256(RGB{0, 0, 0}))
	assert.Equal(t, uint8(231), RGBTo256(RGB{255, 255, 255}))
	assert.Equal(t, uint8(196), RGBTo256(RGB{255, 0, 0}))
	assert.Equal(t, uint8(244), RGBTo256(RGB{128, 128, 128}))
	assert.Equal(t, uint8(16+36*1+6*3+5), RGBTo256(RGB{95, 175, 255}))
}

func TestParseColorMode(t *testing.T) {
	m, err := ParseColorMode("truecolor")
	require.NoError(t, err)
	assert.Equal(t, ColorModeTrueColor, m)

	m, err = ParseColorMode(" 256 ")
	require.NoError(t, err)
	assert.Equal(t, ColorMode256, m)

	_, err = ParseColorMode("auto")
	assert.NoError(t, err)

	_, err = ParseColorMode("cga")
	assert.Error(t, err)

	assert.Equal(t, "truecolor", ColorModeTrueColor.String())
	assert.Equal(t, "256", ColorMode256.String())
}

func TestTerminalSetCell(t *testing.T) {
	term, _ := newSimTerminal(t, ColorModeTrueColor)

	cols, rows := term.Size()
	assert.Equal(t, 20, cols)
	assert.Equal(t, 10, rows)

	term.SetCell(2, 3, '▀', RGB{10, 20, 30}, RGB{40, 50, 60})
	term.Show()

	mainc, _, style, _ := term.screen.GetContent(2, 3)
	assert.Equal(t, '▀', mainc)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(10, 20, 30), fg)
	assert.Equal(t, tcell.NewRGBColor(40, 50, 60), bg)

	term.Fini()
	term.Fini()
}

func TestTerminalPaletteMode(t *testing.T) {
	term, _ := newSimTerminal(t, ColorMode256)
	assert.Equal(t, ColorMode256, term.ColorMode())

	term.SetCell(0, 0, 'x', RGB{255, 0, 0}, RGB{0, 0, 0})
	_, _, style, _ := term.screen.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.PaletteColor(196), fg)
	assert.Equal(t, tcell.PaletteColor(16), bg)
}

func TestTranslate(t *testing.T) {
	ev, ok := Translate(tcell.NewEventResize(80, 24))
	require.True(t, ok)
	assert.Equal(t, Event{Kind: EventResize, X: 80, Y: 24}, ev)

	ev, ok = Translate(tcell.NewEventMouse(5, 7, tcell.ButtonNone, tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, Event{Kind: EventPointerMove, X: 5, Y: 7}, ev)

	ev, ok = Translate(tcell.NewEventFocus(false))
	require.True(t, ok)
	assert.Equal(t, EventPointerLeave, ev.Kind)

	_, ok = Translate(tcell.NewEventFocus(true))
	assert.False(t, ok)

	ev, ok = Translate(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, EventKey, ev.Kind)
	assert.Equal(t, 'h', ev.Rune)

	_, ok = Translate(tcell.NewEventInterrupt(nil))
	assert.False(t, ok)
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()

	var got []string
	removeA := d.On(EventKey, func(Event) { got = append(got, "a") })
	d.On(EventKey, func(Event) { got = append(got, "b") })
	d.On(EventResize, func(Event) { got = append(got, "resize") })

	d.Dispatch(Event{Kind: EventKey})
	assert.Equal(t, []string{"a", "b"}, got)

	removeA()
	removeA()
	assert.Equal(t, 1, d.Len(EventKey))

	got = nil
	d.Dispatch(Event{Kind: EventKey})
	d.Dispatch(Event{Kind: EventPointerLeave})
	assert.Equal(t, []string{"b"}, got)
}

type chanPoster chan func()

func (c chanPoster) Post(task func()) { c <- task }

func TestPumpPostsTranslatedEvents(t *testing.T) {
	term, _ := newSimTerminal(t, ColorModeTrueColor)
	d := NewDispatcher()

	moves := make(chan Event, 4)
	d.On(EventPointerMove, func(ev Event) { moves <- ev })

	poster := make(chanPoster, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Pump(ctx, term, poster, d)
		close(done)
	}()

	require.NoError(t, term.PostEvent(tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone)))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case task := <-poster:
			task()
		case ev := <-moves:
			assert.Equal(t, 3, ev.X)
			assert.Equal(t, 4, ev.Y)
			cancel()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("pump did not stop")
			}
			return
		case <-deadline:
			t.Fatal("no pointer event dispatched")
		}
	}
}

func TestDetectColorMode(t *testing.T) {
	for _, name := range trueColorHints {
		t.Setenv(name, "")
	}
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm-256color")
	assert.Equal(t, ColorMode256, DetectColorMode())

	t.Setenv("TERM", "xterm-direct")
	assert.Equal(t, ColorModeTrueColor, DetectColorMode())

	t.Setenv("TERM", "screen")
	t.Setenv("COLORTERM", "24bit")
	assert.Equal(t, ColorModeTrueColor, DetectColorMode())

	t.Setenv("COLORTERM", "")
	t.Setenv("WEZTERM_PANE", "3")
	assert.Equal(t, ColorModeTrueColor, DetectColorMode())
}
