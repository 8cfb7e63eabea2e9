package terminal

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen is the cell surface the scene draws onto
type Screen interface {
	// Size returns the terminal size in cells
	Size() (cols, rows int)

	// SetCell writes one cell; out-of-range coordinates are ignored
	SetCell(x, y int, ch rune, fg, bg RGB)

	// Show flushes pending cells
	Show()

	// Clear blanks the whole screen
	Clear()

	// PixelSize returns the window size in pixels when the terminal reports it
	PixelSize() (width, height int, ok bool)

	// PollEvent blocks for the next event; nil after Fini
	PollEvent() tcell.Event

	// PostEvent injects an event, used to unblock PollEvent
	PostEvent(ev tcell.Event) error

	// Fini restores the terminal; safe to call more than once
	Fini()
}

// Terminal is the tcell-backed Screen
type Terminal struct {
	screen tcell.Screen
	mode   ColorMode
	fd     int

	finiOnce sync.Once
}

// New creates and initializes a tcell screen on the controlling terminal
func New(mode ColorMode) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return Open(s, mode)
}

// Open initializes s with mouse motion and focus reporting
func Open(s tcell.Screen, mode ColorMode) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	s.EnableFocus()
	s.HideCursor()
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()

	fd := int(os.Stdout.Fd())
	if _, ok := s.(tcell.SimulationScreen); ok {
		fd = -1
	}
	return &Terminal{
		screen: s,
		mode:   mode,
		fd:     fd,
	}, nil
}

// ColorMode returns the mode cells are encoded with
func (t *Terminal) ColorMode() ColorMode {
	return t.mode
}

func (t *Terminal) Size() (cols, rows int) {
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, ch rune, fg, bg RGB) {
	style := tcell.StyleDefault.
		Foreground(tcellColor(fg, t.mode)).
		Background(tcellColor(bg, t.mode))
	t.screen.SetContent(x, y, ch, nil, style)
}

func (t *Terminal) Show() {
	t.screen.Show()
}

func (t *Terminal) Clear() {
	t.screen.Clear()
}

func (t *Terminal) PixelSize() (width, height int, ok bool) {
	return pixelSize(t.fd)
}

func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

func (t *Terminal) PostEvent(ev tcell.Event) error {
	return t.screen.PostEvent(ev)
}

func (t *Terminal) Fini() {
	t.finiOnce.Do(func() {
		t.screen.DisableMouse()
		t.screen.DisableFocus()
		t.screen.Fini()
	})
}
