package terminal

import (
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// EventKind classifies translated terminal events
type EventKind uint8

const (
	EventResize EventKind = iota
	EventPointerMove
	EventPointerLeave
	EventKey
)

// Event is a host-neutral input event
// Resize carries the new size in X/Y (cols, rows); pointer events carry the cell under the mouse
type Event struct {
	Kind EventKind
	X, Y int
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Translate converts a tcell event; ok is false for events the scene ignores
func Translate(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Kind: EventResize, X: w, Y: h}, true
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{Kind: EventPointerMove, X: x, Y: y}, true
	case *tcell.EventFocus:
		if e.Focused {
			return Event{}, false
		}
		return Event{Kind: EventPointerLeave}, true
	case *tcell.EventKey:
		return Event{Kind: EventKey, Key: e.Key(), Rune: e.Rune(), Mod: e.Modifiers()}, true
	default:
		return Event{}, false
	}
}

type handler struct {
	id uint64
	fn func(Event)
}

// Dispatcher fans events out to handlers registered per kind
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[EventKind][]handler
	nextID   uint64
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventKind][]handler)}
}

// On registers fn for kind and returns its removal; removal is idempotent
func (d *Dispatcher) On(kind EventKind, fn func(Event)) (remove func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.handlers[kind] = append(d.handlers[kind], handler{id: id, fn: fn})
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.handlers[kind] = slices.DeleteFunc(d.handlers[kind], func(h handler) bool { return h.id == id })
	}
}

// Len returns the number of handlers registered for kind
func (d *Dispatcher) Len(kind EventKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[kind])
}

// Dispatch calls every handler for ev.Kind in registration order
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.Lock()
	hs := slices.Clone(d.handlers[ev.Kind])
	d.mu.Unlock()

	for _, h := range hs {
		h.fn(ev)
	}
}
