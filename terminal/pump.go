package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Poster runs tasks on the frame loop goroutine
type Poster interface {
	Post(task func())
}

// Pump reads screen events until ctx is done or the screen is finalized,
// posting each translated event onto loop for dispatch
func Pump(ctx context.Context, s Screen, loop Poster, d *Dispatcher) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		te, ok := Translate(ev)
		if !ok {
			continue
		}
		loop.Post(func() { d.Dispatch(te) })
	}
}
