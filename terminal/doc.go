// Package terminal hosts the rain field on a tcell screen.
//
// Cells are encoded in true color or the xterm-256 palette, mouse motion and
// focus reporting stand in for pointer move and pointer leave, and a pump
// moves every input event onto the frame loop goroutine so consumers never
// share state with the poller.
package terminal
