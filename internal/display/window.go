// Package display shows the rendered frames in an OpenCV window and maps
// key presses to app actions.
package display

import (
	"context"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handglow/internal/log"
)

// Action is what a key press asks for.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionClear
)

const (
	keyEsc       = 27
	pollInterval = 50 * time.Millisecond
)

// KeyAction maps a WaitKey result to an action: q or Esc quits, c clears.
func KeyAction(key int) Action {
	if key < 0 {
		return ActionNone
	}
	switch key & 0xFF {
	case 'q', 'Q', keyEsc:
		return ActionQuit
	case 'c', 'C':
		return ActionClear
	}
	return ActionNone
}

// Window displays frames handed to Sink from the pipeline goroutine.
// Run must be called on the main goroutine.
type Window struct {
	title string

	mu      sync.Mutex
	pending *gocv.Mat
	ready   chan struct{}
}

// New creates a Window with the given title. The OpenCV window is created
// by Run.
func New(title string) *Window {
	return &Window{
		title: title,
		ready: make(chan struct{}, 1),
	}
}

// Sink copies frame for display. Only the newest frame is kept.
func (w *Window) Sink(frame *gocv.Mat) {
	if frame == nil || frame.Empty() {
		return
	}
	clone := frame.Clone()

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Close()
	}
	w.pending = &clone
	w.mu.Unlock()

	select {
	case w.ready <- struct{}{}:
	default:
	}
}

func (w *Window) take() *gocv.Mat {
	w.mu.Lock()
	defer w.mu.Unlock()
	m := w.pending
	w.pending = nil
	return m
}

// Run shows frames until the user quits, the window is closed or ctx is
// done. onClear is called for the clear key.
func (w *Window) Run(ctx context.Context, onClear func()) {
	window := gocv.NewWindow(w.title)
	defer window.Close()

	// Keys are polled even when no frame arrives.
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.ready:
			if m := w.take(); m != nil {
				window.IMShow(*m)
				m.Close()
			}
		case <-poll.C:
		}

		switch KeyAction(window.WaitKey(1)) {
		case ActionQuit:
			log.Info("quit requested from preview window")
			return
		case ActionClear:
			if onClear != nil {
				onClear()
			}
		}

		if !window.IsOpen() {
			return
		}
	}
}

// Close releases any frame still waiting to be shown.
func (w *Window) Close() {
	if m := w.take(); m != nil {
		m.Close()
	}
}
