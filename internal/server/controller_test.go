package server

import (
	"sync"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/app"
	"github.com/ayusman/handglow/internal/gesture"
	"github.com/ayusman/handglow/internal/store"
)

// fakeController is a hand-written Controller for handler tests.
type fakeController struct {
	mu      sync.Mutex
	prefs   store.Preferences
	cleared int
	last    gesture.Label
	running bool
	jpeg    []byte
	subs    []chan app.Event
}

func newFakeController() *fakeController {
	return &fakeController{
		prefs:   store.Preferences{Theme: "classic", Intensity: 1, AnimationsEnabled: true},
		running: true,
	}
}

func (f *fakeController) Preferences() store.Preferences {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefs
}

func (f *fakeController) SetIntensity(v float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs.Intensity = v
	return v
}

func (f *fakeController) SetAnimationsEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs.AnimationsEnabled = enabled
}

func (f *fakeController) SetThemeByName(name string) error {
	if _, err := animation.ThemeByName(name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs.Theme = name
	return nil
}

func (f *fakeController) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
}

func (f *fakeController) LastGesture() gesture.Label {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *fakeController) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeController) LatestJPEG() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jpeg
}

func (f *fakeController) setJPEG(b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jpeg = b
}

func (f *fakeController) Subscribe(buffer int) (<-chan app.Event, func()) {
	ch := make(chan app.Event, buffer)
	f.mu.Lock()
	f.subs = append(f.subs, ch)
	f.mu.Unlock()
	return ch, func() {}
}

func (f *fakeController) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *fakeController) publish(e app.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		ch <- e
	}
}
