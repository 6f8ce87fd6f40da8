// Package tray provides the system tray menu for handglow.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/handglow/internal/log"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onTheme    func(name string) error
	onClear    func()
	onSettings func()
	onQuit     func()
	enabled    bool
	theme      string
	themes     []string
	mu         sync.RWMutex

	menuToggle      *systray.MenuItem
	menuLastGesture *systray.MenuItem
	menuThemes      map[string]*systray.MenuItem
}

// New creates a Tray offering the given theme names, with animations
// enabled and the first theme selected.
func New(themes []string) *Tray {
	t := &Tray{
		enabled: true,
		themes:  append([]string(nil), themes...),
	}
	if len(themes) > 0 {
		t.theme = themes[0]
	}
	return t
}

// OnToggle sets the callback for the animations toggle.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnTheme sets the callback for a theme choice. A returned error keeps the
// previous selection.
func (t *Tray) OnTheme(fn func(name string) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTheme = fn
}

// OnClear sets the callback for the clear menu item.
func (t *Tray) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClear = fn
}

// OnSettings sets the callback for "Open Settings...".
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit runs before the tray loop exits from the menu.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run blocks in the platform tray loop until Quit.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit stops the tray loop.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("handglow")
	systray.SetTooltip("handglow gesture effects")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Toggle gesture animations")
	systray.AddSeparator()

	menuTheme := systray.AddMenuItem("Theme", "Animation theme")
	t.menuThemes = make(map[string]*systray.MenuItem, len(t.themes))
	for _, name := range t.themes {
		item := menuTheme.AddSubMenuItem(name, "Use the "+name+" theme")
		if name == t.theme {
			item.Check()
		}
		t.menuThemes[name] = item
	}
	menuClear := systray.AddMenuItem("Clear Effects", "Stop the running animation")
	systray.AddSeparator()

	t.menuLastGesture = systray.AddMenuItem(lastGestureTitle(""), "Last confirmed gesture")
	t.menuLastGesture.Disable()
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit handglow")
	items := t.menuThemes
	t.mu.Unlock()

	for name, item := range items {
		go func() {
			for range item.ClickedCh {
				t.handleTheme(name)
			}
		}()
	}

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuClear.ClickedCh:
				t.fire(func(t *Tray) func() { return t.onClear })
			case <-menuSettings.ClickedCh:
				t.fire(func(t *Tray) func() { return t.onSettings })
			case <-menuQuit.ClickedCh:
				t.fire(func(t *Tray) func() { return t.onQuit })
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Animations On"
	}
	return "○ Animations Off"
}

func lastGestureTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
	fn := t.onToggle
	t.mu.Unlock()

	if fn != nil {
		fn(enabled)
	}
}

// handleTheme moves the check mark only if the callback accepts name.
func (t *Tray) handleTheme(name string) {
	t.mu.RLock()
	fn := t.onTheme
	t.mu.RUnlock()

	if fn != nil {
		if err := fn(name); err != nil {
			log.Warn("tray theme change", "theme", name, "error", err)
			return
		}
	}
	t.SetTheme(name)
}

// fire runs the callback selected by pick outside the lock.
func (t *Tray) fire(pick func(*Tray) func()) {
	t.mu.RLock()
	fn := pick(t)
	t.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// SetLastGesture updates the last gesture display in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastGesture != nil {
		t.menuLastGesture.SetTitle(lastGestureTitle(name))
	}
}

// SetEnabled updates the toggle without calling the callback.
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
}

// SetTheme moves the check mark to name without calling the callback.
// Unknown names are ignored.
func (t *Tray) SetTheme(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	known := false
	for _, n := range t.themes {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return
	}
	t.theme = name
	for n, item := range t.menuThemes {
		if n == name {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// Theme returns the checked theme.
func (t *Tray) Theme() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.theme
}
