package app

import (
	"fmt"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/log"
	"github.com/ayusman/handglow/internal/store"
)

func (a *App) settings() (intensity float64, enabled bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.intensity, a.enabled
}

// Intensity returns the configured animation intensity.
func (a *App) Intensity() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.intensity
}

// SetIntensity sets the animation intensity, clamped to
// [MinIntensity, MaxIntensity], and returns the value applied.
func (a *App) SetIntensity(v float64) float64 {
	v = clampIntensity(v)
	a.mu.Lock()
	a.intensity = v
	a.mu.Unlock()
	a.persist()
	return v
}

// AnimationsEnabled reports whether effects are drawn.
func (a *App) AnimationsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetAnimationsEnabled turns effect rendering on or off. Gestures are
// still tracked and reported while rendering is off.
func (a *App) SetAnimationsEnabled(enabled bool) {
	a.mu.Lock()
	changed := a.enabled != enabled
	a.enabled = enabled
	a.mu.Unlock()
	if changed {
		log.Info("animations toggled", "enabled", enabled)
		a.persist()
	}
}

// Theme returns the active theme.
func (a *App) Theme() animation.Theme {
	return a.engine.Theme()
}

// SetTheme switches the theme. Running particles are dropped.
func (a *App) SetTheme(theme animation.Theme) error {
	if err := theme.Validate(); err != nil {
		return err
	}
	a.frameMu.Lock()
	a.engine.SetTheme(theme)
	a.frameMu.Unlock()
	log.Info("theme changed", "theme", theme.Name)
	a.persist()
	return nil
}

// SetThemeByName switches to a built-in theme.
func (a *App) SetThemeByName(name string) error {
	theme, err := animation.ThemeByName(name)
	if err != nil {
		return err
	}
	return a.SetTheme(theme)
}

// Preferences returns the current user-facing settings. A theme loaded
// from a file is reported by its built-in base so the stored name always
// resolves on the next start.
func (a *App) Preferences() store.Preferences {
	intensity, enabled := a.settings()
	return store.Preferences{
		Theme:             a.engine.Theme().BuiltinName(),
		Intensity:         intensity,
		AnimationsEnabled: enabled,
		Camera:            a.config.CameraID,
	}
}

// ApplyPreferences applies p. Unknown theme names are reported and the
// other fields still applied.
func (a *App) ApplyPreferences(p store.Preferences) error {
	a.mu.Lock()
	a.intensity = clampIntensity(p.Intensity)
	a.enabled = p.AnimationsEnabled
	a.mu.Unlock()

	if p.Theme == "" || p.Theme == a.engine.Theme().Name {
		a.persist()
		return nil
	}
	if err := a.SetThemeByName(p.Theme); err != nil {
		a.persist()
		return fmt.Errorf("apply preferences: %w", err)
	}
	return nil
}

// SavePreferences writes the current settings to the store, if any.
func (a *App) SavePreferences() error {
	if a.config.Store == nil {
		return nil
	}
	return a.config.Store.Settings().SavePreferences(a.Preferences())
}

func (a *App) persist() {
	if err := a.SavePreferences(); err != nil {
		log.Warn("saving preferences", "error", err)
	}
}
