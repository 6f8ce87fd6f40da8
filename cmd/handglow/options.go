package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/app"
	"github.com/ayusman/handglow/internal/log"
	"github.com/ayusman/handglow/internal/store"
)

type options struct {
	camera       int
	intensity    float64
	noAnimations bool
	theme        string
	themeFile    string
	addr         string
	window       bool
	noTray       bool
	logLevel     string
	dataDir      string
	replay       string

	// set records which flags were given on the command line.
	set map[string]bool
}

func parseOptions(args []string) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("handglow", flag.ContinueOnError)
	fs.IntVar(&o.camera, "camera", 0, "camera device index")
	fs.Float64Var(&o.intensity, "intensity", 1.0, "animation intensity (0.1-2.0)")
	fs.BoolVar(&o.noAnimations, "no-animations", false, "track gestures without drawing effects")
	fs.StringVar(&o.theme, "theme", "classic", "built-in theme: classic, neon or rainbow")
	fs.StringVar(&o.themeFile, "theme-file", "", "YAML theme file, overrides -theme")
	fs.StringVar(&o.addr, "addr", ":8080", "HTTP listen address, empty to disable")
	fs.BoolVar(&o.window, "window", false, "show the OpenCV preview window (q quits, c clears)")
	fs.BoolVar(&o.noTray, "no-tray", false, "do not show the system tray icon")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&o.dataDir, "data-dir", "", "data directory (default ~/.handglow)")
	fs.StringVar(&o.replay, "replay", "", "play a recorded landmark session (built-in name or .jsonl path) instead of detecting hands")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home directory: %w", err)
		}
		o.dataDir = filepath.Join(home, ".handglow")
	}
	return o, nil
}

// defaultPreferences are used when the store holds nothing.
func defaultPreferences() store.Preferences {
	def := app.DefaultConfig()
	return store.Preferences{
		Theme:             def.Theme.Name,
		Intensity:         def.Intensity,
		AnimationsEnabled: def.AnimationsEnabled,
	}
}

// merge overlays the flags given on the command line onto stored
// preferences.
func (o *options) merge(p store.Preferences) store.Preferences {
	if o.set["camera"] {
		p.Camera = o.camera
	}
	if o.set["intensity"] {
		p.Intensity = o.intensity
	}
	if o.set["no-animations"] {
		p.AnimationsEnabled = !o.noAnimations
	}
	if o.set["theme"] {
		p.Theme = o.theme
	}
	p.Intensity = min(max(p.Intensity, app.MinIntensity), app.MaxIntensity)
	return p
}

// resolveTheme loads the theme file when given, otherwise the named
// built-in theme. An unknown stored name falls back to classic.
func (o *options) resolveTheme(p store.Preferences) (animation.Theme, error) {
	if o.themeFile != "" {
		theme, err := animation.LoadTheme(o.themeFile)
		if err != nil {
			return animation.Theme{}, err
		}
		return theme, nil
	}

	theme, err := animation.ThemeByName(p.Theme)
	if err != nil {
		if o.set["theme"] {
			return animation.Theme{}, err
		}
		log.Warn("stored theme unavailable, using classic", "theme", p.Theme, "error", err)
		return animation.ClassicTheme(), nil
	}
	return theme, nil
}
