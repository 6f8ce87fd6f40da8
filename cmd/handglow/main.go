package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/app"
	"github.com/ayusman/handglow/internal/display"
	"github.com/ayusman/handglow/internal/log"
	"github.com/ayusman/handglow/internal/replay"
	"github.com/ayusman/handglow/internal/server"
	"github.com/ayusman/handglow/internal/store"
	"github.com/ayusman/handglow/internal/tray"
)

// The preview window and the tray both need the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "handglow:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	log.Init(opts.logLevel)

	if err := os.MkdirAll(opts.dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	st, err := store.New(filepath.Join(opts.dataDir, "handglow.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	prefs, err := st.Settings().LoadPreferences(defaultPreferences())
	if err != nil {
		log.Warn("stored preferences unreadable, using defaults", "error", err)
	}
	prefs = opts.merge(prefs)

	theme, err := opts.resolveTheme(prefs)
	if err != nil {
		return fmt.Errorf("theme: %w", err)
	}

	cfg := app.DefaultConfig()
	cfg.Store = st
	cfg.CameraID = prefs.Camera
	cfg.Theme = theme
	cfg.Intensity = prefs.Intensity
	cfg.AnimationsEnabled = prefs.AnimationsEnabled

	if opts.replay != "" {
		session, err := replay.Load(opts.replay)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		cfg.Detector = replay.NewDetector(session)
		cfg.AlwaysDetect = true
		log.Info("replaying landmark session", "session", opts.replay, "frames", len(session))
	}

	var window *display.Window
	if opts.window {
		window = display.New("handglow")
		defer window.Close()
		cfg.FrameSink = window.Sink
	}

	a := app.New(cfg)
	if err := a.SavePreferences(); err != nil {
		log.Warn("saving preferences", "error", err)
	}
	if err := a.Start(); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer a.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.addr != "" {
		srv := server.New(server.Config{
			StaticDir: findWebDir(opts.dataDir),
			Store:     st,
			App:       a,
		})
		go func() {
			if err := srv.ListenAndServe(opts.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server failed", "error", err)
				stop()
			}
		}()
	}

	log.Info("handglow running",
		"theme", theme.Name,
		"intensity", prefs.Intensity,
		"animations", prefs.AnimationsEnabled,
		"camera", prefs.Camera,
	)

	switch {
	case window != nil:
		if !opts.noTray {
			log.Info("tray disabled while the preview window is shown")
		}
		window.Run(ctx, a.Clear)
	case !opts.noTray:
		runTray(ctx, a, opts.addr)
	default:
		<-ctx.Done()
	}

	log.Info("shutting down")
	return nil
}

// runTray blocks in the tray loop until quit is chosen or ctx is done.
func runTray(ctx context.Context, a *app.App, addr string) {
	t := tray.New(animation.ThemeNames())
	t.SetEnabled(a.AnimationsEnabled())
	t.SetTheme(a.Theme().Name)
	t.OnToggle(a.SetAnimationsEnabled)
	t.OnTheme(a.SetThemeByName)
	t.OnClear(a.Clear)
	if addr != "" {
		t.OnSettings(func() { openBrowser(settingsURL(addr)) })
	}

	events, cancel := a.Subscribe(8)
	defer cancel()
	go func() {
		for e := range events {
			if e.Type == app.EventGesture && len(e.Observations) > 0 {
				t.SetLastGesture(string(e.Observations[0].Stable))
			}
		}
	}()
	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	t.Run()
}

func settingsURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Warn("opening browser", "url", url, "error", err)
	}
}

// findWebDir searches for the web directory in common locations: "web",
// "../web", "../../web" and the data directory.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	candidates := []string{"web", "../web", "../../web", filepath.Join(dataDir, "web")}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}
