// Package server provides the HTTP surface of handglow: settings, the
// rendered MJPEG stream, live gesture events and the gesture history.
package server

import (
	"net/http"
	"time"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/app"
	"github.com/ayusman/handglow/internal/gesture"
	"github.com/ayusman/handglow/internal/log"
	"github.com/ayusman/handglow/internal/server/api"
	"github.com/ayusman/handglow/internal/store"
)

// Controller is the running application as seen by the HTTP handlers.
// *app.App implements it.
type Controller interface {
	api.Settings
	FrameSource
	EventSource
	Clear()
	LastGesture() gesture.Label
	Running() bool
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       Controller
}

// Server represents the HTTP server for the handglow application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/themes", s.handleThemes)

	if s.config.Store != nil {
		history := api.NewHistoryHandler(s.config.Store)
		s.mux.Handle("/api/history", history)
		s.mux.Handle("/api/history/", history)
	}

	if s.config.App != nil {
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.App))
		s.mux.HandleFunc("/api/clear", s.handleClear)
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App))
		s.mux.Handle("/api/events", NewEventsHandler(s.config.App))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.App != nil {
		response["running"] = s.config.App.Running()
		if g := s.config.App.LastGesture(); g != "" {
			response["last_gesture"] = g
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// handleThemes handles GET /api/themes.
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"themes": animation.ThemeNames()})
}

// handleClear handles POST /api/clear.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.config.App.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	log.Info("http server listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

var _ Controller = (*app.App)(nil)
