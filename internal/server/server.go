// Package server provides the HTTP server: the JSON API, the live rig
// WebSocket feed and optional static files.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/rigkit/internal/rig"
	"github.com/ayusman/rigkit/internal/server/api"
	"github.com/ayusman/rigkit/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	// Store enables the session endpoints.
	Store *store.Store
	// Settings is the active solver configuration. When nil the server
	// solves with in-memory defaults.
	Settings *api.Settings
	// Recorder enables /api/recording for the live pipeline.
	Recorder api.Recorder
}

// Server represents the HTTP server for the rig application.
type Server struct {
	config Config
	mux    *http.ServeMux
	feed   *RigFeed
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) (*Server, error) {
	if config.Settings == nil {
		settings, err := api.NewSettings(config.Store, rig.DefaultConfig())
		if err != nil {
			return nil, err
		}
		config.Settings = settings
	}

	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		feed:   NewRigFeed(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/solve", api.NewSolveHandler(s.config.Settings))
	s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Settings))
	s.mux.Handle("/api/rig", s.feed)

	if s.config.Store != nil {
		sessions := api.NewSessionHandler(s.config.Store, s.config.Settings)
		s.mux.Handle("/api/sessions", sessions)
		s.mux.Handle("/api/sessions/", sessions)
	}

	if s.config.Recorder != nil {
		s.mux.Handle("/api/recording", api.NewRecordingHandler(s.config.Recorder))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// Feed returns the live rig broadcaster behind /api/rig.
func (s *Server) Feed() *RigFeed {
	return s.feed
}

// Settings returns the active solver settings.
func (s *Server) Settings() *api.Settings {
	return s.config.Settings
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
		"status":  "ok",
		"uptime":  time.Since(s.start).String(),
		"clients": s.feed.Clients(),
		"store":   s.config.Store != nil,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Close disconnects every feed client.
func (s *Server) Close() {
	s.feed.Close()
}
