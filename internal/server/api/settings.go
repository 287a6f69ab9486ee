package api

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/ayusman/rigkit/internal/rig"
	"github.com/ayusman/rigkit/internal/store"
)

// Settings holds the active solver configuration. Updates are persisted to
// the store when one is set and take effect on the next solve.
type Settings struct {
	mu     sync.RWMutex
	solver *rig.Solver
	store  *store.Store
}

// NewSettings loads the saved configuration from s, falling back to def.
// A nil store keeps the configuration in memory only.
func NewSettings(s *store.Store, def rig.Config) (*Settings, error) {
	cfg := def
	if s != nil {
		var err error
		if cfg, err = s.Settings().RigConfig(def); err != nil {
			return nil, err
		}
	}
	return &Settings{solver: rig.NewSolver(cfg), store: s}, nil
}

// Solver returns the solver for the current configuration.
func (s *Settings) Solver() *rig.Solver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solver
}

// Config returns the current configuration.
func (s *Settings) Config() rig.Config {
	return s.Solver().Config()
}

// Update validates, saves and activates cfg.
func (s *Settings) Update(cfg rig.Config) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Settings().SaveRigConfig(cfg); err != nil {
			return err
		}
	}
	s.solver = rig.NewSolver(cfg)
	return nil
}

var errInvalidConfig = errors.New("invalid config")

func validateConfig(cfg rig.Config) error {
	f := cfg.Face
	if f.BlinkLow < 0 || f.BlinkHigh > 1 || f.BlinkLow >= f.BlinkHigh {
		return fmt.Errorf("%w: face blink thresholds must satisfy 0 <= blinkLow < blinkHigh <= 1", errInvalidConfig)
	}
	if f.MaxRotation < 0 {
		return fmt.Errorf("%w: face maxRotation must not be negative", errInvalidConfig)
	}
	return nil
}

// SettingsHandler serves GET and PUT /api/settings.
type SettingsHandler struct {
	settings *Settings
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(s *Settings) *SettingsHandler {
	return &SettingsHandler{settings: s}
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.settings.Config())
	case http.MethodPut:
		// Start from the current values so a partial body only changes
		// the fields it names.
		cfg := h.settings.Config()
		if !decodeJSON(w, r, &cfg) {
			return
		}
		if err := h.settings.Update(cfg); err != nil {
			if errors.Is(err, errInvalidConfig) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
