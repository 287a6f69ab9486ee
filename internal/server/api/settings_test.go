package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ayusman/rigkit/internal/rig"
)

func TestSettingsHandler(t *testing.T) {
	s := newTestStore(t)
	settings := newTestSettings(t, s)
	handler := NewSettingsHandler(settings)

	t.Run("returns defaults", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/api/settings", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		var got rig.Config
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if got != rig.DefaultConfig() {
			t.Errorf("got %+v, want defaults", got)
		}
	})

	t.Run("partial update", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPut, "/api/settings", `{"pose":{"enableLegs":false},"face":{"smoothBlink":true}}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
		}

		cfg := settings.Config()
		if cfg.Pose.EnableLegs {
			t.Error("expected legs disabled")
		}
		if !cfg.Face.SmoothBlink {
			t.Error("expected smooth blink enabled")
		}
		if cfg.Face.BlinkHigh != rig.DefaultConfig().Face.BlinkHigh {
			t.Errorf("unnamed fields should keep their value, BlinkHigh = %f", cfg.Face.BlinkHigh)
		}
		if settings.Solver().Config() != cfg {
			t.Error("solver should use the new config")
		}
	})

	t.Run("persists across loads", func(t *testing.T) {
		reloaded := newTestSettings(t, s)
		if reloaded.Config().Pose.EnableLegs {
			t.Error("saved settings should be loaded")
		}
	})

	t.Run("rejects bad thresholds", func(t *testing.T) {
		before := settings.Config()
		rec := doJSON(t, handler, http.MethodPut, "/api/settings", `{"face":{"blinkLow":0.6,"blinkHigh":0.5}}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
		if settings.Config() != before {
			t.Error("rejected update should not change settings")
		}
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPut, "/api/settings", `[`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodDelete, "/api/settings", nil)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})
}

func TestSettings_InMemory(t *testing.T) {
	settings := newTestSettings(t, nil)

	cfg := settings.Config()
	cfg.FillResting = false
	if err := settings.Update(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Config().FillResting {
		t.Error("expected FillResting off")
	}
}
