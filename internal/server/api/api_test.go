package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/rig"
	"github.com/ayusman/rigkit/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func newTestSettings(t *testing.T, s *store.Store) *Settings {
	t.Helper()

	settings, err := NewSettings(s, rig.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	return settings
}

func fullFrame() landmark.Frame {
	pose := landmark.StandingPose()
	return landmark.Frame{
		Face: landmark.NeutralFace(true),
		Hands: []landmark.Hand{
			{Side: landmark.Right, Points: landmark.OpenPalmHand()},
			{Side: landmark.Left, Points: landmark.ThumbsUpHand().Mirror()},
		},
		Pose:      &pose,
		Timestamp: 1000,
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Error
}
