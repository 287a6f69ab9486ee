package api

import (
	"net/http"

	"github.com/ayusman/rigkit/internal/landmark"
)

// SolveHandler serves POST /api/solve: one tracked frame in, one rig
// result out.
type SolveHandler struct {
	settings *Settings
}

// NewSolveHandler creates a SolveHandler using the active settings.
func NewSolveHandler(s *Settings) *SolveHandler {
	return &SolveHandler{settings: s}
}

func (h *SolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var frame landmark.Frame
	if !decodeJSON(w, r, &frame) {
		return
	}

	result, err := h.settings.Solver().Solve(r.Context(), frame)
	if err != nil {
		writeStoreError(w, err, "Frame")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
