package api

import (
	"net/http"
)

// Recorder captures live pipeline frames into a session.
type Recorder interface {
	Start(sessionID string) error
	Stop() (int, error)
	Recording() (string, bool)
}

// RecordingHandler serves /api/recording:
//
//	GET    status
//	POST   {"sessionId": "..."} starts recording
//	DELETE stops recording
type RecordingHandler struct {
	recorder Recorder
}

// NewRecordingHandler creates a RecordingHandler.
func NewRecordingHandler(r Recorder) *RecordingHandler {
	return &RecordingHandler{recorder: r}
}

type recordingRequest struct {
	SessionID string `json:"sessionId"`
}

type recordingResponse struct {
	Recording bool   `json:"recording"`
	SessionID string `json:"sessionId,omitempty"`
	Frames    int    `json:"frames,omitempty"`
}

func (h *RecordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id, ok := h.recorder.Recording()
		writeJSON(w, http.StatusOK, recordingResponse{Recording: ok, SessionID: id})

	case http.MethodPost:
		var req recordingRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.SessionID == "" {
			writeError(w, http.StatusBadRequest, "sessionId is required")
			return
		}
		if err := h.recorder.Start(req.SessionID); err != nil {
			if current, ok := h.recorder.Recording(); ok {
				writeError(w, http.StatusConflict, "Already recording session "+current)
				return
			}
			writeStoreError(w, err, "Session")
			return
		}
		writeJSON(w, http.StatusOK, recordingResponse{Recording: true, SessionID: req.SessionID})

	case http.MethodDelete:
		id, ok := h.recorder.Recording()
		if !ok {
			writeError(w, http.StatusConflict, "Not recording")
			return
		}
		n, err := h.recorder.Stop()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, recordingResponse{Recording: false, SessionID: id, Frames: n})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
