package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/rigkit/internal/bake"
	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/rig"
	"github.com/ayusman/rigkit/internal/store"
)

// SessionHandler handles HTTP requests for recorded sessions, their frames
// and their baked results.
type SessionHandler struct {
	store    *store.Store
	settings *Settings
}

// NewSessionHandler creates a new SessionHandler. Bakes use the solver of
// the active settings.
func NewSessionHandler(s *store.Store, settings *Settings) *SessionHandler {
	return &SessionHandler{store: s, settings: settings}
}

// ServeHTTP routes:
//
//	/api/sessions
//	/api/sessions/{id}
//	/api/sessions/{id}/frames
//	/api/sessions/{id}/results
//	/api/sessions/{id}/bake
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodPut:
			h.update(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if len(parts) != 2 {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	switch {
	case parts[1] == "frames" && r.Method == http.MethodGet:
		h.listFrames(w, r, id)
	case parts[1] == "frames" && r.Method == http.MethodPost:
		h.appendFrames(w, r, id)
	case parts[1] == "results" && r.Method == http.MethodGet:
		h.listResults(w, r, id)
	case parts[1] == "bake" && r.Method == http.MethodPost:
		h.bake(w, r, id)
	case parts[1] == "frames" || parts[1] == "results" || parts[1] == "bake":
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// Request and response types

type sessionRequest struct {
	Name string  `json:"name"`
	FPS  float64 `json:"fps"`
}

type listSessionsResponse struct {
	Sessions []*store.Session `json:"sessions"`
}

type appendFramesRequest struct {
	Frames []landmark.Frame `json:"frames"`
}

type appendFramesResponse struct {
	First int `json:"first"`
	Count int `json:"count"`
}

type listFramesResponse struct {
	Frames []landmark.Frame `json:"frames"`
}

type listResultsResponse struct {
	Results []rig.Result `json:"results"`
}

// list handles GET /api/sessions.
func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []*store.Session{}
	}
	writeJSON(w, http.StatusOK, listSessionsResponse{Sessions: sessions})
}

// create handles POST /api/sessions.
func (h *SessionHandler) create(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.FPS < 0 {
		writeError(w, http.StatusBadRequest, "FPS must not be negative")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Session " + time.Now().Format("2006-01-02 15:04:05")
	}

	session := &store.Session{
		ID:   uuid.New().String(),
		Name: name,
		FPS:  req.FPS,
	}
	if err := h.store.Sessions().Create(session); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// get handles GET /api/sessions/{id}.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		writeStoreError(w, err, "Session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// update handles PUT /api/sessions/{id}. Omitted fields keep their values.
func (h *SessionHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		writeStoreError(w, err, "Session")
		return
	}

	req := sessionRequest{Name: session.Name, FPS: session.FPS}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.FPS < 0 {
		writeError(w, http.StatusBadRequest, "FPS must not be negative")
		return
	}

	session.Name = strings.TrimSpace(req.Name)
	session.FPS = req.FPS
	if err := h.store.Sessions().Update(session); err != nil {
		writeStoreError(w, err, "Session")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// delete handles DELETE /api/sessions/{id}.
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Sessions().Delete(id); err != nil {
		writeStoreError(w, err, "Session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listFrames handles GET /api/sessions/{id}/frames?from=N&limit=N.
func (h *SessionHandler) listFrames(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		writeStoreError(w, err, "Session")
		return
	}

	from, ok := queryInt(w, r, "from")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	frames, err := h.store.Frames().List(id, from, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list frames")
		return
	}
	if frames == nil {
		frames = []landmark.Frame{}
	}
	writeJSON(w, http.StatusOK, listFramesResponse{Frames: frames})
}

// appendFrames handles POST /api/sessions/{id}/frames.
func (h *SessionHandler) appendFrames(w http.ResponseWriter, r *http.Request, id string) {
	var req appendFramesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Frames) == 0 {
		writeError(w, http.StatusBadRequest, "At least one frame is required")
		return
	}

	first, err := h.store.Frames().Append(id, req.Frames)
	if err != nil {
		writeStoreError(w, err, "Session")
		return
	}

	writeJSON(w, http.StatusCreated, appendFramesResponse{First: first, Count: len(req.Frames)})
}

// listResults handles GET /api/sessions/{id}/results.
func (h *SessionHandler) listResults(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		writeStoreError(w, err, "Session")
		return
	}

	results, err := h.store.Results().List(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list results")
		return
	}

	if results == nil {
		results = []rig.Result{}
	}
	writeJSON(w, http.StatusOK, listResultsResponse{Results: results})
}

// bake handles POST /api/sessions/{id}/bake and runs the bake inline.
func (h *SessionHandler) bake(w http.ResponseWriter, r *http.Request, id string) {
	report, err := bake.Session(r.Context(), h.store, h.settings.Solver(), id, bake.DefaultOptions())
	if err != nil {
		writeStoreError(w, err, "Session")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "Invalid "+key)
		return 0, false
	}
	return n, true
}
