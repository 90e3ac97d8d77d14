package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"papelog/internal/domain"
	"papelog/internal/service"
)

// SessionHandler handles upload, status and save requests for the single
// reading session.
type SessionHandler struct {
	session    *service.Session
	navigation *service.NavigationTracker
	config     domain.Config
	logger     domain.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(session *service.Session, navigation *service.NavigationTracker, config domain.Config, logger domain.Logger) *SessionHandler {
	return &SessionHandler{
		session:    session,
		navigation: navigation,
		config:     config,
		logger:     logger,
	}
}

// Upload accepts a multipart PDF and submits it for asynchronous parsing.
func (h *SessionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.GetMaxFileSize())
	if err := r.ParseMultipartForm(h.config.GetMaxFileSize()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "A PDF file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read the uploaded file")
		return
	}

	if err := h.session.Upload(r.Context(), header.Filename, content); err != nil {
		h.logger.Error("Upload failed", err, "filename", header.Filename)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, h.session.Snapshot())
}

// Status returns the full session snapshot. The UI polls this endpoint.
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

// Reset clears the session back to its initial state.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	h.navigation.Reset()
	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

type saveRequest struct {
	Tags   []string `json:"tags"`
	Rating string   `json:"rating"`
	Memo   string   `json:"memo"`
}

// Save persists the curated record to the knowledge base via the backend.
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.session.SaveToNotion(r.Context(), req.Tags, req.Rating, req.Memo); err != nil {
		h.logger.Error("Save failed", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Snapshot())
}
