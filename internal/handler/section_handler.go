package handler

import (
	"encoding/json"
	"net/http"

	"papelog/internal/domain"
	"papelog/internal/service"

	"github.com/gorilla/mux"
)

// SectionHandler handles per-section actions: summarize, speak, expand and
// audio delivery.
type SectionHandler struct {
	session *service.Session
	logger  domain.Logger
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(session *service.Session, logger domain.Logger) *SectionHandler {
	return &SectionHandler{
		session: session,
		logger:  logger,
	}
}

// Summarize fetches an AI summary for one section.
func (h *SectionHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	sectionID := mux.Vars(r)["id"]

	if err := h.session.Summarize(r.Context(), sectionID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

// SummarizeAll fetches summaries for every content section that lacks one.
func (h *SectionHandler) SummarizeAll(w http.ResponseWriter, r *http.Request) {
	if err := h.session.SummarizeAll(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

// Speak synthesizes speech for one section and returns the clip identifier.
func (h *SectionHandler) Speak(w http.ResponseWriter, r *http.Request) {
	sectionID := mux.Vars(r)["id"]

	clipID, err := h.session.Speak(r.Context(), sectionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clip_id": clipID})
}

// Audio streams a synthesized clip by its identifier.
func (h *SectionHandler) Audio(w http.ResponseWriter, r *http.Request) {
	clipID := mux.Vars(r)["clipId"]

	clip, err := h.session.Clip(clipID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data := clip.Data()
	if data == nil {
		writeError(w, http.StatusNotFound, "unknown audio clip")
		return
	}

	w.Header().Set("Content-Type", clip.MIME)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ReleaseAudio frees a section's clip once playback finishes.
func (h *SectionHandler) ReleaseAudio(w http.ResponseWriter, r *http.Request) {
	sectionID := mux.Vars(r)["id"]

	if err := h.session.ReleaseAudio(sectionID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"released": true})
}

type expandRequest struct {
	Expanded bool `json:"expanded"`
}

// Expand toggles a section's collapsed/expanded state.
func (h *SectionHandler) Expand(w http.ResponseWriter, r *http.Request) {
	sectionID := mux.Vars(r)["id"]

	var req expandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.session.SetExpanded(sectionID, req.Expanded); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"expanded": req.Expanded})
}
