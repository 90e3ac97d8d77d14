package handler

import (
	"encoding/json"
	"net/http"

	"papelog/internal/domain"
	"papelog/internal/service"
)

// NavigationHandler mirrors in-page hash navigation so the back-to-top
// shortcut state lives with the rest of the session.
type NavigationHandler struct {
	navigation *service.NavigationTracker
	logger     domain.Logger
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(navigation *service.NavigationTracker, logger domain.Logger) *NavigationHandler {
	return &NavigationHandler{
		navigation: navigation,
		logger:     logger,
	}
}

type hashRequest struct {
	Hash string `json:"hash"`
}

// Hash records an in-page jump and returns the shortcut visibility.
func (h *NavigationHandler) Hash(w http.ResponseWriter, r *http.Request) {
	var req hashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	visible := h.navigation.ApplyHash(req.Hash)
	writeJSON(w, http.StatusOK, map[string]bool{"back_to_top_visible": visible})
}

// Back consumes the shortcut and reports whether a jump should happen.
func (h *NavigationHandler) Back(w http.ResponseWriter, r *http.Request) {
	jumped := h.navigation.GoBack()
	writeJSON(w, http.StatusOK, map[string]bool{"jumped": jumped, "back_to_top_visible": false})
}
