package handler

import (
	"encoding/json"
	"net/http"
)

type activeProfilePayload struct {
	ProfileID   string `json:"profileId"`
	ProfileName string `json:"profileName"`
}

// GetActiveProfile returns the locally persisted selection and the cached
// balance snapshot, if any.
func (h *Handler) GetActiveProfile(w http.ResponseWriter, r *http.Request) {
	id, name := h.appState.ActiveProfile()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"profileId":     id,
		"profileName":   name,
		"cachedBalance": h.appState.CachedBalance(),
	})
}

// SetActiveProfile switches the selected profile. The upstream store is
// consulted first so a stale or mistyped id cannot become active.
func (h *Handler) SetActiveProfile(w http.ResponseWriter, r *http.Request) {
	var payload activeProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if payload.ProfileID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "profileId is required"})
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), payload.ProfileID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.appState.SetActiveProfile(profile.ID, profile.Name); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"profileId":   profile.ID,
		"profileName": profile.Name,
	})
}
