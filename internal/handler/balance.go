package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// GetBalance computes the balance summary for a profile. With no query
// parameters it covers the current month; month (1-12) and year select a
// historical month. A fresh summary for the active profile also refreshes
// the cached snapshot.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	monthParam := r.URL.Query().Get("month")
	yearParam := r.URL.Query().Get("year")

	var (
		summary interface{}
		err     error
	)
	if monthParam == "" && yearParam == "" {
		summary, err = h.computeCurrent(r, id)
	} else {
		month, convErr := strconv.Atoi(monthParam)
		if convErr != nil || month < 1 || month > 12 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "month must be 1-12"})
			return
		}
		year, convErr := strconv.Atoi(yearParam)
		if convErr != nil || year < 1 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "year must be a positive integer"})
			return
		}
		summary, err = h.balance.ComputeBalanceForMonth(r.Context(), id, time.Month(month), year)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) computeCurrent(r *http.Request, profileID string) (interface{}, error) {
	summary, err := h.balance.ComputeMonthlyBalance(r.Context(), profileID)
	if err != nil {
		return nil, err
	}

	// Overwrite the cache slot for the active profile. Last writer wins;
	// a racing recompute that finishes later simply replaces this one.
	if activeID, _ := h.appState.ActiveProfile(); activeID == profileID {
		if err := h.appState.SetBalance(summary); err != nil {
			h.logger.WithError(err).Error("Failed to persist balance snapshot")
		}
	}
	return summary, nil
}
