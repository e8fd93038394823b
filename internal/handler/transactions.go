package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rentbook/rentbook/internal/models"
)

// ListTransactions returns one page of a profile's transaction history
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.svc.ListTransactions(r.Context(), id, page, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// CreateTransaction records a payment
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var payload models.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := h.svc.CreateTransaction(r.Context(), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{"transaction": created})
}
