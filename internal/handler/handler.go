package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rentbook/rentbook/internal/service"
	"github.com/rentbook/rentbook/internal/state"
	"github.com/rentbook/rentbook/internal/upstream"
	"github.com/sirupsen/logrus"
)

// Handler exposes the rent-tracking operations to the UI over HTTP.
type Handler struct {
	svc      *service.Service
	balance  *service.BalanceService
	appState *state.Store
	logger   *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, balance *service.BalanceService, appState *state.Store, logger *logrus.Logger) *Handler {
	return &Handler{
		svc:      svc,
		balance:  balance,
		appState: appState,
		logger:   logger,
	}
}

// RegisterRoutes attaches all routes to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/profiles", h.ListProfiles).Methods("GET")
	r.HandleFunc("/profiles", h.CreateProfile).Methods("POST")
	r.HandleFunc("/profiles/{id}", h.GetProfile).Methods("GET")
	r.HandleFunc("/profiles/{id}", h.UpdateProfile).Methods("PUT")
	r.HandleFunc("/profiles/{id}/transactions", h.ListTransactions).Methods("GET")
	r.HandleFunc("/profiles/{id}/balance", h.GetBalance).Methods("GET")
	r.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	r.HandleFunc("/state/active-profile", h.GetActiveProfile).Methods("GET")
	r.HandleFunc("/state/active-profile", h.SetActiveProfile).Methods("PUT")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps the error taxonomy to HTTP statuses: validation failures
// are the client's fault, a missing profile is 404 and upstream trouble is
// reported as a bad gateway so the UI can fall back to its cached view.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var transportErr *upstream.TransportError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, upstream.ErrProfileNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
	case errors.As(err, &transportErr):
		h.logger.WithError(err).Error("Upstream call failed")
		h.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream unavailable"})
	default:
		h.logger.WithError(err).Error("Request failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
