package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"avrental-backend/internal/domain"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/security"
	"avrental-backend/internal/service"

	"github.com/gorilla/mux"
)

// ReportHandler serves the read-only manager reports
type ReportHandler struct {
	reservations service.ReservationService
	vehicles     service.VehicleService
}

func NewReportHandler(reservations service.ReservationService, vehicles service.VehicleService) *ReportHandler {
	return &ReportHandler{reservations: reservations, vehicles: vehicles}
}

func (h *ReportHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ReportHandler) PaymentReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reservations.PaymentReport(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) IncidentsByPlate(w http.ResponseWriter, r *http.Request) {
	plate := mux.Vars(r)["plate"]
	if _, err := h.vehicles.Get(r.Context(), plate); err != nil {
		writeDomainError(w, err)
		return
	}
	groups, err := h.reservations.IncidentsByPlate(r.Context(), plate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plate": plate, "reservations": groups})
}

func (h *ReportHandler) FleetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.vehicles.FleetStats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// NewRouter registers the report routes behind the auth middleware
func NewRouter(handler *ReportHandler, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(NewAuthMiddleware(tokens).Handler)

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	router.HandleFunc("/reports/payments", handler.PaymentReport).Methods(http.MethodGet)
	router.HandleFunc("/vehicles/{plate}/incidents", handler.IncidentsByPlate).Methods(http.MethodGet)
	router.HandleFunc("/fleet/stats", handler.FleetStats).Methods(http.MethodGet)
	return router
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("Report request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
