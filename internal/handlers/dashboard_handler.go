// File: internal/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/aimedica/go-diagnosis/internal/services"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Statistics handles GET /api/dashboard/statistics.
func (h *DashboardHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeError(w, "could not compute statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DiseaseDistribution handles GET /api/dashboard/disease-distribution.
func (h *DashboardHandler) DiseaseDistribution(w http.ResponseWriter, r *http.Request) {
	distribution, err := h.service.DiseaseDistribution(r.Context())
	if err != nil {
		writeError(w, "could not compute disease distribution", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, distribution)
}

// DiagnosisTrend handles GET /api/dashboard/trend.
func (h *DashboardHandler) DiagnosisTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.service.DiagnosisTrend(r.Context())
	if err != nil {
		writeError(w, "could not compute diagnosis trend", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

// RecentRecords handles GET /api/dashboard/recent.
func (h *DashboardHandler) RecentRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.RecentRecords(r.Context(), queryInt(r, "limit", 5))
	if err != nil {
		writeError(w, "could not retrieve recent records", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
