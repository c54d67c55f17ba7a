// File: internal/handlers/record_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/aimedica/go-diagnosis/internal/repository/record"
)

type RecordHandler struct {
	records record.RecordRepository
}

func NewRecordHandler(records record.RecordRepository) *RecordHandler {
	return &RecordHandler{records: records}
}

// List handles GET /api/diagnosis/records with optional patientName,
// status, page and size query parameters.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	q := record.Query{
		PatientName: r.URL.Query().Get("patientName"),
		Limit:       queryInt(r, "size", 10),
	}
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	q.Offset = (page - 1) * q.Limit

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, "invalid status", http.StatusBadRequest)
			return
		}
		q.Status = &status
	}

	records, total, err := h.records.FindPage(r.Context(), q)
	if err != nil {
		writeError(w, "could not retrieve records", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"total":   total,
		"page":    page,
		"size":    q.Limit,
	})
}

// Get handles GET /api/diagnosis/records/{id}.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.records.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Confirm handles PUT /api/diagnosis/records/{id}/confirm.
func (h *RecordHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		DoctorDiagnosis string   `json:"doctorDiagnosis"`
		TreatmentPlan   string   `json:"treatmentPlan"`
		MatchRate       *float64 `json:"matchRate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := h.records.Confirm(r.Context(), id, req.DoctorDiagnosis, req.TreatmentPlan, req.MatchRate); err != nil {
		writeError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

// Complete handles PUT /api/diagnosis/records/{id}/complete.
func (h *RecordHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.records.Complete(r.Context(), id); err != nil {
		writeError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		writeError(w, "invalid record ID", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
