// File: internal/handlers/diagnosis_handler.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/aimedica/go-diagnosis/internal/repository/patient"
	"github.com/aimedica/go-diagnosis/internal/repository/record"
	"github.com/aimedica/go-diagnosis/internal/services"
	"github.com/aimedica/go-diagnosis/internal/services/provider"
)

type DiagnosisHandler struct {
	service  *services.DiagnosisService
	markdown goldmark.Markdown
}

func NewDiagnosisHandler(service *services.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{
		service:  service,
		markdown: goldmark.New(),
	}
}

// Diagnose handles POST /api/diagnosis/ai.
func (h *DiagnosisHandler) Diagnose(w http.ResponseWriter, r *http.Request) {
	var input services.DiagnosisInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if input.PatientID == 0 || strings.TrimSpace(input.ChiefComplaint) == "" {
		writeError(w, "patientId and chiefComplaint are required", http.StatusBadRequest)
		return
	}

	rec, result, err := h.service.Diagnose(r.Context(), input)
	if err != nil {
		writeError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"record": rec,
		"result": result,
	})
}

// Chat handles POST /api/diagnosis/chat. The reply is also rendered
// from markdown to HTML for the web client.
func (h *DiagnosisHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(w, "message cannot be empty", http.StatusBadRequest)
		return
	}

	reply := h.service.Chat(r.Context(), req.Message, req.SessionID)

	var html bytes.Buffer
	if err := h.markdown.Convert([]byte(reply), &html); err != nil {
		html.Reset()
		html.WriteString(reply)
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"reply": reply,
		"html":  html.String(),
	})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps pipeline errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, record.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, record.ErrInvalidTransition):
		return http.StatusConflict
	case provider.IsType(err, provider.ErrTypeResource):
		return http.StatusBadRequest
	case provider.IsType(err, provider.ErrTypeNetwork):
		return http.StatusGatewayTimeout
	case provider.IsType(err, provider.ErrTypeRateLimit):
		return http.StatusTooManyRequests
	case provider.IsType(err, provider.ErrTypeProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
