// File: internal/handlers/skin_analysis_handler.go
package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/aimedica/go-diagnosis/internal/services"
	"github.com/aimedica/go-diagnosis/internal/services/imagestore"
)

const maxUploadBytes = 32 << 20

type SkinAnalysisHandler struct {
	service *services.DiagnosisService
	store   *imagestore.Store
}

func NewSkinAnalysisHandler(service *services.DiagnosisService, store *imagestore.Store) *SkinAnalysisHandler {
	return &SkinAnalysisHandler{service: service, store: store}
}

// Analyze handles POST /api/skin-analysis/analyze: multipart form with
// patientId, optional description and one or more image files.
func (h *SkinAnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	patientID, err := strconv.ParseUint(r.FormValue("patientId"), 10, 32)
	if err != nil || patientID == 0 {
		writeError(w, "patientId is required", http.StatusBadRequest)
		return
	}
	description := r.FormValue("description")

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, "at least one image is required", http.StatusBadRequest)
		return
	}

	refs := make([]string, 0, len(files))
	for _, header := range files {
		ref, err := h.saveUpload(header)
		if err != nil {
			if errors.Is(err, imagestore.ErrUnsupportedType) {
				writeError(w, "unsupported image type: "+header.Filename, http.StatusBadRequest)
				return
			}
			writeError(w, "failed to store image", http.StatusInternalServerError)
			return
		}
		refs = append(refs, ref)
	}

	rec, result, err := h.service.AnalyzeImages(r.Context(), uint(patientID), refs, description)
	if err != nil {
		writeError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"record": rec,
		"result": result,
		"images": refs,
	})
}

// Upload handles POST /api/skin-analysis/upload for a single image.
func (h *SkinAnalysisHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		writeError(w, "image is required", http.StatusBadRequest)
		return
	}

	ref, err := h.saveUpload(files[0])
	if err != nil {
		if errors.Is(err, imagestore.ErrUnsupportedType) {
			writeError(w, "unsupported image type", http.StatusBadRequest)
			return
		}
		writeError(w, "failed to store image", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": ref})
}

func (h *SkinAnalysisHandler) saveUpload(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return h.store.Save(header.Filename, data)
}
