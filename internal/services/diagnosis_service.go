// File: internal/services/diagnosis_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aimedica/go-diagnosis/internal/domain"
	"github.com/aimedica/go-diagnosis/internal/repository/patient"
	"github.com/aimedica/go-diagnosis/internal/repository/record"
	"github.com/aimedica/go-diagnosis/internal/services/imagestore"
	"github.com/aimedica/go-diagnosis/internal/services/normalize"
	"github.com/aimedica/go-diagnosis/internal/services/prompt"
	"github.com/aimedica/go-diagnosis/internal/services/provider"
)

// DiagnosisInput is the validated request for a text diagnosis.
type DiagnosisInput struct {
	PatientID      uint     `json:"patientId"`
	ChiefComplaint string   `json:"chiefComplaint"`
	Symptoms       []string `json:"symptoms"`
	PresentIllness string   `json:"presentIllness"`
}

// DiagnosisService sequences prompt building, the provider call,
// normalization and persistence. Each call is independent; the service
// holds no mutable state beyond injected read-only collaborators, so
// concurrent calls need no coordination.
type DiagnosisService struct {
	patients   patient.PatientRepository
	records    record.RecordRepository
	text       provider.TextCompleter
	vision     provider.VisionCompleter
	normalizer *normalize.Normalizer
	images     *imagestore.Store
	logger     Logger
}

func NewDiagnosisService(
	patients patient.PatientRepository,
	records record.RecordRepository,
	text provider.TextCompleter,
	vision provider.VisionCompleter,
	images *imagestore.Store,
	logger Logger,
) (*DiagnosisService, error) {
	if patients == nil {
		return nil, errors.New("patient repository is required")
	}
	if records == nil {
		return nil, errors.New("record repository is required")
	}
	if text == nil {
		return nil, errors.New("text completion provider is required")
	}
	if logger == nil {
		logger = NoOpLogger{}
	}
	return &DiagnosisService{
		patients:   patients,
		records:    records,
		text:       text,
		vision:     vision,
		normalizer: normalize.NewNormalizer(logger),
		images:     images,
		logger:     logger,
	}, nil
}

// Diagnose runs the full text-diagnosis pipeline and persists a
// pending record. A record is created only after normalization; on a
// provider or transport failure the error is returned and nothing is
// written.
func (s *DiagnosisService) Diagnose(ctx context.Context, input DiagnosisInput) (*domain.DiagnosisRecord, *normalize.Result, error) {
	p, err := s.patients.FindByID(ctx, input.PatientID)
	if err != nil {
		return nil, nil, err
	}

	diagnosisPrompt := prompt.DiagnosisPrompt(prompt.ClinicalContext{
		PatientName:    p.Name,
		Gender:         p.GenderLabel(),
		Age:            p.Age,
		ChiefComplaint: input.ChiefComplaint,
		Symptoms:       input.Symptoms,
		PresentIllness: input.PresentIllness,
		AllergyHistory: p.AllergyHistory,
		PastHistory:    p.PastHistory,
	})

	reply, err := s.text.Complete(ctx, diagnosisPrompt)
	if err != nil {
		return nil, nil, err
	}

	result := s.normalizer.Normalize(reply)
	rec, err := s.persistResult(ctx, p, input, nil, result, domain.DiagnosisTypeAIAssisted)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("diagnosis completed",
		"record_no", rec.RecordNo, "patient_id", p.ID, "degraded", result.Degraded)
	return rec, result, nil
}

// AnalyzeImages runs the vision pipeline over previously uploaded
// image references.
func (s *DiagnosisService) AnalyzeImages(ctx context.Context, patientID uint, imageRefs []string, description string) (*domain.DiagnosisRecord, *normalize.Result, error) {
	if s.vision == nil {
		return nil, nil, errors.New("no vision-capable provider configured")
	}
	if len(imageRefs) == 0 {
		return nil, nil, errors.New("at least one image is required")
	}

	p, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}

	paths := make([]string, 0, len(imageRefs))
	for _, ref := range imageRefs {
		path, err := s.images.Path(ref)
		if err != nil {
			return nil, nil, err
		}
		paths = append(paths, path)
	}

	reply, err := s.vision.CompleteVision(ctx, prompt.VisionPrompt(description), paths)
	if err != nil {
		return nil, nil, err
	}

	result := s.normalizer.Normalize(reply)
	input := DiagnosisInput{PatientID: patientID, ChiefComplaint: description}
	rec, err := s.persistResult(ctx, p, input, imageRefs, result, domain.DiagnosisTypeImageAnalysis)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("image analysis completed",
		"record_no", rec.RecordNo, "patient_id", p.ID, "images", len(imageRefs))
	return rec, result, nil
}

// Chat answers a free-form consultation message. This path is
// user-facing and never returns an error: any failure is folded into
// an apology message carrying the error detail.
func (s *DiagnosisService) Chat(ctx context.Context, message, sessionID string) string {
	reply, err := s.text.Complete(ctx, prompt.ChatPrompt(message))
	if err != nil {
		s.logger.Error("chat completion failed", "session_id", sessionID, "error", err)
		return "Sorry, I am unable to answer your question right now. Error: " + err.Error()
	}
	return reply
}

func (s *DiagnosisService) persistResult(
	ctx context.Context,
	p *domain.Patient,
	input DiagnosisInput,
	imageRefs []string,
	result *normalize.Result,
	diagnosisType int,
) (*domain.DiagnosisRecord, error) {
	serialized, err := result.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize diagnosis result: %w", err)
	}

	rec := &domain.DiagnosisRecord{
		RecordNo:       newRecordNo(),
		PatientID:      p.ID,
		PatientName:    p.Name,
		ChiefComplaint: input.ChiefComplaint,
		PresentIllness: input.PresentIllness,
		Symptoms:       marshalList(input.Symptoms),
		ImageURLs:      marshalList(imageRefs),
		AiDiagnosis:    serialized,
		AiSuggestion:   result.Recommendation,
		DiagnosisType:  diagnosisType,
		Status:         domain.RecordStatusPending,
	}
	return s.records.Create(ctx, rec)
}

func marshalList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(b)
}

func newRecordNo() string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("DR%d%s", time.Now().UnixMilli(), suffix)
}
