// File: internal/domain/diagnosis_record.go
package domain

import "time"

// Diagnosis record types.
const (
	DiagnosisTypeAIAssisted    = 0
	DiagnosisTypeTextChat      = 1
	DiagnosisTypeImageAnalysis = 2
)

// Diagnosis record workflow states. A record starts pending and only the
// clinician-facing layer moves it forward.
const (
	RecordStatusPending   = 0
	RecordStatusConfirmed = 1
	RecordStatusCompleted = 2
)

// DiagnosisRecord is the persisted envelope around one AI diagnosis.
// AiDiagnosis holds the serialized canonical result; the dashboard
// extractor reads disease names back out of it.
type DiagnosisRecord struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	RecordNo        string    `json:"record_no" gorm:"uniqueIndex;not null"`
	PatientID       uint      `json:"patient_id" gorm:"index;not null"`
	PatientName     string    `json:"patient_name"`
	DoctorID        uint      `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	ChiefComplaint  string    `json:"chief_complaint"`
	PresentIllness  string    `json:"present_illness"`
	Symptoms        string    `json:"symptoms"`   // JSON array of symptom strings
	ImageURLs       string    `json:"image_urls"` // JSON array, image-analysis records only
	AiDiagnosis     string    `json:"ai_diagnosis"`
	AiSuggestion    string    `json:"ai_suggestion"`
	DoctorDiagnosis string    `json:"doctor_diagnosis"`
	TreatmentPlan   string    `json:"treatment_plan"`
	DiagnosisType   int       `json:"diagnosis_type" gorm:"index"`
	MatchRate       *float64  `json:"match_rate"`
	Status          int       `json:"status" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CanConfirm reports whether the record may move to the confirmed state.
func (r *DiagnosisRecord) CanConfirm() bool {
	return r.Status == RecordStatusPending
}

// CanComplete reports whether the record may move to the completed state.
func (r *DiagnosisRecord) CanComplete() bool {
	return r.Status == RecordStatusConfirmed
}
