package record

import (
	"context"
	"time"

	"github.com/aimedica/go-diagnosis/internal/domain"
)

// Query narrows a paginated record listing.
type Query struct {
	PatientName string
	Status      *int
	Limit       int
	Offset      int
}

// RecordRepository handles diagnosis record persistence. Records are
// append-only apart from the confirm/complete workflow transitions.
type RecordRepository interface {
	Create(ctx context.Context, rec *domain.DiagnosisRecord) (*domain.DiagnosisRecord, error)
	FindByID(ctx context.Context, id uint) (*domain.DiagnosisRecord, error)
	FindPage(ctx context.Context, q Query) ([]domain.DiagnosisRecord, int64, error)
	FindRecent(ctx context.Context, limit int) ([]domain.DiagnosisRecord, error)
	FindAllDiagnosed(ctx context.Context) ([]domain.DiagnosisRecord, error)
	Confirm(ctx context.Context, id uint, doctorDiagnosis, treatmentPlan string, matchRate *float64) error
	Complete(ctx context.Context, id uint) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountByType(ctx context.Context, diagnosisType int) (int64, error)
	AverageConfirmedMatchRate(ctx context.Context) (float64, error)
}
