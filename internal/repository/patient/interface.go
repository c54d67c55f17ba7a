package patient

import (
	"context"

	"github.com/aimedica/go-diagnosis/internal/domain"
)

// PatientRepository handles patient data operations.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	FindByID(ctx context.Context, id uint) (*domain.Patient, error)
	Count(ctx context.Context) (int64, error)
}
