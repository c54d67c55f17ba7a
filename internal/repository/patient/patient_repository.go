// File: internal/repository/patient/patient_repository.go
package patient

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/aimedica/go-diagnosis/internal/domain"
)

var ErrPatientNotFound = errors.New("patient not found")

type gormPatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &gormPatientRepository{db: db}
}

func (r *gormPatientRepository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	if p == nil {
		return nil, errors.New("patient cannot be nil")
	}
	if err := p.IsValid(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Printf("[PatientRepository] database error creating patient: %v", err)
		return nil, errors.New("database error creating patient")
	}
	return p, nil
}

func (r *gormPatientRepository) FindByID(ctx context.Context, id uint) (*domain.Patient, error) {
	if id == 0 {
		return nil, errors.New("invalid patient ID")
	}
	var p domain.Patient
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		log.Printf("[PatientRepository] database error finding patient %d: %v", id, err)
		return nil, errors.New("database query failed")
	}
	return &p, nil
}

func (r *gormPatientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Patient{}).Count(&count).Error
	if err != nil {
		log.Printf("[PatientRepository] database error counting patients: %v", err)
		return 0, errors.New("database error counting patients")
	}
	return count, nil
}
