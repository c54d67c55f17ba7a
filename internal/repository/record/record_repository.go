// File: internal/repository/record/record_repository.go
package record

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/aimedica/go-diagnosis/internal/domain"
)

var ErrRecordNotFound = errors.New("diagnosis record not found")
var ErrInvalidTransition = errors.New("invalid record status transition")

type gormRecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &gormRecordRepository{db: db}
}

func (r *gormRecordRepository) Create(ctx context.Context, rec *domain.DiagnosisRecord) (*domain.DiagnosisRecord, error) {
	if rec == nil || rec.PatientID == 0 || rec.RecordNo == "" {
		return nil, errors.New("record requires a patient ID and a record number")
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		log.Printf("[RecordRepository] database error creating record %s: %v", rec.RecordNo, err)
		return nil, errors.New("database error creating diagnosis record")
	}
	return rec, nil
}

func (r *gormRecordRepository) FindByID(ctx context.Context, id uint) (*domain.DiagnosisRecord, error) {
	if id == 0 {
		return nil, errors.New("invalid record ID")
	}
	var rec domain.DiagnosisRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		log.Printf("[RecordRepository] database error finding record %d: %v", id, err)
		return nil, errors.New("database query failed")
	}
	return &rec, nil
}

func (r *gormRecordRepository) FindPage(ctx context.Context, q Query) ([]domain.DiagnosisRecord, int64, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 10
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	tx := r.db.WithContext(ctx).Model(&domain.DiagnosisRecord{})
	if q.PatientName != "" {
		tx = tx.Where("patient_name LIKE ?", "%"+q.PatientName+"%")
	}
	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Printf("[RecordRepository] database error counting records: %v", err)
		return nil, 0, errors.New("database error counting records")
	}

	var records []domain.DiagnosisRecord
	err := tx.Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&records).Error
	if err != nil {
		log.Printf("[RecordRepository] database error in paginated query: %v", err)
		return nil, 0, errors.New("database error retrieving records")
	}
	return records, total, nil
}

func (r *gormRecordRepository) FindRecent(ctx context.Context, limit int) ([]domain.DiagnosisRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 5
	}
	var records []domain.DiagnosisRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		log.Printf("[RecordRepository] database error finding recent records: %v", err)
		return nil, errors.New("database error finding recent records")
	}
	return records, nil
}

// FindAllDiagnosed returns every record carrying a serialized AI
// diagnosis, for offline analytics.
func (r *gormRecordRepository) FindAllDiagnosed(ctx context.Context) ([]domain.DiagnosisRecord, error) {
	var records []domain.DiagnosisRecord
	err := r.db.WithContext(ctx).
		Where("ai_diagnosis <> ''").
		Find(&records).Error
	if err != nil {
		log.Printf("[RecordRepository] database error loading diagnosed records: %v", err)
		return nil, errors.New("database error loading diagnosed records")
	}
	return records, nil
}

func (r *gormRecordRepository) Confirm(ctx context.Context, id uint, doctorDiagnosis, treatmentPlan string, matchRate *float64) error {
	rec, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !rec.CanConfirm() {
		return ErrInvalidTransition
	}

	updates := map[string]interface{}{
		"status":           domain.RecordStatusConfirmed,
		"doctor_diagnosis": doctorDiagnosis,
		"treatment_plan":   treatmentPlan,
	}
	if matchRate != nil {
		updates["match_rate"] = *matchRate
	}
	if err := r.db.WithContext(ctx).Model(&domain.DiagnosisRecord{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		log.Printf("[RecordRepository] database error confirming record %d: %v", id, err)
		return errors.New("database error confirming record")
	}
	return nil
}

func (r *gormRecordRepository) Complete(ctx context.Context, id uint) error {
	rec, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !rec.CanComplete() {
		return ErrInvalidTransition
	}
	if err := r.db.WithContext(ctx).Model(&domain.DiagnosisRecord{}).
		Where("id = ?", id).
		Update("status", domain.RecordStatusCompleted).Error; err != nil {
		log.Printf("[RecordRepository] database error completing record %d: %v", id, err)
		return errors.New("database error completing record")
	}
	return nil
}

func (r *gormRecordRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DiagnosisRecord{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		log.Printf("[RecordRepository] database error counting records since %v: %v", since, err)
		return 0, errors.New("database error counting records")
	}
	return count, nil
}

// CountBetween counts records created in the half-open interval
// [from, to).
func (r *gormRecordRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DiagnosisRecord{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		log.Printf("[RecordRepository] database error counting records between %v and %v: %v", from, to, err)
		return 0, errors.New("database error counting records")
	}
	return count, nil
}

func (r *gormRecordRepository) CountByType(ctx context.Context, diagnosisType int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DiagnosisRecord{}).
		Where("diagnosis_type = ?", diagnosisType).
		Count(&count).Error
	if err != nil {
		log.Printf("[RecordRepository] database error counting records by type %d: %v", diagnosisType, err)
		return 0, errors.New("database error counting records")
	}
	return count, nil
}

// AverageConfirmedMatchRate averages the clinician-assessed match rate
// over confirmed records; 0 when none exist.
func (r *gormRecordRepository) AverageConfirmedMatchRate(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&domain.DiagnosisRecord{}).
		Select("AVG(match_rate)").
		Where("status = ? AND match_rate IS NOT NULL", domain.RecordStatusConfirmed).
		Scan(&avg).Error
	if err != nil {
		log.Printf("[RecordRepository] database error averaging match rate: %v", err)
		return 0, errors.New("database error averaging match rate")
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
