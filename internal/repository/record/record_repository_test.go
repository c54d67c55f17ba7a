// File: internal/repository/record/record_repository_test.go
package record

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aimedica/go-diagnosis/internal/domain"
)

func newTestRepo(t *testing.T) RecordRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.DiagnosisRecord{}))
	return NewRecordRepository(db)
}

func seedRecord(t *testing.T, repo RecordRepository, n int, mutate func(*domain.DiagnosisRecord)) *domain.DiagnosisRecord {
	t.Helper()
	rec := &domain.DiagnosisRecord{
		RecordNo:    fmt.Sprintf("DR%013d%04d", 1700000000000+n, n),
		PatientID:   1,
		PatientName: "Alice Zhang",
		AiDiagnosis: `{"disease":"eczema"}`,
	}
	if mutate != nil {
		mutate(rec)
	}
	created, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)
	return created
}

func TestCreateAndFindByID(t *testing.T) {
	repo := newTestRepo(t)
	created := seedRecord(t, repo, 1, nil)
	require.NotZero(t, created.ID)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.RecordNo, found.RecordNo)
	assert.Equal(t, domain.RecordStatusPending, found.Status)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Create(context.Background(), nil)
	assert.Error(t, err)

	_, err = repo.Create(context.Background(), &domain.DiagnosisRecord{RecordNo: "DR1"})
	assert.Error(t, err)

	_, err = repo.Create(context.Background(), &domain.DiagnosisRecord{PatientID: 1})
	assert.Error(t, err)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestFindPageFilters(t *testing.T) {
	repo := newTestRepo(t)
	for i := 0; i < 3; i++ {
		seedRecord(t, repo, i, nil)
	}
	seedRecord(t, repo, 10, func(r *domain.DiagnosisRecord) {
		r.PatientName = "Bob Li"
		r.Status = domain.RecordStatusConfirmed
	})

	records, total, err := repo.FindPage(context.Background(), Query{PatientName: "Alice"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, records, 3)

	confirmed := domain.RecordStatusConfirmed
	records, total, err = repo.FindPage(context.Background(), Query{Status: &confirmed})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "Bob Li", records[0].PatientName)
}

func TestFindPagePagination(t *testing.T) {
	repo := newTestRepo(t)
	for i := 0; i < 5; i++ {
		seedRecord(t, repo, i, nil)
	}

	records, total, err := repo.FindPage(context.Background(), Query{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, records, 1)

	// Out-of-range limits fall back to the default page size.
	records, _, err = repo.FindPage(context.Background(), Query{Limit: -3})
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestConfirmAndCompleteWorkflow(t *testing.T) {
	repo := newTestRepo(t)
	rec := seedRecord(t, repo, 1, nil)
	ctx := context.Background()

	// Pending records cannot be completed directly.
	assert.ErrorIs(t, repo.Complete(ctx, rec.ID), ErrInvalidTransition)

	rate := 0.8
	require.NoError(t, repo.Confirm(ctx, rec.ID, "atopic dermatitis", "topical steroids", &rate))

	confirmed, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecordStatusConfirmed, confirmed.Status)
	assert.Equal(t, "atopic dermatitis", confirmed.DoctorDiagnosis)
	assert.Equal(t, "topical steroids", confirmed.TreatmentPlan)
	require.NotNil(t, confirmed.MatchRate)
	assert.Equal(t, 0.8, *confirmed.MatchRate)

	// Confirming twice is rejected.
	assert.ErrorIs(t, repo.Confirm(ctx, rec.ID, "x", "y", nil), ErrInvalidTransition)

	require.NoError(t, repo.Complete(ctx, rec.ID))
	completed, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecordStatusCompleted, completed.Status)

	assert.ErrorIs(t, repo.Complete(ctx, rec.ID), ErrInvalidTransition)
}

func TestCountersAndAverages(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedRecord(t, repo, 1, nil)
	seedRecord(t, repo, 2, func(r *domain.DiagnosisRecord) {
		r.DiagnosisType = domain.DiagnosisTypeImageAnalysis
	})
	third := seedRecord(t, repo, 3, nil)

	count, err := repo.CountSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = repo.CountSince(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountByType(ctx, domain.DiagnosisTypeAIAssisted)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountBetween(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = repo.CountBetween(ctx, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, count)

	// No confirmed records yet: the average is defined as zero.
	avg, err := repo.AverageConfirmedMatchRate(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)

	rate := 0.9
	require.NoError(t, repo.Confirm(ctx, third.ID, "eczema", "emollients", &rate))
	avg, err = repo.AverageConfirmedMatchRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.9, avg)
}

func TestFindAllDiagnosedSkipsEmptyPayloads(t *testing.T) {
	repo := newTestRepo(t)
	seedRecord(t, repo, 1, nil)
	seedRecord(t, repo, 2, func(r *domain.DiagnosisRecord) { r.AiDiagnosis = "" })

	records, err := repo.FindAllDiagnosed(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
