// File: internal/services/fakes_test.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/aimedica/go-diagnosis/internal/domain"
	"github.com/aimedica/go-diagnosis/internal/repository/patient"
	"github.com/aimedica/go-diagnosis/internal/repository/record"
)

type fakePatientRepo struct {
	patients map[uint]*domain.Patient
}

func newFakePatientRepo(patients ...*domain.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: make(map[uint]*domain.Patient)}
	for _, p := range patients {
		repo.patients[p.ID] = p
	}
	return repo
}

func (r *fakePatientRepo) Create(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	r.patients[p.ID] = p
	return p, nil
}

func (r *fakePatientRepo) FindByID(_ context.Context, id uint) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) Count(context.Context) (int64, error) {
	return int64(len(r.patients)), nil
}

type fakeRecordRepo struct {
	created   []*domain.DiagnosisRecord
	recent    []domain.DiagnosisRecord
	diagnosed []domain.DiagnosisRecord

	countSince  int64
	countByType int64
	matchRate   float64

	// countBetweenFn lets trend tests shape per-day counts; nil means
	// every window counts zero.
	countBetweenFn func(from, to time.Time) int64
}

func (r *fakeRecordRepo) Create(_ context.Context, rec *domain.DiagnosisRecord) (*domain.DiagnosisRecord, error) {
	rec.ID = uint(len(r.created) + 1)
	r.created = append(r.created, rec)
	return rec, nil
}

func (r *fakeRecordRepo) FindByID(_ context.Context, id uint) (*domain.DiagnosisRecord, error) {
	for _, rec := range r.created {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, record.ErrRecordNotFound
}

func (r *fakeRecordRepo) FindPage(context.Context, record.Query) ([]domain.DiagnosisRecord, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecordRepo) FindRecent(context.Context, int) ([]domain.DiagnosisRecord, error) {
	return r.recent, nil
}

func (r *fakeRecordRepo) FindAllDiagnosed(context.Context) ([]domain.DiagnosisRecord, error) {
	return r.diagnosed, nil
}

func (r *fakeRecordRepo) Confirm(context.Context, uint, string, string, *float64) error {
	return nil
}

func (r *fakeRecordRepo) Complete(context.Context, uint) error { return nil }

func (r *fakeRecordRepo) CountSince(context.Context, time.Time) (int64, error) {
	return r.countSince, nil
}

func (r *fakeRecordRepo) CountBetween(_ context.Context, from, to time.Time) (int64, error) {
	if r.countBetweenFn == nil {
		return 0, nil
	}
	return r.countBetweenFn(from, to), nil
}

func (r *fakeRecordRepo) CountByType(context.Context, int) (int64, error) {
	return r.countByType, nil
}

func (r *fakeRecordRepo) AverageConfirmedMatchRate(context.Context) (float64, error) {
	return r.matchRate, nil
}

type fakeTextProvider struct {
	reply string
	err   error
	calls int
	// last prompt seen, for assertions on prompt assembly.
	lastPrompt string
}

func (p *fakeTextProvider) Complete(_ context.Context, prompt string) (string, error) {
	p.calls++
	p.lastPrompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type fakeVisionProvider struct {
	reply     string
	err       error
	lastPaths []string
}

func (p *fakeVisionProvider) CompleteVision(_ context.Context, _ string, imagePaths []string) (string, error) {
	p.lastPaths = imagePaths
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

var errProviderDown = errors.New("provider unavailable")
