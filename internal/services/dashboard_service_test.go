// File: internal/services/dashboard_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimedica/go-diagnosis/internal/domain"
)

func TestDashboardStatistics(t *testing.T) {
	patients := newFakePatientRepo(
		&domain.Patient{ID: 1, Name: "a"},
		&domain.Patient{ID: 2, Name: "b"},
		&domain.Patient{ID: 3, Name: "c"},
	)
	records := &fakeRecordRepo{countSince: 4, countByType: 11, matchRate: 0.87}
	svc, err := NewDashboardService(patients, records, NoOpLogger{})
	require.NoError(t, err)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.PatientCount)
	assert.Equal(t, int64(4), stats.TodayCount)
	assert.Equal(t, int64(11), stats.AIDiagnosisCount)
	assert.Equal(t, 0.87, stats.AccuracyRate)
}

func TestDiagnosisTrendCoversSevenDaysOldestFirst(t *testing.T) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	records := &fakeRecordRepo{countBetweenFn: func(from, to time.Time) int64 {
		if from.Equal(todayStart) {
			return 4
		}
		if from.Equal(todayStart.AddDate(0, 0, -6)) {
			return 2
		}
		return 0
	}}
	svc, err := NewDashboardService(newFakePatientRepo(), records, NoOpLogger{})
	require.NoError(t, err)

	trend, err := svc.DiagnosisTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, trend, 7)

	assert.Equal(t, todayStart.AddDate(0, 0, -6).Format("2006-01-02"), trend[0].Date)
	assert.EqualValues(t, 2, trend[0].Count)
	for i := 1; i < 6; i++ {
		assert.Zero(t, trend[i].Count)
	}
	assert.Equal(t, todayStart.Format("2006-01-02"), trend[6].Date)
	assert.EqualValues(t, 4, trend[6].Count)
}

func TestDiseaseDistributionAcrossResultShapes(t *testing.T) {
	// Records persisted under every generation of the result schema,
	// plus one unreadable payload that must be skipped, not fatal.
	records := &fakeRecordRepo{diagnosed: []domain.DiagnosisRecord{
		{ID: 1, AiDiagnosis: `{"disease":"eczema"}`},
		{ID: 2, AiDiagnosis: `[{"name":"eczema"}]`},
		{ID: 3, AiDiagnosis: `{"name":"psoriasis"}`},
		{ID: 4, AiDiagnosis: `{"diagnosis":"eczema"}`},
		{ID: 5, AiDiagnosis: `{"result":"acne"}`},
		{ID: 6, AiDiagnosis: `{"possibleDiseases":[{"name":"psoriasis","confidence":0.9}]}`},
		{ID: 7, AiDiagnosis: `not json`},
		{ID: 8, AiDiagnosis: ""},
	}}
	svc, err := NewDashboardService(newFakePatientRepo(), records, NoOpLogger{})
	require.NoError(t, err)

	dist, err := svc.DiseaseDistribution(context.Background())
	require.NoError(t, err)

	require.Len(t, dist, 3)
	assert.Equal(t, DiseaseCount{Name: "eczema", Value: 3}, dist[0])
	assert.Equal(t, DiseaseCount{Name: "psoriasis", Value: 2}, dist[1])
	assert.Equal(t, DiseaseCount{Name: "acne", Value: 1}, dist[2])
}

func TestDiseaseDistributionTiesSortByName(t *testing.T) {
	records := &fakeRecordRepo{diagnosed: []domain.DiagnosisRecord{
		{ID: 1, AiDiagnosis: `{"disease":"urticaria"}`},
		{ID: 2, AiDiagnosis: `{"disease":"acne"}`},
	}}
	svc, err := NewDashboardService(newFakePatientRepo(), records, NoOpLogger{})
	require.NoError(t, err)

	dist, err := svc.DiseaseDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.Equal(t, "acne", dist[0].Name)
	assert.Equal(t, "urticaria", dist[1].Name)
}

func TestRecentRecordsDelegates(t *testing.T) {
	records := &fakeRecordRepo{recent: []domain.DiagnosisRecord{{ID: 9, RecordNo: "DR1"}}}
	svc, err := NewDashboardService(newFakePatientRepo(), records, NoOpLogger{})
	require.NoError(t, err)

	recent, err := svc.RecentRecords(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, uint(9), recent[0].ID)
}
