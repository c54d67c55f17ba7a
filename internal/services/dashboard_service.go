// File: internal/services/dashboard_service.go
package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/aimedica/go-diagnosis/internal/domain"
	"github.com/aimedica/go-diagnosis/internal/repository/patient"
	"github.com/aimedica/go-diagnosis/internal/repository/record"
	"github.com/aimedica/go-diagnosis/internal/services/extract"
)

// Statistics is the dashboard headline block.
type Statistics struct {
	PatientCount     int64   `json:"patientCount"`
	TodayCount       int64   `json:"todayDiagnosisCount"`
	AIDiagnosisCount int64   `json:"aiDiagnosisCount"`
	AccuracyRate     float64 `json:"accuracyRate"`
}

// DiseaseCount is one slice of the disease-distribution chart.
type DiseaseCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TrendPoint is one day of the diagnosis-trend chart.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// trendDays is the window of the dashboard trend chart.
const trendDays = 7

// DashboardService aggregates over persisted diagnosis records. It is
// a read-only consumer of the pipeline's output.
type DashboardService struct {
	patients patient.PatientRepository
	records  record.RecordRepository
	logger   Logger
}

func NewDashboardService(patients patient.PatientRepository, records record.RecordRepository, logger Logger) (*DashboardService, error) {
	if patients == nil {
		return nil, errors.New("patient repository is required")
	}
	if records == nil {
		return nil, errors.New("record repository is required")
	}
	if logger == nil {
		logger = NoOpLogger{}
	}
	return &DashboardService{patients: patients, records: records, logger: logger}, nil
}

func (s *DashboardService) Statistics(ctx context.Context) (*Statistics, error) {
	patientCount, err := s.patients.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayCount, err := s.records.CountSince(ctx, todayStart)
	if err != nil {
		return nil, err
	}

	aiCount, err := s.records.CountByType(ctx, domain.DiagnosisTypeAIAssisted)
	if err != nil {
		return nil, err
	}

	accuracy, err := s.records.AverageConfirmedMatchRate(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		PatientCount:     patientCount,
		TodayCount:       todayCount,
		AIDiagnosisCount: aiCount,
		AccuracyRate:     accuracy,
	}, nil
}

// DiagnosisTrend counts diagnoses per day over the last trendDays
// days, oldest first, ending with today. Days without records appear
// with a zero count so the chart axis stays continuous.
func (s *DashboardService) DiagnosisTrend(ctx context.Context) ([]TrendPoint, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	points := make([]TrendPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		dayStart := todayStart.AddDate(0, 0, -i)
		count, err := s.records.CountBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		points = append(points, TrendPoint{
			Date:  dayStart.Format("2006-01-02"),
			Count: count,
		})
	}
	return points, nil
}

// DiseaseDistribution counts the primary disease extracted from every
// persisted result, sorted by frequency. Records whose payload matches
// no known shape are logged and skipped; one bad record never aborts
// the batch.
func (s *DashboardService) DiseaseDistribution(ctx context.Context) ([]DiseaseCount, error) {
	records, err := s.records.FindAllDiagnosed(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	skipped := 0
	for _, rec := range records {
		name, ok := extract.DiseaseName(rec.AiDiagnosis)
		if !ok {
			skipped++
			s.logger.Warn("could not extract disease name from record",
				"record_id", rec.ID, "record_no", rec.RecordNo)
			continue
		}
		counts[name]++
	}
	s.logger.Info("disease distribution computed",
		"records", len(records), "skipped", skipped, "diseases", len(counts))

	result := make([]DiseaseCount, 0, len(counts))
	for name, value := range counts {
		result = append(result, DiseaseCount{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (s *DashboardService) RecentRecords(ctx context.Context, limit int) ([]domain.DiagnosisRecord, error) {
	return s.records.FindRecent(ctx, limit)
}
