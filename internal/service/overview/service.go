package overview

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/aliouned/propfin/internal/domain/models"
	repo "github.com/aliouned/propfin/internal/repository/mongodb"
)

// trendSize is how many recent snapshots dashboards receive for the trend
// display.
const trendSize = 5

// Service derives portfolio-wide statistics from the latest snapshot of
// each property. Read-only.
type Service struct {
	properties repo.PropertyStore
	snapshots  repo.SnapshotStore
	logger     *zap.Logger
}

// NewService wires a new overview service instance.
func NewService(properties repo.PropertyStore, snapshots repo.SnapshotStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{properties: properties, snapshots: snapshots, logger: logger}
}

// Overview computes the portfolio rollup. With zero properties it returns
// an all-zero summary with no performers.
func (s *Service) Overview(ctx context.Context) (*models.OverviewSummary, error) {
	properties, err := s.properties.ListProperties(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.OverviewSummary{
		TotalProperties: len(properties),
		RecentSnapshots: []models.FinancialSnapshot{},
	}
	if len(properties) == 0 {
		return summary, nil
	}

	names := make(map[string]string, len(properties))
	for _, property := range properties {
		names[property.ID] = property.Name
	}

	// A year's worth of rows per property bounds the scan while guaranteeing
	// the newest row of every property that snapshotted in the last year is
	// included.
	recent, err := s.snapshots.RecentSnapshots(ctx, int64(len(properties))*12)
	if err != nil {
		return nil, err
	}

	if len(recent) > trendSize {
		summary.RecentSnapshots = recent[:trendSize]
	} else {
		summary.RecentSnapshots = recent
	}

	latest := latestPerProperty(recent)
	if len(latest) == 0 {
		return summary, nil
	}

	var sumROI, sumCashFlow float64
	var totalIncome, totalExpenses float64
	best, worst := 0, 0
	for i, snap := range latest {
		sumROI += snap.CashOnCashReturn
		sumCashFlow += snap.MonthlyCashFlow
		totalIncome += snap.TotalAnnualIncome / 12
		totalExpenses += snap.TotalAnnualExpenses / 12

		// Strict comparisons keep the first-encountered snapshot on ties.
		if snap.CashOnCashReturn > latest[best].CashOnCashReturn {
			best = i
		}
		if snap.CashOnCashReturn < latest[worst].CashOnCashReturn {
			worst = i
		}
	}

	count := float64(len(latest))
	summary.AverageROI = round2(sumROI / count)
	summary.AverageMonthlyCashFlow = round2(sumCashFlow / count)
	summary.TotalMonthlyIncome = round2(totalIncome)
	summary.TotalMonthlyExpenses = round2(totalExpenses)
	summary.BestPerformer = performance(latest[best], names)
	summary.WorstPerformer = performance(latest[worst], names)

	s.logger.Debug("overview computed",
		zap.Int("properties", len(properties)),
		zap.Int("snapshots", len(latest)))
	return summary, nil
}

// latestPerProperty keeps the first (newest) snapshot encountered per
// property, preserving the date-descending order of the input.
func latestPerProperty(snapshots []models.FinancialSnapshot) []models.FinancialSnapshot {
	seen := make(map[string]bool, len(snapshots))
	var latest []models.FinancialSnapshot
	for _, snap := range snapshots {
		if seen[snap.PropertyID] {
			continue
		}
		seen[snap.PropertyID] = true
		latest = append(latest, snap)
	}
	return latest
}

func performance(snap models.FinancialSnapshot, names map[string]string) *models.PropertyPerformance {
	return &models.PropertyPerformance{
		ID:       snap.PropertyID,
		Name:     names[snap.PropertyID],
		ROI:      snap.CashOnCashReturn,
		CashFlow: snap.MonthlyCashFlow,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
