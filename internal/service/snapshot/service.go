package snapshot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aliouned/propfin/internal/domain/models"
	repo "github.com/aliouned/propfin/internal/repository/mongodb"
	"github.com/aliouned/propfin/internal/service/roi"
)

// DataAssembler provides the calculator input for a property.
type DataAssembler interface {
	PropertyFinancialData(ctx context.Context, propertyID string) (roi.Input, error)
}

// Service creates monthly metric snapshots and drives the batch job.
type Service struct {
	assembler  DataAssembler
	properties repo.PropertyStore
	snapshots  repo.SnapshotStore
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a new snapshot service instance.
func NewService(assembler DataAssembler, properties repo.PropertyStore, snapshots repo.SnapshotStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		assembler:  assembler,
		properties: properties,
		snapshots:  snapshots,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateSnapshot computes current metrics for the property and persists
// them under the first day of asOf's month. A zero asOf means now. Writing
// the same month twice replaces the earlier row.
func (s *Service) CreateSnapshot(ctx context.Context, propertyID string, asOf time.Time) (*models.FinancialSnapshot, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}

	input, err := s.assembler.PropertyFinancialData(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	result := roi.Calculate(input)

	snap := &models.FinancialSnapshot{
		PropertyID:          propertyID,
		SnapshotDate:        monthStart(asOf),
		GrossRentalYield:    result.GrossRentalYield,
		NetRentalYield:      result.NetRentalYield,
		CashOnCashReturn:    result.CashOnCashReturn,
		CapRate:             result.CapRate,
		TotalROI:            result.TotalROI,
		MonthlyCashFlow:     result.MonthlyCashFlow,
		TotalAnnualIncome:   result.AnnualRent,
		TotalAnnualExpenses: result.TotalAnnualExpenses,
		OccupancyRate:       result.OccupancyRate,
		Metadata: map[string]float64{
			"property_tax_rate":       input.PropertyTaxRate,
			"maintenance_reserve_pct": input.MaintenanceReservePct,
			"vacancy_rate_pct":        input.VacancyRatePct,
			"mortgage_rate":           input.MortgageRate,
			"down_payment_pct":        input.DownPaymentPct,
			"loan_term_years":         float64(input.LoanTermYears),
		},
		CreatedAt: s.now().UTC(),
	}

	if err := s.snapshots.UpsertSnapshot(ctx, snap); err != nil {
		return nil, err
	}

	s.logger.Info("snapshot created",
		zap.String("property_id", propertyID),
		zap.Time("snapshot_date", snap.SnapshotDate),
		zap.Float64("cap_rate", snap.CapRate))
	return snap, nil
}

// GenerateMonthlySnapshots snapshots every property sequentially. A
// failure for one property is logged and counted without aborting the
// batch; only a failure to enumerate properties is fatal.
func (s *Service) GenerateMonthlySnapshots(ctx context.Context) (models.BatchResult, error) {
	properties, err := s.properties.ListProperties(ctx)
	if err != nil {
		return models.BatchResult{}, err
	}

	var result models.BatchResult
	asOf := s.now()
	for _, property := range properties {
		if _, err := s.CreateSnapshot(ctx, property.ID, asOf); err != nil {
			s.logger.Error("snapshot failed",
				zap.String("property_id", property.ID),
				zap.Error(err))
			result.Errors++
			continue
		}
		result.Success++
	}

	s.logger.Info("monthly snapshot batch finished",
		zap.Int("success", result.Success),
		zap.Int("errors", result.Errors))
	return result, nil
}

// History returns the property's snapshots for the last months months,
// newest first. Non-positive months defaults to 12.
func (s *Service) History(ctx context.Context, propertyID string, months int) ([]models.FinancialSnapshot, error) {
	if months <= 0 {
		months = 12
	}

	if _, err := s.properties.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	since := monthStart(s.now()).AddDate(0, -(months - 1), 0)
	return s.snapshots.SnapshotsForProperty(ctx, propertyID, since)
}

// monthStart truncates t to the first day of its month, in UTC.
func monthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
