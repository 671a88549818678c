package roi

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliouned/propfin/internal/config"
	"github.com/aliouned/propfin/internal/domain/models"
	repo "github.com/aliouned/propfin/internal/repository/mongodb"
)

const maintenanceCategory = "maintenance"

// Assembler gathers property attributes and aggregated ledger costs into
// the calculator's input shape, and records new ledger facts.
type Assembler struct {
	properties  repo.PropertyStore
	entries     repo.EntryStore
	assumptions config.Assumptions
	logger      *zap.Logger
	now         func() time.Time
}

// NewAssembler wires a new assembler instance.
func NewAssembler(properties repo.PropertyStore, entries repo.EntryStore, assumptions config.Assumptions, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		properties:  properties,
		entries:     entries,
		assumptions: assumptions,
		logger:      logger,
		now:         time.Now,
	}
}

// PropertyFinancialData builds the calculator input for one property. The
// maintenance cost comes from summing the property's maintenance expense
// entries; rate parameters come from the configured assumptions.
// Insurance, utilities and other charges stay at zero until the ledger
// carries those categories.
func (a *Assembler) PropertyFinancialData(ctx context.Context, propertyID string) (Input, error) {
	property, err := a.properties.GetProperty(ctx, propertyID)
	if err != nil {
		return Input{}, err
	}

	maintenance, err := a.entries.SumExpenses(ctx, propertyID, maintenanceCategory, models.EntryExpense)
	if err != nil {
		return Input{}, fmt.Errorf("sum maintenance expenses: %w", err)
	}

	a.logger.Debug("assembled financial data",
		zap.String("property_id", propertyID),
		zap.Float64("maintenance_costs", maintenance))

	return Input{
		MonthlyRent:            property.MonthlyRent,
		PurchasePrice:          property.PurchasePrice,
		PropertyTaxRate:        a.assumptions.PropertyTaxRate,
		MaintenanceReservePct:  a.assumptions.MaintenanceReservePct,
		VacancyRatePct:         a.assumptions.VacancyRatePct,
		MortgageRate:           a.assumptions.MortgageRate,
		DownPaymentPct:         a.assumptions.DownPaymentPct,
		LoanTermYears:          a.assumptions.LoanTermYears,
		MaintenanceCostsAnnual: maintenance,
	}, nil
}

// RecordRentPayment appends a recurring monthly income entry linked to the
// paying tenant. Snapshots are not touched; the amount is picked up by the
// next snapshot cycle.
func (a *Assembler) RecordRentPayment(ctx context.Context, tenantID, propertyID string, amount float64, date time.Time) (*models.FinancialEntry, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if date.IsZero() {
		date = a.now().UTC()
	}

	entry := &models.FinancialEntry{
		PropertyID: propertyID,
		Date:       date,
		Type:       models.EntryIncome,
		Category:   "rent",
		Amount:     amount,
		Recurring:  true,
		Frequency:  "monthly",
		Source:     models.SourceRent,
		RelatedID:  tenantID,
		CreatedAt:  a.now().UTC(),
	}

	if err := a.entries.InsertEntry(ctx, entry); err != nil {
		return nil, err
	}

	a.logger.Info("rent payment recorded",
		zap.String("property_id", propertyID),
		zap.String("tenant_id", tenantID),
		zap.Float64("amount", amount))
	return entry, nil
}

// RecordMaintenanceExpense appends a one-off expense entry linked to the
// maintenance ticket.
func (a *Assembler) RecordMaintenanceExpense(ctx context.Context, maintenanceID, propertyID string, amount float64, date time.Time) (*models.FinancialEntry, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if date.IsZero() {
		date = a.now().UTC()
	}

	entry := &models.FinancialEntry{
		PropertyID: propertyID,
		Date:       date,
		Type:       models.EntryExpense,
		Category:   maintenanceCategory,
		Amount:     amount,
		Recurring:  false,
		Source:     models.SourceMaintenance,
		RelatedID:  maintenanceID,
		CreatedAt:  a.now().UTC(),
	}

	if err := a.entries.InsertEntry(ctx, entry); err != nil {
		return nil, err
	}

	a.logger.Info("maintenance expense recorded",
		zap.String("property_id", propertyID),
		zap.String("maintenance_id", maintenanceID),
		zap.Float64("amount", amount))
	return entry, nil
}
