package roi

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliouned/propfin/internal/config"
	"github.com/aliouned/propfin/internal/domain/models"
)

// --- mock implementations ---

type memPropertyStore struct {
	properties map[string]models.Property
}

func (m *memPropertyStore) GetProperty(_ context.Context, id string) (*models.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return nil, models.ErrPropertyNotFound
	}
	return &p, nil
}

func (m *memPropertyStore) ListProperties(_ context.Context) ([]models.Property, error) {
	var out []models.Property
	for _, p := range m.properties {
		out = append(out, p)
	}
	return out, nil
}

type memEntryStore struct {
	entries   []models.FinancialEntry
	insertErr error
	sumErr    error
}

func (m *memEntryStore) InsertEntry(_ context.Context, entry *models.FinancialEntry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memEntryStore) SumExpenses(_ context.Context, propertyID, category string, entryType models.EntryType) (float64, error) {
	if m.sumErr != nil {
		return 0, m.sumErr
	}
	var total float64
	for _, e := range m.entries {
		if e.PropertyID == propertyID && e.Category == category && e.Type == entryType {
			total += e.Amount
		}
	}
	return total, nil
}

func testAssumptions() config.Assumptions {
	return config.Assumptions{
		PropertyTaxRate:       1.2,
		MaintenanceReservePct: 5,
		VacancyRatePct:        5,
		MortgageRate:          3.5,
		DownPaymentPct:        20,
		LoanTermYears:         25,
	}
}

func newTestAssembler(props *memPropertyStore, entries *memEntryStore) *Assembler {
	a := NewAssembler(props, entries, testAssumptions(), nil)
	a.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	return a
}

func TestPropertyFinancialData(t *testing.T) {
	props := &memPropertyStore{properties: map[string]models.Property{
		"p1": {ID: "p1", Name: "Rue Verte 12", MonthlyRent: 1500, PurchasePrice: 300000},
	}}
	entries := &memEntryStore{entries: []models.FinancialEntry{
		{PropertyID: "p1", Type: models.EntryExpense, Category: "maintenance", Amount: 400},
		{PropertyID: "p1", Type: models.EntryExpense, Category: "maintenance", Amount: 350},
		{PropertyID: "p1", Type: models.EntryIncome, Category: "rent", Amount: 1500},
		{PropertyID: "p2", Type: models.EntryExpense, Category: "maintenance", Amount: 9999},
	}}
	assembler := newTestAssembler(props, entries)

	input, err := assembler.PropertyFinancialData(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 1500.0, input.MonthlyRent)
	assert.Equal(t, 300000.0, input.PurchasePrice)
	assert.Equal(t, 750.0, input.MaintenanceCostsAnnual)
	assert.Equal(t, 1.2, input.PropertyTaxRate)
	assert.Equal(t, 5.0, input.VacancyRatePct)
	assert.Equal(t, 25, input.LoanTermYears)
	// Defaults pending richer ledger integration.
	assert.Equal(t, 0.0, input.InsuranceCostMonthly)
	assert.Equal(t, 0.0, input.UtilityExpensesMonthly)
	assert.Equal(t, 0.0, input.OtherChargesMonthly)
}

func TestPropertyFinancialDataUnknownProperty(t *testing.T) {
	assembler := newTestAssembler(&memPropertyStore{properties: map[string]models.Property{}}, &memEntryStore{})

	_, err := assembler.PropertyFinancialData(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrPropertyNotFound)
}

func TestPropertyFinancialDataSumFailure(t *testing.T) {
	props := &memPropertyStore{properties: map[string]models.Property{"p1": {ID: "p1"}}}
	entries := &memEntryStore{sumErr: fmt.Errorf("store down")}
	assembler := newTestAssembler(props, entries)

	_, err := assembler.PropertyFinancialData(context.Background(), "p1")
	assert.Error(t, err)
}

func TestRecordRentPayment(t *testing.T) {
	entries := &memEntryStore{}
	assembler := newTestAssembler(&memPropertyStore{}, entries)

	paymentDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	entry, err := assembler.RecordRentPayment(context.Background(), "tenant-1", "p1", 1500, paymentDate)
	require.NoError(t, err)

	assert.Equal(t, models.EntryIncome, entry.Type)
	assert.Equal(t, "rent", entry.Category)
	assert.Equal(t, models.SourceRent, entry.Source)
	assert.True(t, entry.Recurring)
	assert.Equal(t, "monthly", entry.Frequency)
	assert.Equal(t, "tenant-1", entry.RelatedID)
	assert.Equal(t, paymentDate, entry.Date)
	require.Len(t, entries.entries, 1)
}

func TestRecordRentPaymentDefaultsDateToNow(t *testing.T) {
	assembler := newTestAssembler(&memPropertyStore{}, &memEntryStore{})

	entry, err := assembler.RecordRentPayment(context.Background(), "tenant-1", "p1", 1500, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), entry.Date)
}

func TestRecordRentPaymentRejectsNonPositiveAmount(t *testing.T) {
	assembler := newTestAssembler(&memPropertyStore{}, &memEntryStore{})

	for _, amount := range []float64{0, -50} {
		_, err := assembler.RecordRentPayment(context.Background(), "tenant-1", "p1", amount, time.Time{})
		assert.ErrorIs(t, err, models.ErrInvalidAmount)
	}
}

func TestRecordMaintenanceExpense(t *testing.T) {
	entries := &memEntryStore{}
	assembler := newTestAssembler(&memPropertyStore{}, entries)

	entry, err := assembler.RecordMaintenanceExpense(context.Background(), "ticket-9", "p1", 420, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, models.EntryExpense, entry.Type)
	assert.Equal(t, "maintenance", entry.Category)
	assert.Equal(t, models.SourceMaintenance, entry.Source)
	assert.False(t, entry.Recurring)
	assert.Empty(t, entry.Frequency)
	assert.Equal(t, "ticket-9", entry.RelatedID)
}

func TestRecordedMaintenanceFeedsAssembledData(t *testing.T) {
	props := &memPropertyStore{properties: map[string]models.Property{"p1": {ID: "p1", MonthlyRent: 1000, PurchasePrice: 200000}}}
	entries := &memEntryStore{}
	assembler := newTestAssembler(props, entries)

	_, err := assembler.RecordMaintenanceExpense(context.Background(), "ticket-1", "p1", 300, time.Time{})
	require.NoError(t, err)
	_, err = assembler.RecordMaintenanceExpense(context.Background(), "ticket-2", "p1", 200, time.Time{})
	require.NoError(t, err)

	input, err := assembler.PropertyFinancialData(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, input.MaintenanceCostsAnnual)
}
