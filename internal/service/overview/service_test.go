package overview

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliouned/propfin/internal/domain/models"
)

// --- mock implementations ---

type memPropertyStore struct {
	properties []models.Property
	listErr    error
}

func (m *memPropertyStore) GetProperty(_ context.Context, id string) (*models.Property, error) {
	for _, p := range m.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, models.ErrPropertyNotFound
}

func (m *memPropertyStore) ListProperties(_ context.Context) ([]models.Property, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.properties, nil
}

// memSnapshotStore serves snapshots in the order provided, which tests keep
// date-descending to mirror the real store's sort.
type memSnapshotStore struct {
	snapshots []models.FinancialSnapshot
	lastLimit int64
}

func (m *memSnapshotStore) UpsertSnapshot(_ context.Context, _ *models.FinancialSnapshot) error {
	return nil
}

func (m *memSnapshotStore) SnapshotsForProperty(_ context.Context, propertyID string, _ time.Time) ([]models.FinancialSnapshot, error) {
	var out []models.FinancialSnapshot
	for _, s := range m.snapshots {
		if s.PropertyID == propertyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSnapshotStore) RecentSnapshots(_ context.Context, limit int64) ([]models.FinancialSnapshot, error) {
	m.lastLimit = limit
	if int64(len(m.snapshots)) > limit {
		return m.snapshots[:limit], nil
	}
	return m.snapshots, nil
}

func monthDate(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func TestOverviewZeroProperties(t *testing.T) {
	svc := NewService(&memPropertyStore{}, &memSnapshotStore{}, nil)

	summary, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalProperties)
	assert.Equal(t, 0.0, summary.AverageROI)
	assert.Nil(t, summary.BestPerformer)
	assert.Nil(t, summary.WorstPerformer)
	assert.Empty(t, summary.RecentSnapshots)
}

func TestOverviewUsesLatestSnapshotPerProperty(t *testing.T) {
	props := &memPropertyStore{properties: []models.Property{
		{ID: "p1", Name: "Rue Verte 12"},
		{ID: "p2", Name: "Quai Nord 3"},
	}}
	snaps := &memSnapshotStore{snapshots: []models.FinancialSnapshot{
		{PropertyID: "p1", SnapshotDate: monthDate(2024, 3), CashOnCashReturn: 8, MonthlyCashFlow: 400, TotalAnnualIncome: 18000, TotalAnnualExpenses: 6000},
		{PropertyID: "p2", SnapshotDate: monthDate(2024, 3), CashOnCashReturn: 2, MonthlyCashFlow: 100, TotalAnnualIncome: 12000, TotalAnnualExpenses: 4800},
		// Stale rows that must be ignored.
		{PropertyID: "p1", SnapshotDate: monthDate(2024, 2), CashOnCashReturn: -5, MonthlyCashFlow: -900},
		{PropertyID: "p2", SnapshotDate: monthDate(2024, 1), CashOnCashReturn: 99, MonthlyCashFlow: 9999},
	}}
	svc := NewService(props, snaps, nil)

	summary, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalProperties)
	assert.Equal(t, 5.0, summary.AverageROI)
	assert.Equal(t, 250.0, summary.AverageMonthlyCashFlow)
	assert.Equal(t, 2500.0, summary.TotalMonthlyIncome)
	assert.Equal(t, 900.0, summary.TotalMonthlyExpenses)

	require.NotNil(t, summary.BestPerformer)
	assert.Equal(t, "p1", summary.BestPerformer.ID)
	assert.Equal(t, "Rue Verte 12", summary.BestPerformer.Name)
	assert.Equal(t, 8.0, summary.BestPerformer.ROI)
	require.NotNil(t, summary.WorstPerformer)
	assert.Equal(t, "p2", summary.WorstPerformer.ID)
}

func TestOverviewTiesKeepFirstEncountered(t *testing.T) {
	props := &memPropertyStore{properties: []models.Property{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}}
	snaps := &memSnapshotStore{snapshots: []models.FinancialSnapshot{
		{PropertyID: "p1", SnapshotDate: monthDate(2024, 3), CashOnCashReturn: 4},
		{PropertyID: "p2", SnapshotDate: monthDate(2024, 3), CashOnCashReturn: 4},
		{PropertyID: "p3", SnapshotDate: monthDate(2024, 3), CashOnCashReturn: 4},
	}}
	svc := NewService(props, snaps, nil)

	summary, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// An all-equal portfolio reports the same property on both bounds.
	require.NotNil(t, summary.BestPerformer)
	require.NotNil(t, summary.WorstPerformer)
	assert.Equal(t, "p1", summary.BestPerformer.ID)
	assert.Equal(t, "p1", summary.WorstPerformer.ID)
}

func TestOverviewRecentSnapshotsCapped(t *testing.T) {
	props := &memPropertyStore{properties: []models.Property{{ID: "p1"}}}
	var rows []models.FinancialSnapshot
	for i := 0; i < 9; i++ {
		rows = append(rows, models.FinancialSnapshot{
			PropertyID:   "p1",
			SnapshotDate: monthDate(2024, 12).AddDate(0, -i, 0),
		})
	}
	snaps := &memSnapshotStore{snapshots: rows}
	svc := NewService(props, snaps, nil)

	summary, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Len(t, summary.RecentSnapshots, 5)
	assert.Equal(t, monthDate(2024, 12), summary.RecentSnapshots[0].SnapshotDate)
	assert.Equal(t, int64(12), snaps.lastLimit)
}

func TestOverviewPropertiesWithoutSnapshots(t *testing.T) {
	props := &memPropertyStore{properties: []models.Property{{ID: "p1"}}}
	svc := NewService(props, &memSnapshotStore{}, nil)

	summary, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalProperties)
	assert.Equal(t, 0.0, summary.AverageROI)
	assert.Nil(t, summary.BestPerformer)
	assert.Nil(t, summary.WorstPerformer)
}

func TestOverviewListFailure(t *testing.T) {
	props := &memPropertyStore{listErr: fmt.Errorf("store down")}
	svc := NewService(props, &memSnapshotStore{}, nil)

	_, err := svc.Overview(context.Background())
	assert.Error(t, err)
}
