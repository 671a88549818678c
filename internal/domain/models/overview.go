package models

// PropertyPerformance summarizes one property's standing in the portfolio
// ranking.
type PropertyPerformance struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ROI      float64 `json:"roi"`
	CashFlow float64 `json:"cash_flow"`
}

// OverviewSummary is the portfolio-wide rollup served to dashboards. It is
// derived from the latest snapshot of each property.
type OverviewSummary struct {
	TotalProperties        int                  `json:"total_properties"`
	AverageROI             float64              `json:"average_roi"`
	AverageMonthlyCashFlow float64              `json:"average_monthly_cash_flow"`
	TotalMonthlyIncome     float64              `json:"total_monthly_income"`
	TotalMonthlyExpenses   float64              `json:"total_monthly_expenses"`
	BestPerformer          *PropertyPerformance `json:"best_performing_property"`
	WorstPerformer         *PropertyPerformance `json:"worst_performing_property"`
	RecentSnapshots        []FinancialSnapshot  `json:"recent_snapshots"`
}

// CycleSummary reports the outcome of one scheduled analytics cycle.
type CycleSummary struct {
	SnapshotsCreated int `json:"snapshots_created"`
	SnapshotErrors   int `json:"snapshot_errors"`
	GoalsUpdated     int `json:"goals_updated"`
}
