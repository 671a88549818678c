package models

import "time"

// FinancialSnapshot is an immutable monthly record of computed investment
// metrics for one property. SnapshotDate is always the first day of the
// month; at most one snapshot exists per (PropertyID, SnapshotDate).
type FinancialSnapshot struct {
	PropertyID          string             `bson:"property_id" json:"property_id"`
	SnapshotDate        time.Time          `bson:"snapshot_date" json:"snapshot_date"`
	GrossRentalYield    float64            `bson:"gross_rental_yield" json:"gross_rental_yield"`
	NetRentalYield      float64            `bson:"net_rental_yield" json:"net_rental_yield"`
	CashOnCashReturn    float64            `bson:"cash_on_cash_return" json:"cash_on_cash_return"`
	CapRate             float64            `bson:"cap_rate" json:"cap_rate"`
	TotalROI            float64            `bson:"total_roi" json:"total_roi"`
	MonthlyCashFlow     float64            `bson:"monthly_cash_flow" json:"monthly_cash_flow"`
	TotalAnnualIncome   float64            `bson:"total_annual_income" json:"total_annual_income"`
	TotalAnnualExpenses float64            `bson:"total_annual_expenses" json:"total_annual_expenses"`
	OccupancyRate       float64            `bson:"occupancy_rate" json:"occupancy_rate"`
	Metadata            map[string]float64 `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}

// BatchResult reports the outcome of a batch run with per-item isolation.
type BatchResult struct {
	Success int `json:"success"`
	Errors  int `json:"errors"`
}
