package roi

import "math"

// Input is the flat parameter set the calculator derives every metric
// from. All values are per property and annualized unless noted.
type Input struct {
	MonthlyRent              float64
	PurchasePrice            float64
	PropertyTaxRate          float64 // % of purchase price per year
	MaintenanceReservePct    float64 // % of annual rent
	VacancyRatePct           float64 // % of annual rent
	MortgageRate             float64 // % APR
	DownPaymentPct           float64 // % of purchase price
	LoanTermYears            int
	InsuranceCostMonthly     float64
	PropertyManagementFeePct float64 // % of rent
	UtilityExpensesMonthly   float64
	OtherChargesMonthly      float64
	MaintenanceCostsAnnual   float64
	RepairBudgetAnnual       float64
	RenovationBudgetAnnual   float64
}

// ExpenseBreakdown itemizes the annualized operating expenses.
type ExpenseBreakdown struct {
	Maintenance        float64 `json:"maintenance"`
	Renovation         float64 `json:"renovation"`
	Insurance          float64 `json:"insurance"`
	PropertyManagement float64 `json:"property_management"`
	Utilities          float64 `json:"utilities"`
	Other              float64 `json:"other"`
}

// Total sums every expense category.
func (b ExpenseBreakdown) Total() float64 {
	return b.Maintenance + b.Renovation + b.Insurance + b.PropertyManagement + b.Utilities + b.Other
}

// Result carries every derived metric. Percentage ratios are rounded to
// two decimals for display; cash flows and intermediate amounts are kept
// raw for downstream computation.
type Result struct {
	GrossRentalYield float64 `json:"gross_rental_yield"`
	NetRentalYield   float64 `json:"net_rental_yield"`
	CashOnCashReturn float64 `json:"cash_on_cash_return"`
	CapRate          float64 `json:"cap_rate"`
	TotalROI         float64 `json:"total_roi"`
	OccupancyRate    float64 `json:"occupancy_rate"`

	AnnualRent          float64 `json:"annual_rent"`
	TotalAnnualExpenses float64 `json:"total_annual_expenses"`
	NetOperatingIncome  float64 `json:"net_operating_income"`
	CashFlow            float64 `json:"cash_flow"`
	MonthlyCashFlow     float64 `json:"monthly_cash_flow"`
	MonthlyMortgage     float64 `json:"monthly_mortgage"`
	VacancyReserve      float64 `json:"vacancy_reserve"`
	MaintenanceReserve  float64 `json:"maintenance_reserve"`
	PropertyTax         float64 `json:"property_tax"`
	TotalInvestment     float64 `json:"total_investment"`

	Breakdown ExpenseBreakdown `json:"expense_breakdown"`
}

// Calculate derives all investment metrics from the input. It is a pure
// function: deterministic, no side effects, and it never fails on numeric
// edge cases. Undefined ratios come back as 0.
func Calculate(in Input) Result {
	annualRent := in.MonthlyRent * 12

	breakdown := ExpenseBreakdown{
		Maintenance:        in.MaintenanceCostsAnnual + in.RepairBudgetAnnual,
		Renovation:         in.RenovationBudgetAnnual,
		Insurance:          in.InsuranceCostMonthly * 12,
		PropertyManagement: in.MonthlyRent * (in.PropertyManagementFeePct / 100) * 12,
		Utilities:          in.UtilityExpensesMonthly * 12,
		Other:              in.OtherChargesMonthly * 12,
	}
	totalAnnualExpenses := breakdown.Total()

	vacancyReserve := annualRent * in.VacancyRatePct / 100
	maintenanceReserve := annualRent * in.MaintenanceReservePct / 100
	propertyTax := in.PurchasePrice * in.PropertyTaxRate / 100

	loanAmount := in.PurchasePrice * (1 - in.DownPaymentPct/100)
	monthlyMortgage := amortizedMonthlyPayment(loanAmount, in.MortgageRate, in.LoanTermYears)

	totalInvestment := in.PurchasePrice + breakdown.Renovation
	netOperatingIncome := annualRent - totalAnnualExpenses - vacancyReserve - maintenanceReserve - propertyTax
	cashFlow := netOperatingIncome - monthlyMortgage*12

	cashOnCash := 0.0
	if denom := totalInvestment * in.DownPaymentPct / 100; denom != 0 {
		cashOnCash = cashFlow / denom * 100
	}

	capRate := 0.0
	if totalInvestment != 0 {
		capRate = netOperatingIncome / totalInvestment * 100
	}

	grossYield := 0.0
	netYield := 0.0
	if in.PurchasePrice != 0 {
		grossYield = annualRent / in.PurchasePrice * 100
		netYield = netOperatingIncome / in.PurchasePrice * 100
	}

	return Result{
		GrossRentalYield: round2(grossYield),
		NetRentalYield:   round2(netYield),
		CashOnCashReturn: round2(cashOnCash),
		CapRate:          round2(capRate),
		// TotalROI intentionally mirrors CapRate; kept identical pending a
		// product decision on folding in financing effects.
		TotalROI:      round2(capRate),
		OccupancyRate: round2(100 - in.VacancyRatePct),

		AnnualRent:          annualRent,
		TotalAnnualExpenses: totalAnnualExpenses,
		NetOperatingIncome:  netOperatingIncome,
		CashFlow:            cashFlow,
		MonthlyCashFlow:     cashFlow / 12,
		MonthlyMortgage:     monthlyMortgage,
		VacancyReserve:      vacancyReserve,
		MaintenanceReserve:  maintenanceReserve,
		PropertyTax:         propertyTax,
		TotalInvestment:     totalInvestment,

		Breakdown: breakdown,
	}
}

// amortizedMonthlyPayment applies the standard annuity formula. A zero
// interest rate falls back to straight-line repayment.
func amortizedMonthlyPayment(loanAmount, annualRatePct float64, termYears int) float64 {
	if loanAmount == 0 {
		return 0
	}

	n := float64(termYears * 12)
	if n == 0 {
		return 0
	}

	monthlyRate := annualRatePct / 12 / 100
	if monthlyRate == 0 {
		return loanAmount / n
	}

	factor := math.Pow(1+monthlyRate, n)
	return loanAmount * monthlyRate * factor / (factor - 1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
