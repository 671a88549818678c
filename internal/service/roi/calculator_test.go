package roi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() Input {
	return Input{
		MonthlyRent:    1500,
		PurchasePrice:  300000,
		VacancyRatePct: 5,
		MortgageRate:   3.5,
		DownPaymentPct: 20,
		LoanTermYears:  25,
	}
}

func TestCalculateExampleScenario(t *testing.T) {
	result := Calculate(baseInput())

	assert.InDelta(t, 6.00, result.GrossRentalYield, 0.001)
	assert.Equal(t, 95.0, result.OccupancyRate)
	assert.Equal(t, 18000.0, result.AnnualRent)
	assert.Equal(t, 900.0, result.VacancyReserve)
	assert.Equal(t, 300000.0, result.TotalInvestment)
}

func TestCalculateZeroMortgageRateStraightLine(t *testing.T) {
	in := baseInput()
	in.MortgageRate = 0

	result := Calculate(in)

	// loan = 300000 * 0.8 = 240000 over 300 months
	assert.InDelta(t, 800.0, result.MonthlyMortgage, 0.001)
}

func TestCalculateZeroLoanAmount(t *testing.T) {
	in := baseInput()
	in.DownPaymentPct = 100

	result := Calculate(in)

	assert.Equal(t, 0.0, result.MonthlyMortgage)
}

func TestCalculateZeroDownPaymentNoDivisionByZero(t *testing.T) {
	in := baseInput()
	in.DownPaymentPct = 0

	result := Calculate(in)

	assert.Equal(t, 0.0, result.CashOnCashReturn)
	assert.False(t, math.IsNaN(result.CashFlow))
}

func TestCalculateZeroPurchasePrice(t *testing.T) {
	result := Calculate(Input{MonthlyRent: 1000, LoanTermYears: 25})

	assert.Equal(t, 0.0, result.GrossRentalYield)
	assert.Equal(t, 0.0, result.NetRentalYield)
	assert.Equal(t, 0.0, result.MonthlyMortgage)
	assert.Equal(t, 0.0, result.CashOnCashReturn)
}

func TestCalculateTotalROIEqualsCapRate(t *testing.T) {
	inputs := []Input{
		baseInput(),
		{MonthlyRent: 900, PurchasePrice: 120000, PropertyTaxRate: 1.2, VacancyRatePct: 8, MortgageRate: 4.1, DownPaymentPct: 30, LoanTermYears: 20},
		{MonthlyRent: 2500, PurchasePrice: 650000, MaintenanceReservePct: 5, DownPaymentPct: 20, LoanTermYears: 30, RenovationBudgetAnnual: 15000},
	}

	for _, in := range inputs {
		result := Calculate(in)
		assert.Equal(t, result.CapRate, result.TotalROI)
	}
}

func TestCalculateExpenseBreakdown(t *testing.T) {
	in := baseInput()
	in.MaintenanceCostsAnnual = 1200
	in.RepairBudgetAnnual = 300
	in.RenovationBudgetAnnual = 5000
	in.InsuranceCostMonthly = 50
	in.PropertyManagementFeePct = 8
	in.UtilityExpensesMonthly = 100
	in.OtherChargesMonthly = 25

	result := Calculate(in)

	assert.Equal(t, 1500.0, result.Breakdown.Maintenance)
	assert.Equal(t, 5000.0, result.Breakdown.Renovation)
	assert.Equal(t, 600.0, result.Breakdown.Insurance)
	assert.InDelta(t, 1440.0, result.Breakdown.PropertyManagement, 0.001)
	assert.Equal(t, 1200.0, result.Breakdown.Utilities)
	assert.Equal(t, 300.0, result.Breakdown.Other)
	assert.InDelta(t, result.Breakdown.Total(), result.TotalAnnualExpenses, 0.001)
	assert.Equal(t, 305000.0, result.TotalInvestment)
}

func TestCalculateIsDeterministic(t *testing.T) {
	in := baseInput()
	in.MaintenanceCostsAnnual = 777.77

	first := Calculate(in)
	second := Calculate(in)

	assert.Equal(t, first, second)
}

func TestCalculateAllFieldsFinite(t *testing.T) {
	inputs := []Input{
		baseInput(),
		{MonthlyRent: 1, PurchasePrice: 1, DownPaymentPct: 1, LoanTermYears: 1},
		{MonthlyRent: 99999, PurchasePrice: 10_000_000, PropertyTaxRate: 3, MaintenanceReservePct: 10, VacancyRatePct: 15, MortgageRate: 9.9, DownPaymentPct: 50, LoanTermYears: 40},
	}

	for _, in := range inputs {
		result := Calculate(in)
		for name, v := range map[string]float64{
			"GrossRentalYield":   result.GrossRentalYield,
			"NetRentalYield":     result.NetRentalYield,
			"CashOnCashReturn":   result.CashOnCashReturn,
			"CapRate":            result.CapRate,
			"TotalROI":           result.TotalROI,
			"OccupancyRate":      result.OccupancyRate,
			"NetOperatingIncome": result.NetOperatingIncome,
			"CashFlow":           result.CashFlow,
			"MonthlyCashFlow":    result.MonthlyCashFlow,
			"MonthlyMortgage":    result.MonthlyMortgage,
		} {
			require.False(t, math.IsNaN(v), "%s is NaN for %+v", name, in)
			require.False(t, math.IsInf(v, 0), "%s is Inf for %+v", name, in)
		}
	}
}

func TestCalculateMonthlyCashFlowIsCashFlowOverTwelve(t *testing.T) {
	result := Calculate(baseInput())
	assert.InDelta(t, result.CashFlow/12, result.MonthlyCashFlow, 1e-9)
}

func TestCalculatePercentagesRounded(t *testing.T) {
	in := baseInput()
	in.MonthlyRent = 1234.56

	result := Calculate(in)

	for _, v := range []float64{result.GrossRentalYield, result.NetRentalYield, result.CashOnCashReturn, result.CapRate, result.TotalROI, result.OccupancyRate} {
		assert.Equal(t, math.Round(v*100)/100, v)
	}
}
