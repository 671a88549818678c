package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliouned/propfin/internal/domain/models"
	"github.com/aliouned/propfin/internal/service/goals"
	"github.com/aliouned/propfin/internal/service/overview"
	"github.com/aliouned/propfin/internal/service/roi"
	"github.com/aliouned/propfin/internal/service/snapshot"
)

// FinanceHandler adapts the analytics services to HTTP. All business logic
// stays in the services; handlers only bind, delegate and translate errors.
type FinanceHandler struct {
	assembler   *roi.Assembler
	snapshotSvc *snapshot.Service
	goalSvc     *goals.Service
	overviewSvc *overview.Service
	logger      *zap.Logger
}

// NewFinanceHandler constructs the HTTP handler adapter.
func NewFinanceHandler(assembler *roi.Assembler, snapshotSvc *snapshot.Service, goalSvc *goals.Service, overviewSvc *overview.Service, logger *zap.Logger) *FinanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceHandler{
		assembler:   assembler,
		snapshotSvc: snapshotSvc,
		goalSvc:     goalSvc,
		overviewSvc: overviewSvc,
		logger:      logger,
	}
}

type calculateRequest struct {
	MonthlyRent              float64 `json:"monthly_rent" binding:"required"`
	PurchasePrice            float64 `json:"purchase_price" binding:"required"`
	PropertyTaxRate          float64 `json:"property_tax_rate"`
	MaintenanceReservePct    float64 `json:"maintenance_reserve_pct"`
	VacancyRatePct           float64 `json:"vacancy_rate_pct"`
	MortgageRate             float64 `json:"mortgage_rate"`
	DownPaymentPct           float64 `json:"down_payment_pct"`
	LoanTermYears            int     `json:"loan_term_years"`
	InsuranceCostMonthly     float64 `json:"insurance_cost_monthly"`
	PropertyManagementFeePct float64 `json:"property_management_fee_pct"`
	UtilityExpensesMonthly   float64 `json:"utility_expenses_monthly"`
	OtherChargesMonthly      float64 `json:"other_charges_monthly"`
	MaintenanceCostsAnnual   float64 `json:"maintenance_costs_annual"`
	RepairBudgetAnnual       float64 `json:"repair_budget_annual"`
	RenovationBudgetAnnual   float64 `json:"renovation_budget_annual"`
}

// CalculateROI computes metrics for an ad-hoc parameter set.
func (h *FinanceHandler) CalculateROI(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid roi request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := roi.Calculate(roi.Input{
		MonthlyRent:              req.MonthlyRent,
		PurchasePrice:            req.PurchasePrice,
		PropertyTaxRate:          req.PropertyTaxRate,
		MaintenanceReservePct:    req.MaintenanceReservePct,
		VacancyRatePct:           req.VacancyRatePct,
		MortgageRate:             req.MortgageRate,
		DownPaymentPct:           req.DownPaymentPct,
		LoanTermYears:            req.LoanTermYears,
		InsuranceCostMonthly:     req.InsuranceCostMonthly,
		PropertyManagementFeePct: req.PropertyManagementFeePct,
		UtilityExpensesMonthly:   req.UtilityExpensesMonthly,
		OtherChargesMonthly:      req.OtherChargesMonthly,
		MaintenanceCostsAnnual:   req.MaintenanceCostsAnnual,
		RepairBudgetAnnual:       req.RepairBudgetAnnual,
		RenovationBudgetAnnual:   req.RenovationBudgetAnnual,
	})

	c.JSON(http.StatusOK, result)
}

type createSnapshotRequest struct {
	Date *time.Time `json:"date"`
}

// CreateSnapshot computes and persists a snapshot for one property.
func (h *FinanceHandler) CreateSnapshot(c *gin.Context) {
	var req createSnapshotRequest
	// The body is optional; a missing or empty date means "now".
	_ = c.ShouldBindJSON(&req)

	asOf := time.Time{}
	if req.Date != nil {
		asOf = *req.Date
	}

	snap, err := h.snapshotSvc.CreateSnapshot(c.Request.Context(), c.Param("id"), asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snap)
}

// GenerateSnapshots runs the full monthly batch on demand.
func (h *FinanceHandler) GenerateSnapshots(c *gin.Context) {
	result, err := h.snapshotSvc.GenerateMonthlySnapshots(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type historyQuery struct {
	Months int `form:"months"`
}

// History returns a property's snapshot time series.
func (h *FinanceHandler) History(c *gin.Context) {
	var query historyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid months parameter"})
		return
	}

	snapshots, err := h.snapshotSvc.History(c.Request.Context(), c.Param("id"), query.Months)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshots)
}

type rentPaymentRequest struct {
	TenantID   string     `json:"tenant_id" binding:"required"`
	PropertyID string     `json:"property_id" binding:"required"`
	Amount     float64    `json:"amount" binding:"required"`
	Date       *time.Time `json:"date"`
}

// RecordRentPayment appends a rent income entry to the ledger.
func (h *FinanceHandler) RecordRentPayment(c *gin.Context) {
	var req rentPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid rent payment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	entry, err := h.assembler.RecordRentPayment(c.Request.Context(), req.TenantID, req.PropertyID, req.Amount, date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

type maintenanceExpenseRequest struct {
	MaintenanceID string     `json:"maintenance_id" binding:"required"`
	PropertyID    string     `json:"property_id" binding:"required"`
	Amount        float64    `json:"amount" binding:"required"`
	Date          *time.Time `json:"date"`
}

// RecordMaintenanceExpense appends a maintenance expense entry to the ledger.
func (h *FinanceHandler) RecordMaintenanceExpense(c *gin.Context) {
	var req maintenanceExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid maintenance expense payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	entry, err := h.assembler.RecordMaintenanceExpense(c.Request.Context(), req.MaintenanceID, req.PropertyID, req.Amount, date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

type setGoalRequest struct {
	PropertyID  string     `json:"property_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	TargetValue float64    `json:"target_value" binding:"required"`
	Deadline    *time.Time `json:"deadline"`
	Notes       string     `json:"notes"`
}

// SetGoal creates or updates the goal for a property and metric type.
func (h *FinanceHandler) SetGoal(c *gin.Context) {
	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid goal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	goal, err := h.goalSvc.SetGoal(c.Request.Context(), goals.SetGoalParams{
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Type:        models.GoalType(req.Type),
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// RefreshGoals re-evaluates every open goal on demand.
func (h *FinanceHandler) RefreshGoals(c *gin.Context) {
	updated, err := h.goalSvc.RefreshGoals(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Overview serves the portfolio-wide dashboard rollup.
func (h *FinanceHandler) Overview(c *gin.Context) {
	summary, err := h.overviewSvc.Overview(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *FinanceHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrPropertyNotFound), errors.Is(err, models.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidAmount), errors.Is(err, models.ErrInvalidGoalType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
