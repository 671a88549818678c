package goals

import (
	"context"
	"errors"
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

// Service creates and re-evaluates financial goals against freshly
// computed metric values.
type Service struct {
	goals     repo.GoalStore
	assembler DataAssembler
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new goal tracking service instance.
func NewService(goals repo.GoalStore, assembler DataAssembler, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		goals:     goals,
		assembler: assembler,
		logger:    logger,
		now:       time.Now,
	}
}

// SetGoalParams carries the user-supplied goal definition.
type SetGoalParams struct {
	PropertyID  string
	Title       string
	Type        models.GoalType
	TargetValue float64
	Deadline    *time.Time
	Notes       string
}

// SetGoal creates or updates the goal for (property, type). The current
// value is recomputed from live data and the status derived from it.
// A goal that already reached a terminal status keeps it.
func (s *Service) SetGoal(ctx context.Context, params SetGoalParams) (*models.FinancialGoal, error) {
	if !models.ValidGoalType(params.Type) {
		return nil, models.ErrInvalidGoalType
	}

	existing, err := s.goals.GetGoal(ctx, params.PropertyID, params.Type)
	if err != nil && !errors.Is(err, models.ErrGoalNotFound) {
		return nil, err
	}

	current, err := s.currentValue(ctx, params.PropertyID, params.Type)
	if err != nil {
		return nil, err
	}

	nowUTC := s.now().UTC()
	goal := &models.FinancialGoal{
		PropertyID:   params.PropertyID,
		Title:        params.Title,
		Type:         params.Type,
		TargetValue:  params.TargetValue,
		CurrentValue: current,
		Deadline:     params.Deadline,
		Status:       statusFor(params.Type, current, params.TargetValue),
		Notes:        params.Notes,
		CreatedAt:    nowUTC,
		UpdatedAt:    nowUTC,
	}
	if existing != nil {
		goal.CreatedAt = existing.CreatedAt
		if existing.Status.Terminal() {
			goal.Status = existing.Status
		}
	}

	if err := s.goals.UpsertGoal(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("goal set",
		zap.String("property_id", goal.PropertyID),
		zap.String("type", string(goal.Type)),
		zap.Float64("target", goal.TargetValue),
		zap.Float64("current", goal.CurrentValue),
		zap.String("status", string(goal.Status)))
	return goal, nil
}

// RefreshGoals re-evaluates every non-terminal goal. A goal past its
// deadline is forced to missed regardless of its metric value; otherwise
// the current value and status are recomputed. Goals are persisted only
// when something changed. Returns the number of goals updated.
func (s *Service) RefreshGoals(ctx context.Context) (int, error) {
	open, err := s.goals.ListOpenGoals(ctx)
	if err != nil {
		return 0, err
	}

	nowUTC := s.now().UTC()
	updated := 0
	for i := range open {
		goal := open[i]

		if goal.Deadline != nil && goal.Deadline.Before(nowUTC) {
			goal.Status = models.GoalMissed
			goal.UpdatedAt = nowUTC
			if err := s.goals.UpsertGoal(ctx, &goal); err != nil {
				s.logger.Error("goal update failed",
					zap.String("property_id", goal.PropertyID),
					zap.String("type", string(goal.Type)),
					zap.Error(err))
				continue
			}
			updated++
			continue
		}

		current, err := s.currentValue(ctx, goal.PropertyID, goal.Type)
		if err != nil {
			s.logger.Error("goal recompute failed",
				zap.String("property_id", goal.PropertyID),
				zap.String("type", string(goal.Type)),
				zap.Error(err))
			continue
		}

		status := statusFor(goal.Type, current, goal.TargetValue)
		if status == goal.Status && current == goal.CurrentValue {
			continue
		}

		goal.CurrentValue = current
		goal.Status = status
		goal.UpdatedAt = nowUTC
		if err := s.goals.UpsertGoal(ctx, &goal); err != nil {
			s.logger.Error("goal update failed",
				zap.String("property_id", goal.PropertyID),
				zap.String("type", string(goal.Type)),
				zap.Error(err))
			continue
		}
		updated++
	}

	s.logger.Info("goal refresh finished", zap.Int("updated", updated))
	return updated, nil
}

// currentValue computes the live metric for the goal's type.
func (s *Service) currentValue(ctx context.Context, propertyID string, goalType models.GoalType) (float64, error) {
	input, err := s.assembler.PropertyFinancialData(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	result := roi.Calculate(input)

	switch goalType {
	case models.GoalROI:
		return result.TotalROI, nil
	case models.GoalCashflow:
		return result.MonthlyCashFlow, nil
	case models.GoalOccupancyRate:
		return result.OccupancyRate, nil
	case models.GoalExpenseReduction:
		return result.Breakdown.Total(), nil
	}
	return 0, models.ErrInvalidGoalType
}

// statusFor derives the non-terminal status from a fresh metric value.
// Expense reduction targets are met from above; every other type from
// below.
func statusFor(goalType models.GoalType, current, target float64) models.GoalStatus {
	achieved := current >= target
	if goalType == models.GoalExpenseReduction {
		achieved = current <= target
	}
	if achieved {
		return models.GoalAchieved
	}
	return models.GoalInProgress
}
