package models

import "time"

// GoalType is the metric a financial goal is tracked against.
type GoalType string

const (
	GoalROI              GoalType = "roi"
	GoalCashflow         GoalType = "cashflow"
	GoalOccupancyRate    GoalType = "occupancy_rate"
	GoalExpenseReduction GoalType = "expense_reduction"
)

// ValidGoalType reports whether t is a known goal metric type.
func ValidGoalType(t GoalType) bool {
	switch t {
	case GoalROI, GoalCashflow, GoalOccupancyRate, GoalExpenseReduction:
		return true
	}
	return false
}

// GoalStatus is the lifecycle state of a goal. Transitions are forward
// only: achieved and missed are terminal.
type GoalStatus string

const (
	GoalPending    GoalStatus = "pending"
	GoalInProgress GoalStatus = "in_progress"
	GoalAchieved   GoalStatus = "achieved"
	GoalMissed     GoalStatus = "missed"
)

// Terminal reports whether the status can no longer change.
func (s GoalStatus) Terminal() bool {
	return s == GoalAchieved || s == GoalMissed
}

// FinancialGoal is a user-defined target for one property and one metric
// type. Exactly one goal per (PropertyID, Type) is retained.
type FinancialGoal struct {
	PropertyID   string     `bson:"property_id" json:"property_id"`
	Title        string     `bson:"title" json:"title"`
	Type         GoalType   `bson:"type" json:"type"`
	TargetValue  float64    `bson:"target_value" json:"target_value"`
	CurrentValue float64    `bson:"current_value" json:"current_value"`
	Deadline     *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Status       GoalStatus `bson:"status" json:"status"`
	Notes        string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}
