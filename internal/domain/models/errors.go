package models

import "errors"

// ErrPropertyNotFound indicates the referenced property does not exist.
var ErrPropertyNotFound = errors.New("property not found")

// ErrGoalNotFound indicates no goal exists for the requested property and type.
var ErrGoalNotFound = errors.New("financial goal not found")

// ErrInvalidAmount indicates a non-positive monetary amount was supplied.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrInvalidGoalType indicates an unknown goal metric type.
var ErrInvalidGoalType = errors.New("invalid goal type")
