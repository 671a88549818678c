package models

import "time"

// EntryType distinguishes ledger entries between money in and money out.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// EntrySource identifies where a ledger fact originated.
type EntrySource string

const (
	SourceRent        EntrySource = "rent"
	SourceMaintenance EntrySource = "maintenance"
	SourceTax         EntrySource = "tax"
	SourceInsurance   EntrySource = "insurance"
	SourceUtilities   EntrySource = "utilities"
	SourceOther       EntrySource = "other"
)

// FinancialEntry is a single dated income or expense fact attributable to a
// property. Entries are append-only from this engine's perspective.
type FinancialEntry struct {
	PropertyID string      `bson:"property_id" json:"property_id"`
	Date       time.Time   `bson:"date" json:"date"`
	Type       EntryType   `bson:"type" json:"type"`
	Category   string      `bson:"category" json:"category"`
	Amount     float64     `bson:"amount" json:"amount"`
	Recurring  bool        `bson:"recurring" json:"recurring"`
	Frequency  string      `bson:"frequency,omitempty" json:"frequency,omitempty"`
	Source     EntrySource `bson:"source" json:"source"`
	RelatedID  string      `bson:"related_id,omitempty" json:"related_id,omitempty"`
	CreatedAt  time.Time   `bson:"created_at" json:"created_at"`
}
