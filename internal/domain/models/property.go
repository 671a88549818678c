package models

import "time"

// Property is the read model of a managed property. The property lifecycle
// itself is owned by the management domain; this engine only reads the
// attributes needed to derive investment metrics.
type Property struct {
	ID              string    `bson:"_id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Address         string    `bson:"address" json:"address"`
	MonthlyRent     float64   `bson:"monthly_rent" json:"monthly_rent"`
	PurchasePrice   float64   `bson:"purchase_price" json:"purchase_price"`
	MonthlyExpenses float64   `bson:"monthly_expenses" json:"monthly_expenses"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
