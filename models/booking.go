// models/booking.go
package models

import "time"

// Booking represents one transaction between a customer and a provider.
// CommissionAmount + ProviderEarning == TotalPrice to 2 decimals; the split
// is frozen at creation time and never recomputed.
type Booking struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CustomerID       uint      `gorm:"index" json:"customer_id"`
	ProviderID       uint      `gorm:"index" json:"provider_id"`
	ServiceType      string    `json:"service_type"`
	Subject          string    `json:"subject,omitempty"`
	TotalPrice       float64   `json:"total_price"`
	CommissionAmount float64   `json:"commission_amount"`
	ProviderEarning  float64   `json:"provider_earning"`
	Status           string    `gorm:"default:pending" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
