// models/rating.go
package models

import "time"

// Rating is a customer's feedback on a provider, optionally tied to a
// booking. Append-only; never updated or deleted.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index" json:"customer_id"`
	ProviderID uint      `gorm:"index" json:"provider_id"`
	BookingID  *uint     `json:"booking_id,omitempty"`
	Score      float64   `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
