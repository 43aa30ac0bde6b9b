// models/user.go
package models

import "time"

// User represents a platform identity: customer, worker or tutor.
// TrustScore is bounded to [0,100] and is only ever written by the trust
// engine on booking completion; it is never user-settable.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	TrustScore   float64   `gorm:"default:0" json:"trust_score"`
	CreatedAt    time.Time `json:"created_at"`
}
