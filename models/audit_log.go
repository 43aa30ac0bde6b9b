// models/audit_log.go
package models

import "time"

// AIDecisionLog records every oracle invocation verbatim: who it was about,
// what kind of decision, and the raw model output (or failure string).
// Write-once, never mutated, never read by live code paths.
type AIDecisionLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index" json:"user_id"`
	DecisionType string    `json:"decision_type"`
	RawResponse  string    `gorm:"type:text" json:"raw_response"`
	Timestamp    time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
