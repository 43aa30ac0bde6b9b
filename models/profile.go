// models/profile.go
package models

import "time"

// WorkerProfile is owned 1:1 by a worker User. Created once; its
// verification status moves pending -> approved/rejected exactly once,
// at creation time.
type WorkerProfile struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex" json:"user_id"`
	User               User      `gorm:"foreignKey:UserID" json:"-"`
	ServiceType        string    `json:"service_type"`
	VerificationStatus string    `gorm:"default:pending" json:"verification_status"`
	Rating             float64   `gorm:"default:0" json:"rating"`
	HourlyRate         *float64  `json:"hourly_rate"`
	IDDocumentRef      string    `json:"id_document_ref,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TutorProfile is owned 1:1 by a tutor User. Qualification and skill
// scores are set by the evaluation pipeline and stay nil until evaluated.
type TutorProfile struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	UserID                uint      `gorm:"uniqueIndex" json:"user_id"`
	User                  User      `gorm:"foreignKey:UserID" json:"-"`
	Subject               string    `json:"subject"`
	QualificationScore    *int      `json:"qualification_score"`
	SkillScore            *int      `json:"skill_score"`
	VerificationStatus    string    `gorm:"default:pending" json:"verification_status"`
	ProfileSummary        string    `json:"profile_summary,omitempty"`
	HourlyRate            *float64  `json:"hourly_rate"`
	QualificationText     string    `json:"qualification_text,omitempty"`
	ExperienceDescription string    `json:"experience_description,omitempty"`
	DemoTranscript        string    `json:"demo_transcript,omitempty"`
	IDDocumentRef         string    `json:"id_document_ref,omitempty"`
	QualificationDocRef   string    `json:"qualification_document_ref,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
