// database/repository/audit.go
package repository

import (
	"fmt"

	"urbanserve/models"

	"gorm.io/gorm"
)

// AuditLogRepository records AI decisions. Append-only by contract.
type AuditLogRepository interface {
	Create(entry *models.AIDecisionLog) error
}

// GormAuditLogRepo implements AuditLogRepository using GORM.
type GormAuditLogRepo struct {
	DB *gorm.DB
}

func NewGormAuditLogRepo(db *gorm.DB) *GormAuditLogRepo {
	return &GormAuditLogRepo{DB: db}
}

// Create appends a decision log entry.
func (repo *GormAuditLogRepo) Create(entry *models.AIDecisionLog) error {
	if err := repo.DB.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to write AI decision log: %w", err)
	}
	return nil
}
