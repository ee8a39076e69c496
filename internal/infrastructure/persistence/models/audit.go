package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/audit"
)

// AuditLogModel is the persistence model for audit logs
type AuditLogModel struct {
	ID         uuid.UUID  `gorm:"type:varchar(36);primaryKey"`
	EntityType string     `gorm:"type:varchar(50);not null;index:idx_audit_entity"`
	EntityID   uuid.UUID  `gorm:"type:varchar(36);not null;index:idx_audit_entity"`
	Action     string     `gorm:"type:varchar(20);not null"`
	ChangedBy  *uuid.UUID `gorm:"type:varchar(36)"`
	BeforeJSON string     `gorm:"column:before_json;type:text"`
	AfterJSON  string     `gorm:"column:after_json;type:text"`
	CreatedAt  time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain audit log
func (m *AuditLogModel) ToDomain() *audit.Log {
	return &audit.Log{
		ID:         m.ID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     m.Action,
		ChangedBy:  m.ChangedBy,
		BeforeJSON: m.BeforeJSON,
		AfterJSON:  m.AfterJSON,
		CreatedAt:  m.CreatedAt,
	}
}

// AuditLogModelFromDomain creates a persistence model from a domain audit log
func AuditLogModelFromDomain(l *audit.Log) *AuditLogModel {
	return &AuditLogModel{
		ID:         l.ID,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		ChangedBy:  l.ChangedBy,
		BeforeJSON: l.BeforeJSON,
		AfterJSON:  l.AfterJSON,
		CreatedAt:  l.CreatedAt,
	}
}
