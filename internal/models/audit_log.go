package models

import (
	"time"

	"gorm.io/datatypes"
)

// Possible audit result statuses.
const (
	AuditResultSuccess = "success"
	AuditResultWarning = "warning"
	AuditResultFailed  = "failed"
	AuditResultOther   = "other"
)

// AuditLog is an anonymized audit trail record. Actor and IP are masked
// before insert; raw identities never reach this table.
type AuditLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorMask  string            `gorm:"size:255" json:"actor_mask"`
	IPMask     string            `gorm:"size:64" json:"ip_mask"`
	Action     string            `gorm:"size:64;not null" json:"action"`
	EntityType string            `gorm:"size:64" json:"entity_type"`
	EntityID   *string           `gorm:"size:64" json:"entity_id"`
	Result     string            `gorm:"size:16;not null" json:"result"`
	Message    string            `gorm:"size:1024" json:"message"`
	Payload    datatypes.JSONMap `gorm:"type:json" json:"payload"`
	CreatedAt  time.Time         `json:"created_at"`
}
