package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/enrollment-portal-api/internal/models"
)

// AuditLogFilter narrows filtered audit log queries. Result carries the
// sentinel "all" when no status filter applies; a nil Query means no
// free-text filter.
type AuditLogFilter struct {
	Since  *time.Time
	Result string
	Query  *string
	Limit  int
}

// AuditLogRepository persists and retrieves anonymized audit entries.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	Filtered(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs the audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Filtered delegates range/status/free-text filtering to the activity_logs
// database function so the row cap is enforced server side.
func (r *auditLogRepository) Filtered(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM activity_logs(?, ?, ?, ?)", filter.Since, filter.Result, filter.Query, filter.Limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
