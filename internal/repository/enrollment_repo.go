package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/enrollment-portal-api/internal/models"
)

// EnrollmentRepository exposes persistence helpers for enrollment records.
type EnrollmentRepository interface {
	LatestActive(ctx context.Context, userID uint) (models.Enrollment, error)
	UpdateEditable(ctx context.Context, userID, id uint, updates map[string]interface{}) (models.Enrollment, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs the enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// LatestActive returns the newest non-archived enrollment for the user.
func (r *enrollmentRepository) LatestActive(ctx context.Context, userID uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("archived = ?", false).
		Order("created_at DESC").
		First(&enrollment).Error
	if err != nil {
		return models.Enrollment{}, err
	}

	return enrollment, nil
}

// UpdateEditable applies the given column updates to a single enrollment.
// The row is addressed by id AND owner, so a record belonging to another
// user is indistinguishable from a missing one. Archived records are
// read-only. The update is one atomic statement; updated_at is bumped by
// gorm alongside the columns.
func (r *enrollmentRepository) UpdateEditable(ctx context.Context, userID, id uint, updates map[string]interface{}) (models.Enrollment, error) {
	tx := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Where("archived = ?", false).
		Updates(updates)
	if tx.Error != nil {
		return models.Enrollment{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Enrollment{}, gorm.ErrRecordNotFound
	}

	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		First(&enrollment).Error
	if err != nil {
		return models.Enrollment{}, err
	}

	return enrollment, nil
}
