package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/enrollment-portal-api/internal/models"
)

// LookupRepository resolves reference-table codes by primary key.
type LookupRepository interface {
	GradeLevelCode(ctx context.Context, id uint) (string, error)
	TrackCode(ctx context.Context, id uint) (string, error)
	StrandCode(ctx context.Context, id uint) (string, error)
}

type lookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository constructs the lookup repository.
func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) GradeLevelCode(ctx context.Context, id uint) (string, error) {
	var row models.GradeLevel
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return "", err
	}
	return row.Code, nil
}

func (r *lookupRepository) TrackCode(ctx context.Context, id uint) (string, error) {
	var row models.Track
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return "", err
	}
	return row.Code, nil
}

func (r *lookupRepository) StrandCode(ctx context.Context, id uint) (string, error) {
	var row models.Strand
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return "", err
	}
	return row.Code, nil
}
