package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// ApplicationRepository handles credit application storage
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.CustomerApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CustomerApplication, error)
	GetAll(ctx context.Context, status model.ApplicationStatus) ([]*model.CustomerApplication, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.CustomerApplication, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type applicationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewApplicationRepository creates a new credit application repository
func NewApplicationRepository(db *gorm.DB, logger *zap.Logger) ApplicationRepository {
	return &applicationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *applicationRepository) Create(ctx context.Context, app *model.CustomerApplication) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		r.logger.Error("Failed to create application", zap.Error(err))
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CustomerApplication, error) {
	var app model.CustomerApplication

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application not found")
		}
		r.logger.Error("Failed to get application", zap.String("id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

// GetAll lists applications newest first, optionally filtered by status.
func (r *applicationRepository) GetAll(ctx context.Context, status model.ApplicationStatus) ([]*model.CustomerApplication, error) {
	q := r.db.WithContext(ctx).Model(&model.CustomerApplication{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var apps []*model.CustomerApplication
	if err := q.Order("submitted_at DESC").Find(&apps).Error; err != nil {
		r.logger.Error("Failed to get applications", zap.Error(err))
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}

	return apps, nil
}

func (r *applicationRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.CustomerApplication, error) {
	result := r.db.WithContext(ctx).Model(&model.CustomerApplication{}).
		Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		r.logger.Error("Failed to update application", zap.String("id", id.String()), zap.Error(result.Error))
		return nil, fmt.Errorf("failed to update application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("application not found")
	}

	return r.GetByID(ctx, id)
}

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CustomerApplication{})
	if result.Error != nil {
		r.logger.Error("Failed to delete application", zap.String("id", id.String()), zap.Error(result.Error))
		return fmt.Errorf("failed to delete application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("application not found")
	}

	return nil
}
