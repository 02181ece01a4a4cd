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

// InquiryRepository handles contact inquiry storage
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error)
	GetAll(ctx context.Context) ([]*model.Inquiry, error)
}

type inquiryRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB, logger *zap.Logger) InquiryRepository {
	return &inquiryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		r.logger.Error("Failed to create inquiry", zap.Error(err))
		return fmt.Errorf("failed to create inquiry: %w", err)
	}

	return nil
}

func (r *inquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error) {
	var inquiry model.Inquiry

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("inquiry not found")
		}
		r.logger.Error("Failed to get inquiry", zap.String("id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}

	return &inquiry, nil
}

func (r *inquiryRepository) GetAll(ctx context.Context) ([]*model.Inquiry, error) {
	var inquiries []*model.Inquiry

	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error
	if err != nil {
		r.logger.Error("Failed to get inquiries", zap.Error(err))
		return nil, fmt.Errorf("failed to get inquiries: %w", err)
	}

	return inquiries, nil
}
