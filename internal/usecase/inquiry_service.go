package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
)

// InquiryNotifier receives a fire-and-forget notification for each new
// inquiry. Implemented by the email notifier.
type InquiryNotifier interface {
	NotifyInquiry(inquiry *model.Inquiry)
}

// InquiryService stores contact-form submissions.
type InquiryService struct {
	repo     repository.InquiryRepository
	notifier InquiryNotifier
	logger   *zap.Logger
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(repo repository.InquiryRepository, notifier InquiryNotifier, logger *zap.Logger) *InquiryService {
	return &InquiryService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateInquiryInput is a contact-form submission.
type CreateInquiryInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	VehicleID *int64 `json:"vehicle_id"`
	Message   string `json:"message"`
}

func (s *InquiryService) Create(ctx context.Context, in CreateInquiryInput) (*model.Inquiry, error) {
	inquiry := &model.Inquiry{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		VehicleID: in.VehicleID,
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		inquiry.Phone = &phone
	}
	if message := strings.TrimSpace(in.Message); message != "" {
		inquiry.Message = &message
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	s.logger.Info("Inquiry received",
		zap.String("id", inquiry.ID.String()),
		zap.String("email", inquiry.Email))

	if s.notifier != nil {
		s.notifier.NotifyInquiry(inquiry)
	}

	return inquiry, nil
}

func (s *InquiryService) GetAll(ctx context.Context) ([]*model.Inquiry, error) {
	return s.repo.GetAll(ctx)
}
