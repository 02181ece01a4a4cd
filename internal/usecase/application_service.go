package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// ApplicationNotifier receives a fire-and-forget notification for each new
// credit application.
type ApplicationNotifier interface {
	NotifyApplication(app *model.CustomerApplication)
}

// ApplicationService stores credit applications and drives the admin
// review workflow.
type ApplicationService struct {
	repo     repository.ApplicationRepository
	notifier ApplicationNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewApplicationService creates a new application service
func NewApplicationService(repo repository.ApplicationRepository, notifier ApplicationNotifier, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// BorrowerInput is one applicant's details on a credit application.
type BorrowerInput struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	DateOfBirth     string `json:"date_of_birth" validate:"required"`
	SSN             string `json:"ssn" validate:"required"`
	Street          string `json:"street" validate:"required"`
	City            string `json:"city" validate:"required"`
	State           string `json:"state" validate:"required,len=2"`
	Zip             string `json:"zip" validate:"required"`
	LivingSituation string `json:"living_situation"`
	MonthlyHousing  int64  `json:"monthly_housing" validate:"min=0"`
	Employer        string `json:"employer"`
	JobTitle        string `json:"job_title"`
	EmploymentYears int    `json:"employment_years" validate:"min=0"`
	MonthlyIncome   int64  `json:"monthly_income" validate:"min=0"`
	BankName        string `json:"bank_name"`
	AccountType     string `json:"account_type"`
}

// CreateApplicationInput is a credit application submission.
type CreateApplicationInput struct {
	Primary           BorrowerInput  `json:"primary" validate:"required"`
	CoBorrower        *BorrowerInput `json:"co_borrower"`
	ConsentToSMS      bool           `json:"consent_to_sms"`
	InterestedVehicle *int64         `json:"interested_vehicle"`
}

// UpdateApplicationInput is the admin review mutation: status and notes
// only; everything else is immutable after submission.
type UpdateApplicationInput struct {
	Status     *string `json:"status" validate:"omitempty,oneof=pending reviewing approved denied"`
	AdminNotes *string `json:"admin_notes"`
	ReviewedBy string  `json:"reviewed_by"`
}

func borrowerFromInput(in BorrowerInput) model.Borrower {
	return model.Borrower{
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		DateOfBirth:     in.DateOfBirth,
		SSN:             in.SSN,
		Street:          strings.TrimSpace(in.Street),
		City:            strings.TrimSpace(in.City),
		State:           strings.ToUpper(strings.TrimSpace(in.State)),
		Zip:             strings.TrimSpace(in.Zip),
		LivingSituation: in.LivingSituation,
		MonthlyHousing:  in.MonthlyHousing,
		Employer:        strings.TrimSpace(in.Employer),
		JobTitle:        strings.TrimSpace(in.JobTitle),
		EmploymentYears: in.EmploymentYears,
		MonthlyIncome:   in.MonthlyIncome,
		BankName:        strings.TrimSpace(in.BankName),
		AccountType:     in.AccountType,
	}
}

func (s *ApplicationService) Create(ctx context.Context, in CreateApplicationInput) (*model.CustomerApplication, error) {
	app := &model.CustomerApplication{
		ID:                uuid.New(),
		Status:            model.ApplicationStatusPending,
		Primary:           borrowerFromInput(in.Primary),
		ConsentToSMS:      in.ConsentToSMS,
		InterestedVehicle: in.InterestedVehicle,
		SubmittedAt:       s.now(),
	}
	if in.CoBorrower != nil {
		co := borrowerFromInput(*in.CoBorrower)
		app.CoBorrower = &co
		app.HasCoSigner = true
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("Credit application received",
		zap.String("id", app.ID.String()))

	if s.notifier != nil {
		s.notifier.NotifyApplication(app)
	}

	return app, nil
}

func (s *ApplicationService) GetAll(ctx context.Context, status string) ([]*model.CustomerApplication, error) {
	return s.repo.GetAll(ctx, model.ApplicationStatus(status))
}

func (s *ApplicationService) GetByID(ctx context.Context, id uuid.UUID) (*model.CustomerApplication, error) {
	return s.repo.GetByID(ctx, id)
}

// Update records an admin review decision, stamping reviewer and time when
// the status changes.
func (s *ApplicationService) Update(ctx context.Context, id uuid.UUID, in UpdateApplicationInput) (*model.CustomerApplication, error) {
	fields := map[string]interface{}{}

	if in.Status != nil {
		status := model.ApplicationStatus(*in.Status)
		switch status {
		case model.ApplicationStatusPending, model.ApplicationStatusReviewing,
			model.ApplicationStatusApproved, model.ApplicationStatusDenied:
		default:
			return nil, apperrors.InvalidArgument("invalid application status")
		}
		fields["status"] = status
		fields["reviewed_at"] = s.now()
		if in.ReviewedBy != "" {
			fields["reviewed_by"] = in.ReviewedBy
		}
	}
	if in.AdminNotes != nil {
		fields["admin_notes"] = *in.AdminNotes
	}

	if len(fields) == 0 {
		return s.repo.GetByID(ctx, id)
	}

	return s.repo.Update(ctx, id, fields)
}

func (s *ApplicationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
