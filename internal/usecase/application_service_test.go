package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// MockApplicationRepository is a mock implementation of ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.CustomerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CustomerApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerApplication), args.Error(1)
}

func (m *MockApplicationRepository) GetAll(ctx context.Context, status model.ApplicationStatus) ([]*model.CustomerApplication, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomerApplication), args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.CustomerApplication, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerApplication), args.Error(1)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// applicationRecorder captures notifications sent on submission.
type applicationRecorder struct {
	notified []*model.CustomerApplication
}

func (r *applicationRecorder) NotifyApplication(app *model.CustomerApplication) {
	r.notified = append(r.notified, app)
}

func primaryBorrower() BorrowerInput {
	return BorrowerInput{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@example.com",
		Phone:         "555-0100",
		DateOfBirth:   "1990-05-01",
		SSN:           "123-45-6789",
		Street:        "1 Main St",
		City:          "Cape Girardeau",
		State:         "mo",
		Zip:           "63701",
		MonthlyIncome: 4200,
	}
}

func TestApplicationService_Create(t *testing.T) {
	logger := zap.NewNop()
	frozen := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	t.Run("single borrower", func(t *testing.T) {
		mockRepo := new(MockApplicationRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		recorder := &applicationRecorder{}
		service := NewApplicationService(mockRepo, recorder, logger)
		service.now = func() time.Time { return frozen }

		app, err := service.Create(context.Background(), CreateApplicationInput{
			Primary:      primaryBorrower(),
			ConsentToSMS: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusPending, app.Status)
		assert.Equal(t, "MO", app.Primary.State)
		assert.False(t, app.HasCoSigner)
		assert.Equal(t, frozen, app.SubmittedAt)
		assert.Len(t, recorder.notified, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("co-borrower sets the co-signer flag", func(t *testing.T) {
		mockRepo := new(MockApplicationRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		co := primaryBorrower()
		co.FirstName = "John"

		service := NewApplicationService(mockRepo, nil, logger)
		app, err := service.Create(context.Background(), CreateApplicationInput{
			Primary:    primaryBorrower(),
			CoBorrower: &co,
		})

		assert.NoError(t, err)
		assert.True(t, app.HasCoSigner)
		if assert.NotNil(t, app.CoBorrower) {
			assert.Equal(t, "John", app.CoBorrower.FirstName)
		}
	})
}

func TestApplicationService_Update(t *testing.T) {
	logger := zap.NewNop()
	id := uuid.New()
	frozen := time.Date(2025, 6, 11, 14, 0, 0, 0, time.UTC)

	t.Run("status change stamps the review", func(t *testing.T) {
		status := "approved"
		updated := &model.CustomerApplication{ID: id, Status: model.ApplicationStatusApproved}

		mockRepo := new(MockApplicationRepository)
		mockRepo.On("Update", mock.Anything, id, map[string]interface{}{
			"status":      model.ApplicationStatusApproved,
			"reviewed_at": frozen,
			"reviewed_by": "sara",
		}).Return(updated, nil)

		service := NewApplicationService(mockRepo, nil, logger)
		service.now = func() time.Time { return frozen }

		app, err := service.Update(context.Background(), id, UpdateApplicationInput{
			Status:     &status,
			ReviewedBy: "sara",
		})

		assert.NoError(t, err)
		assert.Equal(t, updated, app)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		status := "shredded"

		service := NewApplicationService(new(MockApplicationRepository), nil, logger)
		_, err := service.Update(context.Background(), id, UpdateApplicationInput{Status: &status})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("notes-only update does not stamp a review", func(t *testing.T) {
		notes := "left voicemail"
		updated := &model.CustomerApplication{ID: id}

		mockRepo := new(MockApplicationRepository)
		mockRepo.On("Update", mock.Anything, id, map[string]interface{}{
			"admin_notes": notes,
		}).Return(updated, nil)

		service := NewApplicationService(mockRepo, nil, logger)
		_, err := service.Update(context.Background(), id, UpdateApplicationInput{AdminNotes: &notes})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
