package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

func TestWebhookService_Upsert(t *testing.T) {
	logger := zap.NewNop()

	input := WebhookVehicleInput{
		Year:          "2018",
		Make:          "Honda",
		Model:         "Civic",
		StockNumber:   "1027",
		VIN:           "2hgfc2f59jh123456",
		Price:         "$15,900",
		Mileage:       "64,000",
		ExteriorColor: "White",
		Images:        []string{"https://drive.google.com/file/d/ABC123/view", ""},
	}

	t.Run("creates an unseen vehicle", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("GetByVIN", mock.Anything, "2HGFC2F59JH123456").
			Return(nil, apperrors.NotFound("vehicle not found"))
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewWebhookService(mockRepo, logger)
		result, err := service.Upsert(context.Background(), input)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "created", result.Action)
		assert.Equal(t, "2018-honda-civic-1027", result.Vehicle.Slug)
		assert.Equal(t, int64(15900), result.Vehicle.Price)
		// Blank image cells are dropped, share links become hotlinks.
		assert.Equal(t, model.StringList{"https://lh3.googleusercontent.com/d/ABC123=w800"}, result.Vehicle.Images)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repeated VIN reports exists without writing", func(t *testing.T) {
		existing := &model.Vehicle{ID: 12}
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("GetByVIN", mock.Anything, "2HGFC2F59JH123456").Return(existing, nil)

		service := NewWebhookService(mockRepo, logger)
		result, err := service.Upsert(context.Background(), input)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "exists", result.Action)
		assert.Equal(t, existing, result.Vehicle)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure other than not-found propagates", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("GetByVIN", mock.Anything, "2HGFC2F59JH123456").
			Return(nil, apperrors.New("connection reset"))

		service := NewWebhookService(mockRepo, logger)
		_, err := service.Upsert(context.Background(), input)

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing year make or model is rejected", func(t *testing.T) {
		service := NewWebhookService(new(MockVehicleRepository), logger)

		_, err := service.Upsert(context.Background(), WebhookVehicleInput{
			Year: "2018",
			Make: "Honda",
		})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("vehicle without VIN is always created", func(t *testing.T) {
		noVIN := input
		noVIN.VIN = ""

		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewWebhookService(mockRepo, logger)
		result, err := service.Upsert(context.Background(), noVIN)

		assert.NoError(t, err)
		assert.Equal(t, "created", result.Action)
		mockRepo.AssertNotCalled(t, "GetByVIN", mock.Anything, mock.Anything)
	})
}
