package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/provider"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

const testVIN = "2HGFC2F59JH123456"

func TestHistoryService_GetReport(t *testing.T) {
	logger := zap.NewNop()

	t.Run("preferred provider is tried first", func(t *testing.T) {
		carfax := &fakeProvider{
			name:          "carfax",
			authenticated: true,
			report:        &provider.Report{Provider: "carfax", VIN: testVIN},
		}
		autocheck := &fakeProvider{
			name:          "autocheck",
			authenticated: true,
			report:        &provider.Report{Provider: "autocheck", VIN: testVIN},
		}

		service := NewHistoryService([]provider.HistoryProvider{carfax, autocheck}, nil, logger)
		report, err := service.GetReport(context.Background(), testVIN, "autocheck")

		assert.NoError(t, err)
		assert.Equal(t, "autocheck", report.Provider)
	})

	t.Run("unauthenticated preferred provider falls back", func(t *testing.T) {
		carfax := &fakeProvider{name: "carfax", authenticated: false}
		autocheck := &fakeProvider{
			name:          "autocheck",
			authenticated: true,
			report:        &provider.Report{Provider: "autocheck", VIN: testVIN},
		}

		service := NewHistoryService([]provider.HistoryProvider{carfax, autocheck}, nil, logger)
		report, err := service.GetReport(context.Background(), testVIN, "carfax")

		assert.NoError(t, err)
		assert.Equal(t, "autocheck", report.Provider)
	})

	t.Run("provider failure falls back", func(t *testing.T) {
		carfax := &fakeProvider{
			name:          "carfax",
			authenticated: true,
			reportErr:     &provider.ProviderError{Code: "TIMEOUT", Message: "upstream timeout"},
		}
		autocheck := &fakeProvider{
			name:          "autocheck",
			authenticated: true,
			report:        &provider.Report{Provider: "autocheck", VIN: testVIN},
		}

		service := NewHistoryService([]provider.HistoryProvider{carfax, autocheck}, nil, logger)
		report, err := service.GetReport(context.Background(), testVIN, "")

		assert.NoError(t, err)
		assert.Equal(t, "autocheck", report.Provider)
	})

	t.Run("no provider has the VIN", func(t *testing.T) {
		carfax := &fakeProvider{name: "carfax", authenticated: true}
		autocheck := &fakeProvider{name: "autocheck", authenticated: false}

		service := NewHistoryService([]provider.HistoryProvider{carfax, autocheck}, nil, logger)
		report, err := service.GetReport(context.Background(), testVIN, "")

		assert.NoError(t, err)
		assert.Nil(t, report)
	})

	t.Run("empty VIN is rejected", func(t *testing.T) {
		service := NewHistoryService(nil, nil, logger)

		_, err := service.GetReport(context.Background(), "  ", "")

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
	})
}

func TestHistoryService_GetBestReport(t *testing.T) {
	logger := zap.NewNop()

	carfax := &fakeProvider{
		name:          "carfax",
		authenticated: true,
		report:        &provider.Report{Provider: "carfax", ConfidenceScore: 60},
	}
	autocheck := &fakeProvider{
		name:          "autocheck",
		authenticated: true,
		report:        &provider.Report{Provider: "autocheck", ConfidenceScore: 85},
	}

	service := NewHistoryService([]provider.HistoryProvider{carfax, autocheck}, nil, logger)
	report, err := service.GetBestReport(context.Background(), testVIN)

	assert.NoError(t, err)
	assert.Equal(t, "autocheck", report.Provider)
}

func TestHistoryService_RequestReport(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns the serving provider", func(t *testing.T) {
		carfax := &fakeProvider{name: "carfax", authenticated: true, requestID: "rpt-1"}

		service := NewHistoryService([]provider.HistoryProvider{carfax}, nil, logger)
		reportID, providerName, err := service.RequestReport(context.Background(), testVIN, "")

		assert.NoError(t, err)
		assert.Equal(t, "rpt-1", reportID)
		assert.Equal(t, "carfax", providerName)
	})

	t.Run("errors when no provider is available", func(t *testing.T) {
		carfax := &fakeProvider{name: "carfax", authenticated: false}

		service := NewHistoryService([]provider.HistoryProvider{carfax}, nil, logger)
		_, _, err := service.RequestReport(context.Background(), testVIN, "")

		assert.Error(t, err)
	})
}

func TestHistoryService_AutoPopulate(t *testing.T) {
	logger := zap.NewNop()

	t.Run("writes report fields onto the vehicle", func(t *testing.T) {
		vin := testVIN
		vehicle := &model.Vehicle{ID: 9, VIN: &vin}

		carfax := &fakeProvider{
			name:          "carfax",
			authenticated: true,
			report: &provider.Report{
				Provider:        "carfax",
				VIN:             testVIN,
				HistoryScore:    87,
				ConfidenceScore: 90,
				TitleStatus:     model.TitleStatusClean,
				AccidentHistory: "No accidents reported",
				PreviousOwners:  1,
				ServiceRecords:  "12 service records",
				EmbedCode:       "<iframe></iframe>",
			},
		}

		mockRepo := new(MockVehicleRepository)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(vehicle, nil)
		mockRepo.On("Update", mock.Anything, int64(9), mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["vehicle_history_score"] == 87 &&
				fields["title_status"] == model.TitleStatusClean &&
				fields["carfax_embed_code"] == "<iframe></iframe>"
		})).Return(vehicle, nil)

		service := NewHistoryService([]provider.HistoryProvider{carfax}, mockRepo, logger)
		report, err := service.AutoPopulate(context.Background(), 9)

		assert.NoError(t, err)
		assert.Equal(t, "carfax", report.Provider)
		mockRepo.AssertExpectations(t)
	})

	t.Run("vehicle without VIN is rejected", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(&model.Vehicle{ID: 9}, nil)

		service := NewHistoryService(nil, mockRepo, logger)
		_, err := service.AutoPopulate(context.Background(), 9)

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("no report leaves the vehicle untouched", func(t *testing.T) {
		vin := testVIN
		carfax := &fakeProvider{name: "carfax", authenticated: true}

		mockRepo := new(MockVehicleRepository)
		mockRepo.On("GetByID", mock.Anything, int64(9)).Return(&model.Vehicle{ID: 9, VIN: &vin}, nil)

		service := NewHistoryService([]provider.HistoryProvider{carfax}, mockRepo, logger)
		report, err := service.AutoPopulate(context.Background(), 9)

		assert.NoError(t, err)
		assert.Nil(t, report)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}
