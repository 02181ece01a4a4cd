package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

func TestVehicleService_Create(t *testing.T) {
	logger := zap.NewNop()

	t.Run("derives slug from year make model and VIN", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewVehicleService(mockRepo, logger)
		vehicle, err := service.Create(context.Background(), CreateVehicleInput{
			Year:  2018,
			Make:  "Honda",
			Model: "Civic",
			VIN:   "2hgfc2f59jh123456",
			Price: 15900,
		})

		assert.NoError(t, err)
		assert.Equal(t, "2018-honda-civic-123456", vehicle.Slug)
		assert.Equal(t, "2018 Honda Civic", vehicle.Title)
		if assert.NotNil(t, vehicle.VIN) {
			assert.Equal(t, "2HGFC2F59JH123456", *vehicle.VIN)
		}
		assert.Equal(t, model.VehicleStatusForSale, vehicle.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("retries a generated slug on collision", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.Conflict("duplicate key")).Once()
		mockRepo.On("GetByVIN", mock.Anything, "1FTEW1EP5JK000001").
			Return(nil, apperrors.NotFound("vehicle not found"))
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		service := NewVehicleService(mockRepo, logger)
		vehicle, err := service.Create(context.Background(), CreateVehicleInput{
			Year:  2018,
			Make:  "Ford",
			Model: "F-150",
			VIN:   "1FTEW1EP5JK000001",
		})

		assert.NoError(t, err)
		// Retried slug keeps the base and appends a random suffix.
		assert.Contains(t, vehicle.Slug, "2018-ford-f-150-000001-")
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate VIN is a hard conflict", func(t *testing.T) {
		existing := &model.Vehicle{ID: 7}
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.Conflict("duplicate key")).Once()
		mockRepo.On("GetByVIN", mock.Anything, "1FTEW1EP5JK000001").
			Return(existing, nil)

		service := NewVehicleService(mockRepo, logger)
		_, err := service.Create(context.Background(), CreateVehicleInput{
			Year:  2018,
			Make:  "Ford",
			Model: "F-150",
			VIN:   "1FTEW1EP5JK000001",
		})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
		mockRepo.AssertExpectations(t)
	})

	t.Run("explicit slug is never retried", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.Conflict("duplicate key")).Once()

		service := NewVehicleService(mockRepo, logger)
		_, err := service.Create(context.Background(), CreateVehicleInput{
			Slug:  "my-custom-slug",
			Year:  2018,
			Make:  "Ford",
			Model: "F-150",
		})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		service := NewVehicleService(new(MockVehicleRepository), logger)

		_, err := service.Create(context.Background(), CreateVehicleInput{
			Make: "Honda",
		})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)

		service := NewVehicleService(mockRepo, logger)
		_, err := service.Create(context.Background(), CreateVehicleInput{
			Year:   2018,
			Make:   "Honda",
			Model:  "Civic",
			Status: "banana",
		})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("accepts a known status", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewVehicleService(mockRepo, logger)
		vehicle, err := service.Create(context.Background(), CreateVehicleInput{
			Year:   2018,
			Make:   "Honda",
			Model:  "Civic",
			Status: "pending",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.VehicleStatusPending, vehicle.Status)
		mockRepo.AssertExpectations(t)
	})
}

func TestVehicleService_Search(t *testing.T) {
	logger := zap.NewNop()

	t.Run("translates year bucket and price cap", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Search", mock.Anything, repository.VehicleFilters{
			Make:     "Toyota",
			YearMin:  2015,
			YearMax:  2019,
			MaxPrice: 20000,
		}).Return([]*model.Vehicle{}, nil)

		service := NewVehicleService(mockRepo, logger)
		_, err := service.Search(context.Background(), SearchInput{
			Make:     "Toyota",
			Year:     "2015-2019",
			MaxPrice: "20000",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects malformed year bucket", func(t *testing.T) {
		service := NewVehicleService(new(MockVehicleRepository), logger)

		_, err := service.Search(context.Background(), SearchInput{Year: "newish"})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("rejects negative price cap", func(t *testing.T) {
		service := NewVehicleService(new(MockVehicleRepository), logger)

		_, err := service.Search(context.Background(), SearchInput{MaxPrice: "-5"})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
	})
}

func TestVehicleService_Update(t *testing.T) {
	logger := zap.NewNop()

	t.Run("only non-nil fields reach the repository", func(t *testing.T) {
		price := int64(13500)
		reduced := true
		updated := &model.Vehicle{ID: 3, Price: price, BannerReduced: true}

		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Update", mock.Anything, int64(3), map[string]interface{}{
			"price":          price,
			"banner_reduced": true,
		}).Return(updated, nil)

		service := NewVehicleService(mockRepo, logger)
		vehicle, err := service.Update(context.Background(), 3, UpdateVehicleInput{
			Price:         &price,
			BannerReduced: &reduced,
		})

		assert.NoError(t, err)
		assert.Equal(t, updated, vehicle)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty update reads back the record", func(t *testing.T) {
		current := &model.Vehicle{ID: 3}
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("GetByID", mock.Anything, int64(3)).Return(current, nil)

		service := NewVehicleService(mockRepo, logger)
		vehicle, err := service.Update(context.Background(), 3, UpdateVehicleInput{})

		assert.NoError(t, err)
		assert.Equal(t, current, vehicle)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		status := "banana"
		mockRepo := new(MockVehicleRepository)

		service := NewVehicleService(mockRepo, logger)
		_, err := service.Update(context.Background(), 3, UpdateVehicleInput{
			Status: &status,
		})

		assert.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestParseYearBucket(t *testing.T) {
	tests := []struct {
		bucket  string
		wantLo  int
		wantHi  int
		wantErr bool
	}{
		{bucket: "2020+", wantLo: 2020, wantHi: 0},
		{bucket: "2015-2019", wantLo: 2015, wantHi: 2019},
		{bucket: "2012", wantLo: 2012, wantHi: 2012},
		{bucket: " 2020+ ", wantLo: 2020, wantHi: 0},
		{bucket: "2019-2015", wantErr: true},
		{bucket: "newish", wantErr: true},
		{bucket: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			lo, hi, err := ParseYearBucket(tt.bucket)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantLo, lo)
			assert.Equal(t, tt.wantHi, hi)
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "2018-honda-civic", Slugify("2018 Honda Civic"))
	assert.Equal(t, "f-150-xlt", Slugify("F-150  XLT!"))
	assert.Equal(t, "2016-bmw-328i-1043", TitleSlug("2016 BMW 328i", "1043"))
	assert.Equal(t, "2016-bmw-328i", TitleSlug("2016 BMW 328i", ""))
}
