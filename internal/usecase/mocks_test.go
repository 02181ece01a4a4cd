package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/provider"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/drive"
)

// MockVehicleRepository is a mock implementation of VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*model.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByVIN(ctx context.Context, vin string) (*model.Vehicle, error) {
	args := m.Called(ctx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByStockNumber(ctx context.Context, stockNumber string) (*model.Vehicle, error) {
	args := m.Called(ctx, stockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Search(ctx context.Context, filters repository.VehicleFilters) ([]*model.Vehicle, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.Vehicle, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) ReplaceAll(ctx context.Context, vehicles []*model.Vehicle) error {
	args := m.Called(ctx, vehicles)
	return args.Error(0)
}

func (m *MockVehicleRepository) ClearExpiredNewBanners(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVehicleRepository) CountNewSince(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVehicleRepository) CountBanners(ctx context.Context) (*repository.BannerCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BannerCounts), args.Error(1)
}

// MockDriveLister is a mock implementation of DriveLister
type MockDriveLister struct {
	mock.Mock
}

func (m *MockDriveLister) ListSubfolders(ctx context.Context, folderID string) ([]drive.Folder, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.Folder), args.Error(1)
}

func (m *MockDriveLister) ListImages(ctx context.Context, folderID string) ([]drive.File, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.File), args.Error(1)
}

// fakeProvider is a scriptable HistoryProvider for service tests.
type fakeProvider struct {
	name          string
	authenticated bool
	report        *provider.Report
	reportErr     error
	requestID     string
	requestErr    error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Authenticate(ctx context.Context) bool { return p.authenticated }

func (p *fakeProvider) GetReport(ctx context.Context, vin string) (*provider.Report, error) {
	return p.report, p.reportErr
}

func (p *fakeProvider) RequestReport(ctx context.Context, vin string) (string, error) {
	return p.requestID, p.requestErr
}

func (p *fakeProvider) GetReportStatus(ctx context.Context, reportID string) (provider.ReportStatus, error) {
	return provider.ReportStatusReady, nil
}
