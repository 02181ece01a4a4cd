package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// VehicleFilters is a conjunction of optional search criteria.
type VehicleFilters struct {
	Make     string
	Model    string
	YearMin  int
	YearMax  int // 0 means no upper bound
	MaxPrice int64
	Status   model.VehicleStatus
}

// BannerCounts holds per-flag vehicle counts for the admin dashboard.
type BannerCounts struct {
	New       int64 `json:"new"`
	Reduced   int64 `json:"reduced"`
	GreatDeal int64 `json:"great_deal"`
	Sold      int64 `json:"sold"`
}

// VehicleRepository handles vehicle listing storage
type VehicleRepository interface {
	GetAll(ctx context.Context) ([]*model.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*model.Vehicle, error)
	GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error)
	GetByVIN(ctx context.Context, vin string) (*model.Vehicle, error)
	GetByStockNumber(ctx context.Context, stockNumber string) (*model.Vehicle, error)
	Search(ctx context.Context, filters VehicleFilters) ([]*model.Vehicle, error)
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.Vehicle, error)
	Delete(ctx context.Context, id int64) error

	// ReplaceAll deletes every vehicle and inserts the given set inside a
	// single transaction.
	ReplaceAll(ctx context.Context, vehicles []*model.Vehicle) error

	// ClearExpiredNewBanners clears banner_new on vehicles created at or
	// before the cutoff, returning how many rows changed.
	ClearExpiredNewBanners(ctx context.Context, cutoff time.Time) (int64, error)

	CountNewSince(ctx context.Context, cutoff time.Time) (int64, error)
	CountBanners(ctx context.Context) (*BannerCounts, error)
}

type vehicleRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB, logger *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all vehicles, NEW listings first, then newest first.
func (r *vehicleRepository) GetAll(ctx context.Context) ([]*model.Vehicle, error) {
	var vehicles []*model.Vehicle

	err := r.db.WithContext(ctx).
		Order("banner_new DESC, created_at DESC").
		Find(&vehicles).Error

	if err != nil {
		r.logger.Error("Failed to get all vehicles", zap.Error(err))
		return nil, fmt.Errorf("failed to get vehicles: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	var vehicle model.Vehicle

	err := r.db.WithContext(ctx).First(&vehicle, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		r.logger.Error("Failed to get vehicle by id", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error) {
	var vehicle model.Vehicle

	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		r.logger.Error("Failed to get vehicle by slug", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetByVIN(ctx context.Context, vin string) (*model.Vehicle, error) {
	var vehicle model.Vehicle

	err := r.db.WithContext(ctx).Where("vin = ?", vin).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		r.logger.Error("Failed to get vehicle by vin", zap.String("vin", vin), zap.Error(err))
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetByStockNumber(ctx context.Context, stockNumber string) (*model.Vehicle, error) {
	var vehicle model.Vehicle

	err := r.db.WithContext(ctx).Where("stock_number = ?", stockNumber).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		r.logger.Error("Failed to get vehicle by stock number",
			zap.String("stock_number", stockNumber), zap.Error(err))
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

// Search applies the filter conjunction. No matches yields an empty slice,
// never an error.
func (r *vehicleRepository) Search(ctx context.Context, filters VehicleFilters) ([]*model.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&model.Vehicle{})

	if filters.Make != "" {
		q = q.Where("make = ?", filters.Make)
	}
	if filters.Model != "" {
		q = q.Where("model = ?", filters.Model)
	}
	if filters.YearMin > 0 {
		q = q.Where("year >= ?", filters.YearMin)
	}
	if filters.YearMax > 0 {
		q = q.Where("year <= ?", filters.YearMax)
	}
	if filters.MaxPrice > 0 {
		q = q.Where("price <= ?", filters.MaxPrice)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}

	var vehicles []*model.Vehicle
	if err := q.Order("banner_new DESC, created_at DESC").Find(&vehicles).Error; err != nil {
		r.logger.Error("Failed to search vehicles", zap.Error(err))
		return nil, fmt.Errorf("failed to search vehicles: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	err := r.db.WithContext(ctx).Create(vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("vehicle with the same slug or VIN already exists")
		}
		r.logger.Error("Failed to create vehicle",
			zap.String("slug", vehicle.Slug), zap.Error(err))
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.Vehicle, error) {
	result := r.db.WithContext(ctx).Model(&model.Vehicle{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("vehicle with the same slug or VIN already exists")
		}
		r.logger.Error("Failed to update vehicle", zap.Int64("id", id), zap.Error(result.Error))
		return nil, fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("vehicle not found")
	}

	return r.GetByID(ctx, id)
}

func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Vehicle{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete vehicle", zap.Int64("id", id), zap.Error(result.Error))
		return fmt.Errorf("failed to delete vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("vehicle not found")
	}

	return nil
}

// ReplaceAll performs the bulk inventory sync: delete everything, insert the
// new set. The transaction keeps a mid-batch failure from leaving the table
// empty.
func (r *vehicleRepository) ReplaceAll(ctx context.Context, vehicles []*model.Vehicle) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Vehicle{}).Error; err != nil {
			return err
		}
		if len(vehicles) == 0 {
			return nil
		}
		return tx.Create(vehicles).Error
	})
	if err != nil {
		r.logger.Error("Failed to replace inventory",
			zap.Int("count", len(vehicles)), zap.Error(err))
		return fmt.Errorf("failed to replace inventory: %w", err)
	}

	return nil
}

func (r *vehicleRepository) ClearExpiredNewBanners(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("banner_new = ? AND created_at <= ?", true, cutoff).
		Update("banner_new", false)
	if result.Error != nil {
		r.logger.Error("Failed to clear expired NEW banners", zap.Error(result.Error))
		return 0, fmt.Errorf("failed to clear expired banners: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// CountNewSince counts vehicles still flagged NEW that were created at or
// after the cutoff.
func (r *vehicleRepository) CountNewSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("banner_new = ? AND created_at >= ?", true, cutoff).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count NEW vehicles: %w", err)
	}

	return count, nil
}

func (r *vehicleRepository) CountBanners(ctx context.Context) (*BannerCounts, error) {
	counts := &BannerCounts{}
	m := r.db.WithContext(ctx).Model(&model.Vehicle{})

	type flag struct {
		column string
		dest   *int64
	}
	for _, f := range []flag{
		{"banner_new", &counts.New},
		{"banner_reduced", &counts.Reduced},
		{"banner_great_deal", &counts.GreatDeal},
		{"banner_sold", &counts.Sold},
	} {
		if err := m.Session(&gorm.Session{}).Where(f.column+" = ?", true).Count(f.dest).Error; err != nil {
			r.logger.Error("Failed to count banner flags",
				zap.String("flag", f.column), zap.Error(err))
			return nil, fmt.Errorf("failed to count banners: %w", err)
		}
	}

	return counts, nil
}
