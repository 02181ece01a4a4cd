package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
)

// NewBannerTTL is how long a listing keeps its NEW banner.
const NewBannerTTL = 5 * 24 * time.Hour

// BannerStats is the admin dashboard's banner overview.
type BannerStats struct {
	NewCount       int64 `json:"new_count"`
	ExpiringSoon   int64 `json:"expiring_soon"`
	ReducedCount   int64 `json:"reduced_count"`
	GreatDealCount int64 `json:"great_deal_count"`
	SoldCount      int64 `json:"sold_count"`
}

// BannerService expires NEW banners on aging listings.
type BannerService struct {
	repo   repository.VehicleRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewBannerService creates a new banner service
func NewBannerService(repo repository.VehicleRepository, logger *zap.Logger) *BannerService {
	return &BannerService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CleanupExpired clears banner_new on vehicles older than the TTL and
// returns how many were cleared. Clearing an already-cleared flag is a
// no-op, so concurrent runs are harmless.
func (s *BannerService) CleanupExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-NewBannerTTL)

	cleared, err := s.repo.ClearExpiredNewBanners(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if cleared > 0 {
		s.logger.Info("Expired NEW banners cleared", zap.Int64("count", cleared))
	} else {
		s.logger.Debug("No NEW banners due for expiry")
	}

	return cleared, nil
}

// Stats reports current banner counts and how many NEW banners expire
// within the next day.
func (s *BannerService) Stats(ctx context.Context) (*BannerStats, error) {
	now := s.now()

	counts, err := s.repo.CountBanners(ctx)
	if err != nil {
		return nil, err
	}

	// NEW banners expire when the listing turns 5 days old, so anything
	// created between 4 and 5 days ago expires within a day.
	notYetExpired := now.Add(-NewBannerTTL)
	expiringSoonTotal, err := s.repo.CountNewSince(ctx, notYetExpired)
	if err != nil {
		return nil, err
	}
	safe, err := s.repo.CountNewSince(ctx, now.Add(-(NewBannerTTL - 24*time.Hour)))
	if err != nil {
		return nil, err
	}

	return &BannerStats{
		NewCount:       counts.New,
		ExpiringSoon:   expiringSoonTotal - safe,
		ReducedCount:   counts.Reduced,
		GreatDealCount: counts.GreatDeal,
		SoldCount:      counts.Sold,
	}, nil
}
