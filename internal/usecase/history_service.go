package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/provider"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// HistoryService queries vehicle history providers with fallback. Absence
// of a report is an expected outcome and is reported as a nil report, not
// an error.
type HistoryService struct {
	providers []provider.HistoryProvider
	repo      repository.VehicleRepository
	logger    *zap.Logger
}

// NewHistoryService creates a history service over the given providers, in
// fallback order.
func NewHistoryService(providers []provider.HistoryProvider, repo repository.VehicleRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		providers: providers,
		repo:      repo,
		logger:    logger,
	}
}

// GetReport fetches a report for a VIN, trying the preferred provider first
// and then the rest in fixed order. Unauthenticated or failing providers
// are skipped with a logged warning.
func (s *HistoryService) GetReport(ctx context.Context, vin, preferred string) (*provider.Report, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if vin == "" {
		return nil, apperrors.InvalidArgument("vin is required")
	}

	for _, p := range s.orderedProviders(preferred) {
		if !p.Authenticate(ctx) {
			s.logger.Debug("History provider not authenticated, skipping",
				zap.String("provider", p.Name()))
			continue
		}

		report, err := p.GetReport(ctx, vin)
		if err != nil {
			s.logger.Warn("History provider request failed",
				zap.String("provider", p.Name()),
				zap.String("vin", vin),
				zap.Error(err))
			continue
		}
		if report != nil {
			return report, nil
		}
	}

	return nil, nil
}

// GetBestReport queries every authenticated provider and returns the report
// with the highest self-reported confidence.
func (s *HistoryService) GetBestReport(ctx context.Context, vin string) (*provider.Report, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if vin == "" {
		return nil, apperrors.InvalidArgument("vin is required")
	}

	var best *provider.Report
	for _, p := range s.providers {
		if !p.Authenticate(ctx) {
			continue
		}

		report, err := p.GetReport(ctx, vin)
		if err != nil {
			s.logger.Warn("History provider request failed",
				zap.String("provider", p.Name()),
				zap.String("vin", vin),
				zap.Error(err))
			continue
		}
		if report == nil {
			continue
		}
		if best == nil || report.ConfidenceScore > best.ConfidenceScore {
			best = report
		}
	}

	return best, nil
}

// RequestReport asks a named provider (or the first authenticated one) to
// generate a fresh report.
func (s *HistoryService) RequestReport(ctx context.Context, vin, providerName string) (string, string, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if vin == "" {
		return "", "", apperrors.InvalidArgument("vin is required")
	}

	for _, p := range s.orderedProviders(providerName) {
		if !p.Authenticate(ctx) {
			continue
		}

		reportID, err := p.RequestReport(ctx, vin)
		if err != nil {
			s.logger.Warn("History report request failed",
				zap.String("provider", p.Name()),
				zap.String("vin", vin),
				zap.Error(err))
			continue
		}
		return reportID, p.Name(), nil
	}

	return "", "", apperrors.NewAppError(apperrors.CodeInternal,
		"no history provider available", nil)
}

// AutoPopulate fetches the best available report for a vehicle's VIN and
// writes the history fields onto the record. Returns the report used, or
// nil when no provider had one.
func (s *HistoryService) AutoPopulate(ctx context.Context, vehicleID int64) (*provider.Report, error) {
	vehicle, err := s.repo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.VIN == nil || *vehicle.VIN == "" {
		return nil, apperrors.InvalidArgument("vehicle has no VIN")
	}

	report, err := s.GetBestReport(ctx, *vehicle.VIN)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}

	now := time.Now()
	fields := map[string]interface{}{
		"vehicle_history_score": report.HistoryScore,
		"accident_history":      report.AccidentHistory,
		"previous_owners":       report.PreviousOwners,
		"service_records":       report.ServiceRecords,
		"title_status":          report.TitleStatus,
		"last_history_update":   now,
	}
	if report.EmbedCode != "" {
		fields["carfax_embed_code"] = report.EmbedCode
	}
	if report.ReportURL != "" {
		fields["autocheck_url"] = report.ReportURL
	}

	if _, err := s.repo.Update(ctx, vehicleID, fields); err != nil {
		return nil, fmt.Errorf("failed to store history fields: %w", err)
	}

	s.logger.Info("Vehicle history populated",
		zap.Int64("vehicle_id", vehicleID),
		zap.String("provider", report.Provider),
		zap.Int("confidence", report.ConfidenceScore))

	return report, nil
}

// orderedProviders returns the provider list with the preferred one moved
// to the front.
func (s *HistoryService) orderedProviders(preferred string) []provider.HistoryProvider {
	if preferred == "" {
		return s.providers
	}

	ordered := make([]provider.HistoryProvider, 0, len(s.providers))
	for _, p := range s.providers {
		if p.Name() == preferred {
			ordered = append(ordered, p)
		}
	}
	for _, p := range s.providers {
		if p.Name() != preferred {
			ordered = append(ordered, p)
		}
	}
	return ordered
}
