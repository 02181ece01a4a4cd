package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/drive"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// WebhookVehicleInput carries the field values a spreadsheet pushes at the
// webhook. Everything arrives as strings because the GET variant reads
// query parameters.
type WebhookVehicleInput struct {
	Year          string   `json:"year"`
	Make          string   `json:"make"`
	Model         string   `json:"model"`
	StockNumber   string   `json:"stock_number"`
	VIN           string   `json:"vin"`
	Price         string   `json:"price"`
	Mileage       string   `json:"mileage"`
	ExteriorColor string   `json:"exterior_color"`
	InteriorColor string   `json:"interior_color"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
}

// WebhookResult is the discriminated outcome the spreadsheet script reads.
type WebhookResult struct {
	Success bool           `json:"success"`
	Action  string         `json:"action,omitempty"` // "exists" | "created"
	Vehicle *model.Vehicle `json:"vehicle,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// WebhookService upserts vehicles pushed from the inventory spreadsheet.
// It is create-only: a repeated VIN reports "exists" without modifying the
// stored record.
type WebhookService struct {
	repo   repository.VehicleRepository
	logger *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(repo repository.VehicleRepository, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		repo:   repo,
		logger: logger,
	}
}

// Upsert validates the pushed fields and creates the vehicle unless one
// with the same VIN already exists.
func (s *WebhookService) Upsert(ctx context.Context, in WebhookVehicleInput) (*WebhookResult, error) {
	year, _ := strconv.Atoi(strings.TrimSpace(in.Year))
	make := strings.TrimSpace(in.Make)
	vmodel := strings.TrimSpace(in.Model)
	if year == 0 || make == "" || vmodel == "" {
		return nil, apperrors.InvalidArgument("year, make and model are required")
	}

	vin := strings.ToUpper(strings.TrimSpace(in.VIN))
	if vin != "" {
		existing, err := s.repo.GetByVIN(ctx, vin)
		if err == nil && existing != nil {
			s.logger.Info("Webhook vehicle already exists",
				zap.String("vin", vin),
				zap.Int64("id", existing.ID))
			return &WebhookResult{Success: true, Action: "exists", Vehicle: existing}, nil
		}
		if err != nil && apperrors.CodeOf(err) != apperrors.CodeNotFound {
			return nil, err
		}
	}

	images := model.StringList{}
	for _, raw := range in.Images {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		images = append(images, drive.ConvertShareURL(strings.TrimSpace(raw)))
	}

	stockNumber := strings.TrimSpace(in.StockNumber)
	title := fmt.Sprintf("%d %s %s", year, make, vmodel)

	vehicle := &model.Vehicle{
		Slug:          TitleSlug(title, stockNumber),
		StockNumber:   stockNumber,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Year:          year,
		Make:          make,
		Model:         vmodel,
		Mileage:       strings.TrimSpace(in.Mileage),
		ExteriorColor: strings.TrimSpace(in.ExteriorColor),
		InteriorColor: strings.TrimSpace(in.InteriorColor),
		Price:         parsePrice(in.Price),
		Status:        model.VehicleStatusForSale,
		Images:        images,
		TitleStatus:   model.TitleStatusUnknown,
	}
	if vin != "" {
		vehicle.VIN = &vin
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.Info("Webhook vehicle created",
		zap.Int64("id", vehicle.ID),
		zap.String("slug", vehicle.Slug))

	return &WebhookResult{Success: true, Action: "created", Vehicle: vehicle}, nil
}
