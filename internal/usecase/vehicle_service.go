package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// slugRetries bounds how many random suffixes Create tries on collision.
const slugRetries = 5

// VehicleService implements the vehicle store operations.
type VehicleService struct {
	repo   repository.VehicleRepository
	logger *zap.Logger
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(repo repository.VehicleRepository, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		repo:   repo,
		logger: logger,
	}
}

// CreateVehicleInput carries the fields accepted when creating a listing.
type CreateVehicleInput struct {
	Slug        string `json:"slug"`
	VIN         string `json:"vin"`
	StockNumber string `json:"stock_number"`

	Title         string `json:"title"`
	Description   string `json:"description"`
	Year          int    `json:"year" validate:"required"`
	Make          string `json:"make" validate:"required"`
	Model         string `json:"model" validate:"required"`
	Mileage       string `json:"mileage"`
	ExteriorColor string `json:"exterior_color"`
	InteriorColor string `json:"interior_color"`
	Engine        string `json:"engine"`
	Transmission  string `json:"transmission"`
	DriveType     string `json:"drive_type"`

	Price  int64  `json:"price" validate:"min=0"`
	Status string `json:"status" validate:"omitempty,oneof=for-sale pending sold"`

	Images      []string `json:"images"`
	KeyFeatures []string `json:"key_features"`

	BannerNew       bool `json:"banner_new"`
	BannerReduced   bool `json:"banner_reduced"`
	BannerGreatDeal bool `json:"banner_great_deal"`
	BannerSold      bool `json:"banner_sold"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// UpdateVehicleInput carries a partial update; nil fields are untouched.
type UpdateVehicleInput struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Year          *int    `json:"year"`
	Make          *string `json:"make"`
	Model         *string `json:"model"`
	Mileage       *string `json:"mileage"`
	ExteriorColor *string `json:"exterior_color"`
	InteriorColor *string `json:"interior_color"`
	Engine        *string `json:"engine"`
	Transmission  *string `json:"transmission"`
	DriveType     *string `json:"drive_type"`

	Price  *int64  `json:"price" validate:"omitempty,min=0"`
	Status *string `json:"status" validate:"omitempty,oneof=for-sale pending sold"`

	Images      *[]string `json:"images"`
	KeyFeatures *[]string `json:"key_features"`

	BannerNew       *bool `json:"banner_new"`
	BannerReduced   *bool `json:"banner_reduced"`
	BannerGreatDeal *bool `json:"banner_great_deal"`
	BannerSold      *bool `json:"banner_sold"`

	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
}

// SearchInput is the raw query-string form of a vehicle search.
type SearchInput struct {
	Make     string
	Model    string
	Year     string
	MaxPrice string
	Status   string
}

func (s *VehicleService) GetAll(ctx context.Context) ([]*model.Vehicle, error) {
	return s.repo.GetAll(ctx)
}

func (s *VehicleService) GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *VehicleService) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

// Search parses the raw filter values and runs the query. Unknown year
// buckets and non-numeric prices are rejected as invalid arguments.
func (s *VehicleService) Search(ctx context.Context, in SearchInput) ([]*model.Vehicle, error) {
	filters := repository.VehicleFilters{
		Make:   strings.TrimSpace(in.Make),
		Model:  strings.TrimSpace(in.Model),
		Status: model.VehicleStatus(strings.TrimSpace(in.Status)),
	}

	if in.Year != "" {
		yearMin, yearMax, err := ParseYearBucket(in.Year)
		if err != nil {
			return nil, apperrors.InvalidArgument(err.Error())
		}
		filters.YearMin = yearMin
		filters.YearMax = yearMax
	}

	if in.MaxPrice != "" {
		maxPrice, err := strconv.ParseInt(in.MaxPrice, 10, 64)
		if err != nil || maxPrice < 0 {
			return nil, apperrors.InvalidArgument("maxPrice must be a non-negative integer")
		}
		filters.MaxPrice = maxPrice
	}

	return s.repo.Search(ctx, filters)
}

// Create stores a new listing. When no slug is given one is derived from
// year/make/model/VIN; slug collisions are retried with a random suffix so
// a duplicate title never silently overwrites an existing listing.
func (s *VehicleService) Create(ctx context.Context, in CreateVehicleInput) (*model.Vehicle, error) {
	if in.Year == 0 || strings.TrimSpace(in.Make) == "" || strings.TrimSpace(in.Model) == "" {
		return nil, apperrors.InvalidArgument("year, make and model are required")
	}
	if in.Price < 0 {
		return nil, apperrors.InvalidArgument("price must not be negative")
	}
	if in.Status != "" && !validStatus(model.VehicleStatus(in.Status)) {
		return nil, apperrors.InvalidArgument("invalid vehicle status")
	}

	vehicle := s.buildVehicle(in)

	explicitSlug := strings.TrimSpace(in.Slug) != ""
	if !explicitSlug {
		vehicle.Slug = VehicleSlug(in.Year, in.Make, in.Model, in.VIN)
	}

	for attempt := 0; ; attempt++ {
		err := s.repo.Create(ctx, vehicle)
		if err == nil {
			s.logger.Info("Vehicle created",
				zap.Int64("id", vehicle.ID),
				zap.String("slug", vehicle.Slug))
			return vehicle, nil
		}

		// A caller-chosen slug or a duplicate VIN is a hard conflict;
		// only generated slugs are retried.
		if apperrors.CodeOf(err) != apperrors.CodeConflict || explicitSlug || attempt >= slugRetries {
			return nil, err
		}
		if vehicle.VIN != nil {
			if existing, lookupErr := s.repo.GetByVIN(ctx, *vehicle.VIN); lookupErr == nil && existing != nil {
				return nil, apperrors.Conflict("vehicle with this VIN already exists")
			}
		}

		vehicle.Slug = fmt.Sprintf("%s-%s",
			VehicleSlug(in.Year, in.Make, in.Model, in.VIN),
			uuid.NewString()[:6])
		s.logger.Debug("Slug collision, retrying with suffix",
			zap.String("slug", vehicle.Slug), zap.Int("attempt", attempt+1))
	}
}

func validStatus(status model.VehicleStatus) bool {
	switch status {
	case model.VehicleStatusForSale, model.VehicleStatusPending, model.VehicleStatusSold:
		return true
	}
	return false
}

func (s *VehicleService) buildVehicle(in CreateVehicleInput) *model.Vehicle {
	status := model.VehicleStatus(in.Status)
	if status == "" {
		status = model.VehicleStatusForSale
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = fmt.Sprintf("%d %s %s", in.Year, in.Make, in.Model)
	}

	vehicle := &model.Vehicle{
		Slug:            strings.TrimSpace(in.Slug),
		StockNumber:     strings.TrimSpace(in.StockNumber),
		Title:           title,
		Description:     in.Description,
		Year:            in.Year,
		Make:            strings.TrimSpace(in.Make),
		Model:           strings.TrimSpace(in.Model),
		Mileage:         strings.TrimSpace(in.Mileage),
		ExteriorColor:   strings.TrimSpace(in.ExteriorColor),
		InteriorColor:   strings.TrimSpace(in.InteriorColor),
		Engine:          strings.TrimSpace(in.Engine),
		Transmission:    strings.TrimSpace(in.Transmission),
		DriveType:       strings.TrimSpace(in.DriveType),
		Price:           in.Price,
		Status:          status,
		Images:          in.Images,
		KeyFeatures:     in.KeyFeatures,
		BannerNew:       in.BannerNew,
		BannerReduced:   in.BannerReduced,
		BannerGreatDeal: in.BannerGreatDeal,
		BannerSold:      in.BannerSold,
		TitleStatus:     model.TitleStatusUnknown,
	}

	if vin := strings.ToUpper(strings.TrimSpace(in.VIN)); vin != "" {
		vehicle.VIN = &vin
	}
	if mt := strings.TrimSpace(in.MetaTitle); mt != "" {
		vehicle.MetaTitle = &mt
	}
	if md := strings.TrimSpace(in.MetaDescription); md != "" {
		vehicle.MetaDescription = &md
	}

	return vehicle
}

// Update applies the non-nil fields of a partial update.
func (s *VehicleService) Update(ctx context.Context, id int64, in UpdateVehicleInput) (*model.Vehicle, error) {
	fields := map[string]interface{}{}

	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	setBool := func(column string, v *bool) {
		if v != nil {
			fields[column] = *v
		}
	}

	setString("title", in.Title)
	setString("description", in.Description)
	setString("mileage", in.Mileage)
	setString("exterior_color", in.ExteriorColor)
	setString("interior_color", in.InteriorColor)
	setString("engine", in.Engine)
	setString("transmission", in.Transmission)
	setString("drive_type", in.DriveType)
	setString("meta_title", in.MetaTitle)
	setString("meta_description", in.MetaDescription)

	setBool("banner_new", in.BannerNew)
	setBool("banner_reduced", in.BannerReduced)
	setBool("banner_great_deal", in.BannerGreatDeal)
	setBool("banner_sold", in.BannerSold)

	if in.Year != nil {
		fields["year"] = *in.Year
	}
	if in.Make != nil {
		fields["make"] = *in.Make
	}
	if in.Model != nil {
		fields["model"] = *in.Model
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, apperrors.InvalidArgument("price must not be negative")
		}
		fields["price"] = *in.Price
	}
	if in.Status != nil {
		status := model.VehicleStatus(*in.Status)
		if !validStatus(status) {
			return nil, apperrors.InvalidArgument("invalid vehicle status")
		}
		fields["status"] = status
	}
	if in.Images != nil {
		fields["images"] = model.StringList(*in.Images)
	}
	if in.KeyFeatures != nil {
		fields["key_features"] = model.StringList(*in.KeyFeatures)
	}

	if len(fields) == 0 {
		return s.repo.GetByID(ctx, id)
	}

	return s.repo.Update(ctx, id, fields)
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ParseYearBucket parses the search form's year filter: "2020+",
// "2015-2019", or an exact year.
func ParseYearBucket(bucket string) (int, int, error) {
	bucket = strings.TrimSpace(bucket)

	switch {
	case strings.HasSuffix(bucket, "+"):
		year, err := strconv.Atoi(strings.TrimSuffix(bucket, "+"))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year filter %q", bucket)
		}
		return year, 0, nil
	case strings.Contains(bucket, "-"):
		parts := strings.SplitN(bucket, "-", 2)
		lo, err1 := strconv.Atoi(parts[0])
		hi, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || lo > hi {
			return 0, 0, fmt.Errorf("invalid year filter %q", bucket)
		}
		return lo, hi, nil
	default:
		year, err := strconv.Atoi(bucket)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year filter %q", bucket)
		}
		return year, year, nil
	}
}
