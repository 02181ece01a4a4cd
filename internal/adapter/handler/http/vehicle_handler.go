package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
)

// VehicleHandler serves the public inventory endpoints and the admin
// listing mutations.
type VehicleHandler struct {
	service   *usecase.VehicleService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(service *usecase.VehicleService, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// GetVehicles returns every listing, banner-new first, newest first.
// GET /api/vehicles
func (h *VehicleHandler) GetVehicles(c echo.Context) error {
	vehicles, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list vehicles", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, vehicles)
}

// SearchVehicles filters listings by make, model, year bucket, price cap
// and status.
// GET /api/vehicles/search
func (h *VehicleHandler) SearchVehicles(c echo.Context) error {
	in := usecase.SearchInput{
		Make:     c.QueryParam("make"),
		Model:    c.QueryParam("model"),
		Year:     c.QueryParam("year"),
		MaxPrice: c.QueryParam("maxPrice"),
		Status:   c.QueryParam("status"),
	}

	vehicles, err := h.service.Search(c.Request().Context(), in)
	if err != nil {
		h.logger.Warn("vehicle search failed",
			zap.String("year", in.Year),
			zap.String("maxPrice", in.MaxPrice),
			zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, vehicles)
}

// GetVehicleBySlug returns one listing by its URL slug.
// GET /api/vehicles/:slug
func (h *VehicleHandler) GetVehicleBySlug(c echo.Context) error {
	slug := c.Param("slug")

	vehicle, err := h.service.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, vehicle)
}

// CreateVehicle stores a new listing.
// POST /api/vehicles
func (h *VehicleHandler) CreateVehicle(c echo.Context) error {
	var in usecase.CreateVehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if err := h.validator.Struct(in); err != nil {
		return writeValidationError(c, err)
	}

	vehicle, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		h.logger.Error("failed to create vehicle",
			zap.String("vin", in.VIN),
			zap.Error(err))
		return writeError(c, err)
	}

	h.logger.Info("vehicle created",
		zap.Int64("id", vehicle.ID),
		zap.String("slug", vehicle.Slug))

	return c.JSON(http.StatusCreated, vehicle)
}

// UpdateVehicle applies a partial update to a listing.
// PATCH /api/vehicles/:id
func (h *VehicleHandler) UpdateVehicle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid vehicle ID"})
	}

	var in usecase.UpdateVehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if err := h.validator.Struct(in); err != nil {
		return writeValidationError(c, err)
	}

	vehicle, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		h.logger.Error("failed to update vehicle",
			zap.Int64("id", id),
			zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a listing.
// DELETE /api/vehicles/:id
func (h *VehicleHandler) DeleteVehicle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid vehicle ID"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error("failed to delete vehicle",
			zap.Int64("id", id),
			zap.Error(err))
		return writeError(c, err)
	}

	h.logger.Info("vehicle deleted", zap.Int64("id", id))

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
