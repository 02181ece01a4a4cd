package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// WebhookHandler receives vehicle pushes from the inventory spreadsheet
// script. Both endpoints always answer 200 with a success flag, because
// the spreadsheet script treats any non-200 as a retryable failure.
type WebhookHandler struct {
	service *usecase.WebhookService
	logger  *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(service *usecase.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger,
	}
}

// VehicleUpdate receives one vehicle as a JSON body.
// POST /api/webhook/vehicle-update
func (h *WebhookHandler) VehicleUpdate(c echo.Context) error {
	var in usecase.WebhookVehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusOK, usecase.WebhookResult{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	return h.upsert(c, in)
}

// AddVehicle receives one vehicle as query parameters, for spreadsheet
// scripts that can only issue GETs.
// GET /api/webhook/add-vehicle
func (h *WebhookHandler) AddVehicle(c echo.Context) error {
	in := usecase.WebhookVehicleInput{
		Year:          c.QueryParam("year"),
		Make:          c.QueryParam("make"),
		Model:         c.QueryParam("model"),
		StockNumber:   c.QueryParam("stock_number"),
		VIN:           c.QueryParam("vin"),
		Price:         c.QueryParam("price"),
		Mileage:       c.QueryParam("mileage"),
		ExteriorColor: c.QueryParam("exterior_color"),
		InteriorColor: c.QueryParam("interior_color"),
		Description:   c.QueryParam("description"),
	}
	if raw := c.QueryParam("images"); raw != "" {
		in.Images = strings.Split(raw, ",")
	}

	return h.upsert(c, in)
}

func (h *WebhookHandler) upsert(c echo.Context, in usecase.WebhookVehicleInput) error {
	result, err := h.service.Upsert(c.Request().Context(), in)
	if err != nil {
		if apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
			h.logger.Error("webhook upsert failed",
				zap.String("vin", in.VIN),
				zap.Error(err))
		}
		return c.JSON(http.StatusOK, usecase.WebhookResult{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}
