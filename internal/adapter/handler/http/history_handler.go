package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
)

// HistoryHandler serves vehicle history reports fetched from the wired
// report providers.
type HistoryHandler struct {
	service *usecase.HistoryService
	logger  *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service *usecase.HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		logger:  logger,
	}
}

// GetReport fetches a history report for a VIN, trying the preferred
// provider first. A VIN no provider knows yields available:false, not 404:
// the detail page renders fine without a report.
// GET /api/vehicle-history/:vin
func (h *HistoryHandler) GetReport(c echo.Context) error {
	vin := strings.ToUpper(strings.TrimSpace(c.Param("vin")))
	if vin == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "VIN is required"})
	}

	report, err := h.service.GetReport(c.Request().Context(), vin, c.QueryParam("provider"))
	if err != nil {
		h.logger.Error("history lookup failed",
			zap.String("vin", vin),
			zap.Error(err))
		return writeError(c, err)
	}

	if report == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"available": false,
			"vin":       vin,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"available": true,
		"report":    report,
	})
}

// RequestReport asks a provider to generate a fresh report for a VIN.
// POST /api/vehicle-history/:vin/request
func (h *HistoryHandler) RequestReport(c echo.Context) error {
	vin := strings.ToUpper(strings.TrimSpace(c.Param("vin")))
	if vin == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "VIN is required"})
	}

	reportID, providerName, err := h.service.RequestReport(c.Request().Context(), vin, c.QueryParam("provider"))
	if err != nil {
		h.logger.Error("history report request failed",
			zap.String("vin", vin),
			zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusAccepted, echo.Map{
		"report_id": reportID,
		"provider":  providerName,
	})
}

// AutoPopulateHistory fetches the best available report for a vehicle and
// writes its history fields onto the listing.
// POST /api/vehicles/:id/auto-populate-history
func (h *HistoryHandler) AutoPopulateHistory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid vehicle ID"})
	}

	report, err := h.service.AutoPopulate(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("history auto-populate failed",
			zap.Int64("vehicle_id", id),
			zap.Error(err))
		return writeError(c, err)
	}

	if report == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"success": false,
			"message": "No history report available for this vehicle",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"provider": report.Provider,
		"report":   report,
	})
}
