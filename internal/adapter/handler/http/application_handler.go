package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
)

// ApplicationHandler serves the public credit-application form and the
// admin review endpoints.
type ApplicationHandler struct {
	service   *usecase.ApplicationService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(service *usecase.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// CreateApplication stores a credit application.
// POST /api/applications
func (h *ApplicationHandler) CreateApplication(c echo.Context) error {
	var in usecase.CreateApplicationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if err := h.validator.Struct(in); err != nil {
		return writeValidationError(c, err)
	}

	app, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		h.logger.Error("failed to create application", zap.Error(err))
		return writeError(c, err)
	}

	// Applications carry SSNs; log the ID only.
	h.logger.Info("credit application received", zap.String("id", app.ID.String()))

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"id":      app.ID,
		"status":  app.Status,
	})
}

// GetApplications returns applications, optionally filtered by status.
// GET /api/admin/applications
func (h *ApplicationHandler) GetApplications(c echo.Context) error {
	apps, err := h.service.GetAll(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		h.logger.Error("failed to list applications", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, apps)
}

// GetApplication returns one application by ID.
// GET /api/admin/applications/:id
func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	app, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, app)
}

// UpdateApplication applies an admin review: status and notes.
// PATCH /api/admin/applications/:id
func (h *ApplicationHandler) UpdateApplication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	var in usecase.UpdateApplicationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if err := h.validator.Struct(in); err != nil {
		return writeValidationError(c, err)
	}

	app, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		h.logger.Error("failed to update application",
			zap.String("id", id.String()),
			zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, app)
}

// DeleteApplication removes an application.
// DELETE /api/admin/applications/:id
func (h *ApplicationHandler) DeleteApplication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid application ID"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error("failed to delete application",
			zap.String("id", id.String()),
			zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
