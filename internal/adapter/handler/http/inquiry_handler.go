package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
)

// InquiryHandler serves the public contact form and the admin inquiry list.
type InquiryHandler struct {
	service   *usecase.InquiryService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(service *usecase.InquiryService, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// CreateInquiry stores a contact-form submission.
// POST /api/inquiries
func (h *InquiryHandler) CreateInquiry(c echo.Context) error {
	var in usecase.CreateInquiryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if err := h.validator.Struct(in); err != nil {
		return writeValidationError(c, err)
	}

	inquiry, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		h.logger.Error("failed to create inquiry", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, inquiry)
}

// GetInquiries returns every inquiry, newest first.
// GET /api/admin/inquiries
func (h *InquiryHandler) GetInquiries(c echo.Context) error {
	inquiries, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list inquiries", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, inquiries)
}
