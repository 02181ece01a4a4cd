package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// writeError maps an application error onto the JSON error body and status
// code the frontend expects.
func writeError(c echo.Context, err error) error {
	status := apperrors.StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		message = "Internal server error"
	}

	return c.JSON(status, echo.Map{
		"error": message,
		"code":  apperrors.CodeOf(err),
	})
}

// writeValidationError returns a 400 with itemized per-field errors.
func writeValidationError(c echo.Context, err error) error {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fieldName(fe)] = validationMessage(fe)
		}
	}

	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  "Validation failed",
		"code":   apperrors.CodeInvalidArgument,
		"fields": fields,
	})
}

func fieldName(fe validator.FieldError) string {
	// validator reports the Go namespace; the frontend wants the JSON path.
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snakeCase(p)
	}
	return strings.Join(parts, ".")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				prev := rune(s[i-1])
				if prev < 'A' || prev > 'Z' {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
