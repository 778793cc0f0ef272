package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"passport/internal/delivery/http/response"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. It translates
// the domain error taxonomy, token codec sentinels and validation failures
// into the stable wire envelopes.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Token codec sentinels surface from decode paths that never touch the
	// AppError taxonomy (e.g. email verification links).
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		m.writeAppError(c, domainerrors.ErrTokenExpired)

		return
	case errors.Is(err, service.ErrTokenSignatureInvalid), errors.Is(err, service.ErrTokenMalformed):
		m.writeAppError(c, domainerrors.ErrInvalidCredentials)

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		m.writeAppError(c, appErr)

		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		m.writeValidationError(c, validationErrs)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			message = s
		}

		errorCode := "HTTP_ERROR"
		if httpErr.Code == http.StatusBadRequest {
			// Binding failures share the validation code.
			errorCode = domainerrors.CodeValidateError
		}

		m.write(c, httpErr.Code, response.ErrorResponse{
			ErrorCode: errorCode,
			Message:   message,
		})

		return
	}

	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	m.write(c, http.StatusInternalServerError, response.ErrorResponse{
		ErrorCode: "INTERNAL_ERROR",
		Message:   "Internal server error",
	})
}

func (m *ErrorMiddleware) writeAppError(c echo.Context, appErr domainerrors.AppError) {
	m.write(c, appErr.HTTPCode(), response.ErrorResponse{
		ErrorCode: appErr.ErrorCode(),
		Message:   appErr.Message(),
	})
}

func (m *ErrorMiddleware) writeValidationError(c echo.Context, validationErrs validator.ValidationErrors) {
	fields := make([]response.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, response.FieldError{
			Location:  "body." + strings.ToLower(fe.Field()),
			Message:   fieldErrorMessage(fe),
			ErrorType: fe.Tag(),
			Context:   fe.Param(),
		})
	}

	m.write(c, domainerrors.ErrValidation.HTTPCode(), response.ValidationErrorResponse{
		ErrorCode: domainerrors.ErrValidation.ErrorCode(),
		Message:   domainerrors.ErrValidation.Message(),
		Errors:    fields,
	})
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	default:
		return "invalid value"
	}
}

func (m *ErrorMiddleware) write(c echo.Context, statusCode int, body any) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(statusCode)
	} else {
		err = c.JSON(statusCode, body)
	}
	if err != nil {
		m.logger.Error("Failed to write error response", slog.String("error", err.Error()))
	}
}
