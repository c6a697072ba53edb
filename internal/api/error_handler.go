package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// errorResponse is the canonical failure envelope: message always, error only
// when a more specific detail is safe to surface.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the access-control and store sentinels to deterministic HTTP codes.
//   - Logs unexpected errors internally without leaking details to the client
//     (store failures surface only a generic message).
//   - Renders the consistent {"message": ..., "error": ...} envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, validation rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, errorResponse{Message: "invalid input"}
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Message: err.Error()}
	case errors.Is(err, domain.ErrAdminNotCustomer):
		return http.StatusForbidden, errorResponse{Message: "access forbidden", Error: domain.ErrAdminNotCustomer.Error()}
	case errors.Is(err, domain.ErrForbiddenRole):
		return http.StatusForbidden, errorResponse{Message: "access forbidden"}
	case errors.Is(err, domain.ErrForbiddenOwnership):
		return http.StatusForbidden, errorResponse{Message: "access forbidden", Error: domain.ErrForbiddenOwnership.Error()}
	case errors.Is(err, domain.ErrSelfBooking):
		return http.StatusForbidden, errorResponse{Message: "access forbidden", Error: domain.ErrSelfBooking.Error()}
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPlaceNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrRefundNotFound),
		errors.Is(err, domain.ErrInquiryNotFound),
		errors.Is(err, domain.ErrFeedbackNotFound):
		return http.StatusNotFound, errorResponse{Message: err.Error()}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Message: err.Error()}
	}

	// Unexpected error (store failure or bug): log the real cause, return a
	// generic message. Internals never reach the caller.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "internal server error"}
}
