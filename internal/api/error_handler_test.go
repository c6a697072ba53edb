package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrong role", domain.ErrForbiddenRole, http.StatusForbidden},
		{"not owner", domain.ErrForbiddenOwnership, http.StatusForbidden},
		{"self booking", domain.ErrSelfBooking, http.StatusForbidden},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound},
		{"place missing", domain.ErrPlaceNotFound, http.StatusNotFound},
		{"refund missing", domain.ErrRefundNotFound, http.StatusNotFound},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("status = %d, want %d", code, tc.code)
			}
			if body.Message == "" {
				t.Fatalf("empty message in envelope")
			}
		})
	}
}

func TestHTTPErrorHandler_AdminOnCustomerEndpoint(t *testing.T) {
	code, body := renderError(t, domain.ErrAdminNotCustomer)
	if code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
	if body.Error != "Admin users should use admin endpoints" {
		t.Fatalf("error detail = %q", body.Error)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorMasked(t *testing.T) {
	code, body := renderError(t, errors.New("mongo: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body.Message != "internal server error" || body.Error != "" {
		t.Fatalf("internal detail leaked: %+v", body)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if body.Message != "invalid payload" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestHTTPErrorHandler_WrappedSentinel(t *testing.T) {
	// Sentinels are matched with errors.Is, so wrapping must not change the
	// mapping.
	wrapped := errors.Join(errors.New("loading place p1"), domain.ErrPlaceNotFound)
	code, _ := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}
