package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayflow/rental-marketplace/internal/core/authz"
	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// GuardHandler is the server-side mirror of the SPA's route guards
// (ProtectedRoute, CustomerRoute, AdminRoute). It exists purely so the client
// can avoid flashing unauthorized views before its first API call; it is NOT
// a trust boundary. Every data route enforces its own mode regardless of
// what this endpoint reported.
type GuardHandler struct{}

func NewGuardHandler() *GuardHandler {
	return &GuardHandler{}
}

type guardResponse struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// guardModes maps the SPA's named route classes to enforcement modes and the
// redirect target shown when the class denies.
var guardModes = map[string]struct {
	mode     authz.Mode
	redirect string
}{
	"protected": {authz.RequireAuthenticated, "/login"},
	"customer":  {authz.RequireCustomer, "/login"},
	"admin":     {authz.RequireAdmin, "/admin/login"},
}

// Check handles GET /auth/guard/:route under OptionalAuth: it never rejects,
// it only reports what the decision engine would say.
//
// @Summary      Route-guard verdict (advisory only)
// @Tags         auth
// @Produce      json
// @Param        route  path      string  true  "Route class: protected, customer, or admin"
// @Success      200    {object}  guardResponse
// @Router       /auth/guard/{route} [get]
func (h *GuardHandler) Check(c echo.Context) error {
	entry, ok := guardModes[c.Param("route")]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown route class")
	}

	principal := ctxPrincipal(c)
	if err := authz.Decide(principal, entry.mode); err != nil {
		redirect := entry.redirect
		// An authenticated caller with the wrong role goes home, not to login.
		if principal != nil && !errors.Is(err, domain.ErrUnauthenticated) {
			redirect = "/"
		}
		return c.JSON(http.StatusOK, guardResponse{Allowed: false, Redirect: redirect})
	}
	return c.JSON(http.StatusOK, guardResponse{Allowed: true})
}
