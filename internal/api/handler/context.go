package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/stayflow/rental-marketplace/internal/api/middleware"
	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// ctxPrincipal returns the principal resolved by the Authenticator middleware,
// or nil on optionally-authenticated routes when no credential resolved.
func ctxPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(middleware.PrincipalKey).(*domain.Principal)
	return p
}

// requirePrincipal is the fast-fail accessor for routes whose enforcement mode
// guarantees identity; a nil principal here means the middleware did not run.
func requirePrincipal(c echo.Context) (*domain.Principal, error) {
	p := ctxPrincipal(c)
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}
