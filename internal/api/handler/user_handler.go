package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayflow/rental-marketplace/internal/api/metrics"
	"github.com/stayflow/rental-marketplace/internal/api/middleware"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

// UserHandler handles registration, the login flows, and account endpoints.
type UserHandler struct {
	auth         ports.AuthService
	dashboard    ports.DashboardService
	cookieMaxAge int
}

func NewUserHandler(auth ports.AuthService, dashboard ports.DashboardService, cookieMaxAge int) *UserHandler {
	return &UserHandler{auth: auth, dashboard: dashboard, cookieMaxAge: cookieMaxAge}
}

// Register creates a customer account and opens a session.
//
// @Summary      Register a new customer
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /user/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("register").Inc()
	return h.session(c, http.StatusCreated, result)
}

// Login authenticates with email and password.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("password").Inc()
	return h.session(c, http.StatusOK, result)
}

// GoogleLogin signs in with a decoded Google profile, creating the account on
// first use.
//
// @Summary      Login via Google profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "Decoded Google profile"
// @Success      200   {object}  authResponse
// @Router       /user/google/login [post]
func (h *UserHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.GoogleLogin(c.Request().Context(), ports.GoogleLoginInput{
		Email:    req.Email,
		Name:     req.Name,
		GoogleID: req.GoogleID,
	})
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("google").Inc()
	return h.session(c, http.StatusOK, result)
}

// AdminLogin authenticates an admin account.
//
// @Summary      Admin login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /user/admin/login [post]
func (h *UserHandler) AdminLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("admin").Inc()
	return h.session(c, http.StatusOK, result)
}

// AdminRegister bootstraps an admin account gated by the configured setup code.
//
// @Summary      Bootstrap an admin account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      adminRegisterRequest  true  "Registration details plus setup code"
// @Success      201   {object}  authResponse
// @Failure      403   {object}  errorResponse
// @Router       /user/admin/register [post]
func (h *UserHandler) AdminRegister(c echo.Context) error {
	var req adminRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.AdminRegister(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, req.SetupCode)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("admin_register").Inc()
	return h.session(c, http.StatusCreated, result)
}

// AdminCreate lets an authenticated admin issue another admin account. No
// session is opened for the new account.
//
// @Summary      Create an admin account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "New admin details"
// @Success      201   {object}  userView
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /user/admin/create [post]
func (h *UserHandler) AdminCreate(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.auth.AdminCreate(c.Request().Context(), actor, ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, viewUser(created))
}

// Profile returns the resolved principal, or null when the request carries no
// usable credential.
//
// @Summary      Current principal
// @Tags         users
// @Produce      json
// @Success      200  {object}  userView
// @Router       /user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, viewUser(ctxPrincipal(c)))
}

// Logout clears the session cookie. The token itself stays valid until its
// expiry elapses; there is no server-side revocation list.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /user/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	c.SetCookie(middleware.SessionCookie("", -1))
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Dashboard reports marketplace-wide entity counts.
//
// @Summary      Admin dashboard counts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardCounts
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /user/admin/dashboard [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	counts, err := h.dashboard.Counts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// session sets the httpOnly cookie and renders the auth envelope.
func (h *UserHandler) session(c echo.Context, status int, result *ports.AuthResult) error {
	c.SetCookie(middleware.SessionCookie(result.Token, h.cookieMaxAge))
	return c.JSON(status, authResponse{Token: result.Token, User: viewUser(result.User)})
}
