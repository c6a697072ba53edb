package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stayflow/rental-marketplace/internal/api/middleware"
	"github.com/stayflow/rental-marketplace/internal/core/domain"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn         func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	googleLoginFn   func(ctx context.Context, input ports.GoogleLoginInput) (*ports.AuthResult, error)
	adminLoginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	adminRegisterFn func(ctx context.Context, input ports.RegisterInput, setupCode string) (*ports.AuthResult, error)
	adminCreateFn   func(ctx context.Context, actor *domain.Principal, input ports.RegisterInput) (*domain.Principal, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) GoogleLogin(ctx context.Context, input ports.GoogleLoginInput) (*ports.AuthResult, error) {
	return s.googleLoginFn(ctx, input)
}

func (s *stubAuthService) AdminLogin(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.adminLoginFn(ctx, email, password)
}

func (s *stubAuthService) AdminRegister(ctx context.Context, input ports.RegisterInput, setupCode string) (*ports.AuthResult, error) {
	return s.adminRegisterFn(ctx, input, setupCode)
}

func (s *stubAuthService) AdminCreate(ctx context.Context, actor *domain.Principal, input ports.RegisterInput) (*domain.Principal, error) {
	return s.adminCreateFn(ctx, actor, input)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			if input.Name != "Alice" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.AuthResult{
				Token: "tkn",
				User:  &domain.Principal{ID: "u1", Name: input.Name, Email: input.Email, Role: domain.RoleCustomer},
			}, nil
		},
	}
	h := NewUserHandler(stub, nil, 3600)

	c, rec := newJSONContext(http.MethodPost, "/user/register",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID      string `json:"id"`
			Role    string `json:"role"`
			IsAdmin bool   `json:"isAdmin"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "tkn" || resp.User.Role != domain.RoleCustomer || resp.User.IsAdmin {
		t.Fatalf("unexpected response: %+v", resp)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.CookieName || cookies[0].Value != "tkn" {
		t.Fatalf("session cookie not set: %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be httpOnly")
	}
}

func TestUserHandler_Register_ValidationRejected(t *testing.T) {
	h := NewUserHandler(&stubAuthService{}, nil, 3600)

	c, _ := newJSONContext(http.MethodPost, "/user/register",
		`{"name":"Alice","email":"not-an-email","password":"s3cret"}`)
	err := h.Register(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400 HTTPError", err)
	}
}

func TestUserHandler_Login_PropagatesServiceError(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewUserHandler(stub, nil, 3600)

	c, _ := newJSONContext(http.MethodPost, "/user/login",
		`{"email":"a@example.com","password":"wrong"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestUserHandler_Profile(t *testing.T) {
	h := NewUserHandler(&stubAuthService{}, nil, 3600)

	// Anonymous callers get a literal null body, not an error.
	c, rec := newJSONContext(http.MethodGet, "/user/profile", "")
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("anonymous profile = %q, want null", rec.Body.String())
	}

	c, rec = newJSONContext(http.MethodGet, "/user/profile", "")
	c.Set(middleware.PrincipalKey, &domain.Principal{ID: "a1", Name: "Root", Role: domain.RoleAdmin})
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var view struct {
		ID      string `json:"id"`
		IsAdmin bool   `json:"isAdmin"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if view.ID != "a1" || !view.IsAdmin {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestUserHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewUserHandler(&stubAuthService{}, nil, 3600)

	c, rec := newJSONContext(http.MethodPost, "/user/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected clearing cookie, got %+v", cookies)
	}
}

func TestUserHandler_AdminCreate_RequiresPrincipal(t *testing.T) {
	h := NewUserHandler(&stubAuthService{}, nil, 3600)

	c, _ := newJSONContext(http.MethodPost, "/user/admin/create",
		`{"name":"New","email":"new@example.com","password":"s3cret"}`)
	if err := h.AdminCreate(c); err != domain.ErrUnauthenticated {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}
