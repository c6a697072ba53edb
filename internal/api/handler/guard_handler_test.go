package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stayflow/rental-marketplace/internal/api/middleware"
	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

func guardCheck(t *testing.T, route string, principal *domain.Principal) guardResponse {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/guard/"+route, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("route")
	c.SetParamValues(route)
	if principal != nil {
		c.Set(middleware.PrincipalKey, principal)
	}

	if err := NewGuardHandler().Check(c); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp guardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestGuardHandler_Check(t *testing.T) {
	cust := &domain.Principal{ID: "u1", Role: domain.RoleCustomer}
	adm := &domain.Principal{ID: "a1", Role: domain.RoleAdmin}

	cases := []struct {
		name      string
		route     string
		principal *domain.Principal
		allowed   bool
		redirect  string
	}{
		{"anonymous on protected", "protected", nil, false, "/login"},
		{"customer on protected", "protected", cust, true, ""},
		{"anonymous on customer", "customer", nil, false, "/login"},
		{"customer on customer", "customer", cust, true, ""},
		{"admin on customer goes home", "customer", adm, false, "/"},
		{"anonymous on admin", "admin", nil, false, "/admin/login"},
		{"customer on admin goes home", "admin", cust, false, "/"},
		{"admin on admin", "admin", adm, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := guardCheck(t, tc.route, tc.principal)
			if resp.Allowed != tc.allowed || resp.Redirect != tc.redirect {
				t.Fatalf("got %+v, want allowed=%v redirect=%q", resp, tc.allowed, tc.redirect)
			}
		})
	}
}

func TestGuardHandler_Check_UnknownClass(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/guard/owner", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("route")
	c.SetParamValues("owner")

	err := NewGuardHandler().Check(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400 HTTPError", err)
	}
}
