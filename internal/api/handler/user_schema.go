package handler

import "github.com/stayflow/rental-marketplace/internal/core/domain"

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Name     string `json:"name"      validate:"required"`
	GoogleID string `json:"google_id" validate:"required"`
}

type adminRegisterRequest struct {
	registerRequest
	SetupCode string `json:"setup_code" validate:"required"`
}

// userView is the public-safe projection of a principal. The isAdmin flag is
// derived from the role for clients that still expect the boolean.
type userView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

func viewUser(p *domain.Principal) *userView {
	if p == nil {
		return nil
	}
	return &userView{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Role:    p.Role,
		IsAdmin: p.IsAdmin(),
	}
}

type authResponse struct {
	Token string    `json:"token,omitempty"`
	User  *userView `json:"user,omitempty"`
}
