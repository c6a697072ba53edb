package ports

import (
	"context"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// RegisterInput carries the fields for self-service and admin registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// GoogleLoginInput carries the decoded Google profile. Upstream credential
// verification happens outside this service.
type GoogleLoginInput struct {
	Email    string
	Name     string
	GoogleID string
}

// AuthResult is returned by every flow that establishes a session.
type AuthResult struct {
	Token string
	User  *domain.Principal
}

// AuthService implements registration and the login flows.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GoogleLogin(ctx context.Context, input GoogleLoginInput) (*AuthResult, error)
	// AdminLogin is Login restricted to admin principals.
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)
	// AdminRegister bootstraps an admin account; setupCode must match the
	// configured value. Open admin self-registration is deliberately not
	// supported.
	AdminRegister(ctx context.Context, input RegisterInput, setupCode string) (*AuthResult, error)
	// AdminCreate lets an authenticated admin issue another admin account.
	AdminCreate(ctx context.Context, actor *domain.Principal, input RegisterInput) (*domain.Principal, error)
}
