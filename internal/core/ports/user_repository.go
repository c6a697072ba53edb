package ports

import (
	"context"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// UserRepository defines persistence for principals (the credential store).
// Emails are matched case-insensitively; implementations store them lowercased.
type UserRepository interface {
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	Count(ctx context.Context) (int64, error)
}
