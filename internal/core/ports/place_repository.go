package ports

import (
	"context"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// PlaceRepository defines persistence for rental listings.
type PlaceRepository interface {
	Create(ctx context.Context, p *domain.Place) (*domain.Place, error)
	FindByID(ctx context.Context, id string) (*domain.Place, error)
	// Update persists mutable listing fields. The owner reference is never
	// written back; it is immutable after creation.
	Update(ctx context.Context, p *domain.Place) error
	List(ctx context.Context) ([]*domain.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Place, error)
	// Search matches key against title and address, case-insensitively.
	Search(ctx context.Context, key string) ([]*domain.Place, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
