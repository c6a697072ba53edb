package ports

import (
	"context"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// PlaceInput carries the mutable listing fields. Ownership is taken from the
// authenticated principal, never from the payload.
type PlaceInput struct {
	Title       string
	Address     string
	Photos      []string
	Description string
	Perks       []string
	ExtraInfo   string
	CheckIn     int
	CheckOut    int
	MaxGuests   int
	Price       int
}

// UpdatePlaceInput targets an existing listing by id.
type UpdatePlaceInput struct {
	ID string
	PlaceInput
}

// PlaceService defines the listing use cases.
type PlaceService interface {
	Create(ctx context.Context, actor *domain.Principal, input PlaceInput) (*domain.Place, error)
	Update(ctx context.Context, actor *domain.Principal, input UpdatePlaceInput) (*domain.Place, error)
	Get(ctx context.Context, id string) (*domain.Place, error)
	ListAll(ctx context.Context) ([]*domain.Place, error)
	// ListMine returns the actor's own listings; admins see every listing.
	ListMine(ctx context.Context, actor *domain.Principal) ([]*domain.Place, error)
	Search(ctx context.Context, key string) ([]*domain.Place, error)
	Delete(ctx context.Context, id string) error
}
