package ports

import (
	"context"
	"time"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// BookingInput carries the fields needed to reserve a stay.
type BookingInput struct {
	PlaceID  string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Name     string
	Phone    string
	Price    int
}

// BookingService defines the booking use cases.
type BookingService interface {
	Create(ctx context.Context, actor *domain.Principal, input BookingInput) (*domain.Booking, error)
	ListMine(ctx context.Context, actor *domain.Principal) ([]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)
}
