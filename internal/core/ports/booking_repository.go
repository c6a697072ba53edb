package ports

import (
	"context"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// BookingRepository defines persistence for bookings. Bookings are append-only:
// there is no update or delete operation.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	Count(ctx context.Context) (int64, error)
}
