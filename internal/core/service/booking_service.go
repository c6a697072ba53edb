package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayflow/rental-marketplace/internal/core/authz"
	"github.com/stayflow/rental-marketplace/internal/core/domain"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

// BookingService implements the booking use cases.
type BookingService struct {
	repo   ports.BookingRepository
	places ports.PlaceRepository
	logger zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, places ports.PlaceRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, places: places, logger: logger}
}

// Create reserves a stay. The target place is loaded first so the self-booking
// rule keys off the stored owner; nothing is written when the rule denies.
func (s *BookingService) Create(ctx context.Context, actor *domain.Principal, input ports.BookingInput) (*domain.Booking, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if input.PlaceID == "" || input.CheckIn.IsZero() || input.CheckOut.IsZero() || input.Name == "" || input.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.CheckOut.After(input.CheckIn) {
		return nil, domain.ErrInvalidInput
	}

	place, err := s.places.FindByID(ctx, input.PlaceID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanBook(actor, place); err != nil {
		return nil, err
	}
	if input.Guests < 1 || input.Guests > place.MaxGuests {
		return nil, domain.ErrInvalidInput
	}

	booking := &domain.Booking{
		UserID:    actor.ID,
		PlaceID:   place.ID,
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Guests:    input.Guests,
		Name:      input.Name,
		Phone:     input.Phone,
		Price:     input.Price,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		s.logger.Error().Err(err).Str("place", place.ID).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().Str("booking", created.ID).Str("place", place.ID).Str("user", actor.ID).Msg("booking created")
	return created, nil
}

func (s *BookingService) ListMine(ctx context.Context, actor *domain.Principal) ([]*domain.Booking, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, actor.ID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	return s.repo.List(ctx)
}
