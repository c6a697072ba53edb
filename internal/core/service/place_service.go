package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayflow/rental-marketplace/internal/core/authz"
	"github.com/stayflow/rental-marketplace/internal/core/domain"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

// PlaceService implements the listing use cases.
type PlaceService struct {
	repo   ports.PlaceRepository
	logger zerolog.Logger
}

func NewPlaceService(repo ports.PlaceRepository, logger zerolog.Logger) *PlaceService {
	return &PlaceService{repo: repo, logger: logger}
}

func (s *PlaceService) Create(ctx context.Context, actor *domain.Principal, input ports.PlaceInput) (*domain.Place, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if input.Title == "" || input.Address == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	place := &domain.Place{
		OwnerID:     actor.ID,
		Title:       input.Title,
		Address:     input.Address,
		Photos:      input.Photos,
		Description: input.Description,
		Perks:       input.Perks,
		ExtraInfo:   input.ExtraInfo,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		MaxGuests:   input.MaxGuests,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, place)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create place")
		return nil, err
	}

	s.logger.Info().Str("place", created.ID).Str("owner", actor.ID).Msg("place created")
	return created, nil
}

// Update mutates a listing. Authorization keys off the loaded document's true
// owner and the authenticated actor only; identity claims in the payload are
// ignored.
func (s *PlaceService) Update(ctx context.Context, actor *domain.Principal, input ports.UpdatePlaceInput) (*domain.Place, error) {
	if input.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	place, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(actor, place); err != nil {
		return nil, err
	}

	place.Title = input.Title
	place.Address = input.Address
	place.Photos = input.Photos
	place.Description = input.Description
	place.Perks = input.Perks
	place.ExtraInfo = input.ExtraInfo
	place.CheckIn = input.CheckIn
	place.CheckOut = input.CheckOut
	place.MaxGuests = input.MaxGuests
	place.Price = input.Price
	place.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, place); err != nil {
		s.logger.Error().Err(err).Str("place", place.ID).Msg("failed to update place")
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) Get(ctx context.Context, id string) (*domain.Place, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PlaceService) ListAll(ctx context.Context) ([]*domain.Place, error) {
	return s.repo.List(ctx)
}

func (s *PlaceService) ListMine(ctx context.Context, actor *domain.Principal) ([]*domain.Place, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if actor.IsAdmin() {
		return s.repo.List(ctx)
	}
	return s.repo.ListByOwner(ctx, actor.ID)
}

func (s *PlaceService) Search(ctx context.Context, key string) ([]*domain.Place, error) {
	if key == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, key)
}

// Delete removes a listing. The admin-only gate is the route's enforcement
// mode; this is the only hard delete in the system.
func (s *PlaceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("place", id).Msg("place deleted")
	return nil
}
