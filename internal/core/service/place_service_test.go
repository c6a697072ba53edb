package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

type stubPlaceRepo struct {
	seq    int
	places map[string]*domain.Place
}

func newStubPlaceRepo() *stubPlaceRepo {
	return &stubPlaceRepo{places: make(map[string]*domain.Place)}
}

func clonePlace(p *domain.Place) *domain.Place {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPlaceRepo) Create(_ context.Context, p *domain.Place) (*domain.Place, error) {
	r.seq++
	copy := clonePlace(p)
	copy.ID = "p" + strconv.Itoa(r.seq)
	r.places[copy.ID] = clonePlace(copy)
	return copy, nil
}

func (r *stubPlaceRepo) FindByID(_ context.Context, id string) (*domain.Place, error) {
	if p, ok := r.places[id]; ok {
		return clonePlace(p), nil
	}
	return nil, domain.ErrPlaceNotFound
}

func (r *stubPlaceRepo) Update(_ context.Context, p *domain.Place) error {
	stored, ok := r.places[p.ID]
	if !ok {
		return domain.ErrPlaceNotFound
	}
	copy := clonePlace(p)
	copy.OwnerID = stored.OwnerID
	r.places[p.ID] = copy
	return nil
}

func (r *stubPlaceRepo) List(context.Context) ([]*domain.Place, error) {
	out := make([]*domain.Place, 0, len(r.places))
	for _, p := range r.places {
		out = append(out, clonePlace(p))
	}
	return out, nil
}

func (r *stubPlaceRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Place, error) {
	var out []*domain.Place
	for _, p := range r.places {
		if p.OwnerID == ownerID {
			out = append(out, clonePlace(p))
		}
	}
	return out, nil
}

func (r *stubPlaceRepo) Search(_ context.Context, key string) ([]*domain.Place, error) {
	var out []*domain.Place
	for _, p := range r.places {
		if p.Title == key || p.Address == key {
			out = append(out, clonePlace(p))
		}
	}
	return out, nil
}

func (r *stubPlaceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.places[id]; !ok {
		return domain.ErrPlaceNotFound
	}
	delete(r.places, id)
	return nil
}

func (r *stubPlaceRepo) Count(context.Context) (int64, error) {
	return int64(len(r.places)), nil
}

func seedPlace(t *testing.T, repo *stubPlaceRepo, ownerID string) *domain.Place {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.Place{
		OwnerID:   ownerID,
		Title:     "Loft",
		Address:   "1 Main St",
		MaxGuests: 4,
		Price:     120,
	})
	if err != nil {
		t.Fatalf("seed place: %v", err)
	}
	return created
}

func TestPlaceService_Create(t *testing.T) {
	repo := newStubPlaceRepo()
	svc := NewPlaceService(repo, zerolog.Nop())
	owner := &domain.Principal{ID: "u1", Role: domain.RoleCustomer}

	created, err := svc.Create(context.Background(), owner, ports.PlaceInput{
		Title: "Cabin", Address: "2 Forest Rd", MaxGuests: 2, Price: 90,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.OwnerID != "u1" {
		t.Fatalf("owner = %q, want u1", created.OwnerID)
	}

	if _, err := svc.Create(context.Background(), nil, ports.PlaceInput{Title: "x", Address: "y"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("nil actor: got %v, want ErrUnauthenticated", err)
	}
	if _, err := svc.Create(context.Background(), owner, ports.PlaceInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty input: got %v, want ErrInvalidInput", err)
	}
}

func TestPlaceService_Update_Owner(t *testing.T) {
	repo := newStubPlaceRepo()
	svc := NewPlaceService(repo, zerolog.Nop())
	place := seedPlace(t, repo, "u1")
	owner := &domain.Principal{ID: "u1", Role: domain.RoleCustomer}

	updated, err := svc.Update(context.Background(), owner, ports.UpdatePlaceInput{
		ID: place.ID,
		PlaceInput: ports.PlaceInput{
			Title: "Loft (renovated)", Address: place.Address, MaxGuests: 4, Price: 150,
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Loft (renovated)" || updated.Price != 150 {
		t.Fatalf("mutation not applied: %+v", updated)
	}
	if updated.OwnerID != "u1" {
		t.Fatalf("owner changed to %q", updated.OwnerID)
	}
}

func TestPlaceService_Update_NonOwnerLeavesDocumentUntouched(t *testing.T) {
	repo := newStubPlaceRepo()
	svc := NewPlaceService(repo, zerolog.Nop())
	place := seedPlace(t, repo, "u1")
	intruder := &domain.Principal{ID: "u2", Role: domain.RoleCustomer}

	_, err := svc.Update(context.Background(), intruder, ports.UpdatePlaceInput{
		ID:         place.ID,
		PlaceInput: ports.PlaceInput{Title: "Hijacked", Address: "nowhere"},
	})
	if !errors.Is(err, domain.ErrForbiddenOwnership) {
		t.Fatalf("got %v, want ErrForbiddenOwnership", err)
	}

	stored, _ := repo.FindByID(context.Background(), place.ID)
	if stored.Title != "Loft" {
		t.Fatalf("denied update still mutated the document: %+v", stored)
	}
}

func TestPlaceService_Update_AdminOverride(t *testing.T) {
	repo := newStubPlaceRepo()
	svc := NewPlaceService(repo, zerolog.Nop())
	place := seedPlace(t, repo, "u1")
	admin := &domain.Principal{ID: "a1", Role: domain.RoleAdmin}

	updated, err := svc.Update(context.Background(), admin, ports.UpdatePlaceInput{
		ID: place.ID,
		PlaceInput: ports.PlaceInput{
			Title: "Moderated", Address: place.Address, MaxGuests: 4, Price: 120,
		},
	})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "Moderated" {
		t.Fatalf("mutation not applied: %+v", updated)
	}
	if updated.OwnerID != "u1" {
		t.Fatalf("admin update changed owner to %q", updated.OwnerID)
	}
}

func TestPlaceService_Update_NotFound(t *testing.T) {
	svc := NewPlaceService(newStubPlaceRepo(), zerolog.Nop())
	owner := &domain.Principal{ID: "u1", Role: domain.RoleCustomer}

	_, err := svc.Update(context.Background(), owner, ports.UpdatePlaceInput{
		ID:         "missing",
		PlaceInput: ports.PlaceInput{Title: "x", Address: "y"},
	})
	if !errors.Is(err, domain.ErrPlaceNotFound) {
		t.Fatalf("got %v, want ErrPlaceNotFound", err)
	}
}

func TestPlaceService_ListMine(t *testing.T) {
	repo := newStubPlaceRepo()
	svc := NewPlaceService(repo, zerolog.Nop())
	seedPlace(t, repo, "u1")
	seedPlace(t, repo, "u2")

	owner := &domain.Principal{ID: "u1", Role: domain.RoleCustomer}
	mine, err := svc.ListMine(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(mine) != 1 || mine[0].OwnerID != "u1" {
		t.Fatalf("unexpected listings: %+v", mine)
	}

	admin := &domain.Principal{ID: "a1", Role: domain.RoleAdmin}
	all, err := svc.ListMine(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin ListMine: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d listings, want 2", len(all))
	}

	if _, err := svc.ListMine(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("nil actor: got %v, want ErrUnauthenticated", err)
	}
}

func TestPlaceService_Search_EmptyKeyListsAll(t *testing.T) {
	repo := newStubPlaceRepo()
	svc := NewPlaceService(repo, zerolog.Nop())
	seedPlace(t, repo, "u1")
	seedPlace(t, repo, "u2")

	all, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("empty key returned %d, want 2", len(all))
	}
}
