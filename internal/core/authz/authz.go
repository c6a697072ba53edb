// Package authz is the access decision engine. Every controller declares one
// enforcement Mode per endpoint and branches only on the verdicts returned
// here; the role comparison and the ownership comparison live in this package
// and nowhere else.
package authz

import (
	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// Mode is a named enforcement policy applied before a handler runs.
type Mode string

const (
	// Public always allows, principal or not.
	Public Mode = "public"
	// OptionalAuth always allows; a resolved principal is passed through for
	// downstream linking but never blocks.
	OptionalAuth Mode = "optional"
	// RequireAuthenticated allows any resolved principal.
	RequireAuthenticated Mode = "authenticated"
	// RequireCustomer allows resolved customers only; admins are pushed to
	// their own endpoints.
	RequireCustomer Mode = "customer"
	// RequireAdmin allows resolved admins only.
	RequireAdmin Mode = "admin"
)

// Decide returns nil when principal may proceed under mode. The 401 sentinel
// always wins over a 403: an unauthenticated caller must never learn anything
// beyond "log in first".
func Decide(p *domain.Principal, mode Mode) error {
	switch mode {
	case Public, OptionalAuth:
		return nil
	case RequireAuthenticated:
		if p == nil {
			return domain.ErrUnauthenticated
		}
		return nil
	case RequireCustomer:
		if p == nil {
			return domain.ErrUnauthenticated
		}
		if p.IsAdmin() {
			return domain.ErrAdminNotCustomer
		}
		return nil
	case RequireAdmin:
		if p == nil {
			return domain.ErrUnauthenticated
		}
		if !p.IsAdmin() {
			return domain.ErrForbiddenRole
		}
		return nil
	default:
		return domain.ErrForbiddenRole
	}
}

// Ownable is any resource carrying an owner reference.
type Ownable interface {
	OwnerRef() string
}

// CanMutate reports whether p may mutate res: the owner may, and an admin
// always may (role short-circuits the ownership comparison). Callers must run
// Decide first so that a missing principal is already a 401, never a 403.
func CanMutate(p *domain.Principal, res Ownable) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.IsAdmin() || p.ID == res.OwnerRef() {
		return nil
	}
	return domain.ErrForbiddenOwnership
}

// CanBook rejects a booking by the owner of the target place.
func CanBook(p *domain.Principal, place *domain.Place) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.ID == place.OwnerID {
		return domain.ErrSelfBooking
	}
	return nil
}
