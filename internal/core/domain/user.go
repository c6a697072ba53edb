package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// ValidRole reports whether s is a recognised role name.
func ValidRole(s string) bool {
	return s == RoleCustomer || s == RoleAdmin
}

// Principal models an actor in the system. Role is the single source of truth
// for the customer/admin split; the legacy isAdmin boolean is derived, never
// stored independently.
type Principal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin is the derived read-only accessor kept for contracts that still
// expect the boolean flag.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
