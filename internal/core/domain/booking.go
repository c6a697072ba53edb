package domain

import "time"

// Booking records a stay reservation. UserID must never equal the owner of the
// referenced place; the rule is enforced at creation, not by the store.
type Booking struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user" bson:"user"`
	PlaceID   string    `json:"place" bson:"place"`
	CheckIn   time.Time `json:"check_in" bson:"check_in"`
	CheckOut  time.Time `json:"check_out" bson:"check_out"`
	Guests    int       `json:"guests" bson:"guests"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone" bson:"phone"`
	Price     int       `json:"price" bson:"price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// OwnerRef satisfies the authz ownership predicate.
func (b *Booking) OwnerRef() string { return b.UserID }
