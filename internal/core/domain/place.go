package domain

import "time"

// Place is a rental listing. OwnerID is set at creation and never changes:
// there is no transfer-of-ownership operation.
type Place struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner" bson:"owner"`
	Title       string    `json:"title" bson:"title"`
	Address     string    `json:"address" bson:"address"`
	Photos      []string  `json:"photos" bson:"photos"`
	Description string    `json:"description" bson:"description"`
	Perks       []string  `json:"perks" bson:"perks"`
	ExtraInfo   string    `json:"extra_info" bson:"extra_info"`
	CheckIn     int       `json:"check_in" bson:"check_in"`
	CheckOut    int       `json:"check_out" bson:"check_out"`
	MaxGuests   int       `json:"max_guests" bson:"max_guests"`
	Price       int       `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnerRef satisfies the authz ownership predicate.
func (p *Place) OwnerRef() string { return p.OwnerID }
