package handler

// errorResponse is the standard failure envelope rendered by the central error
// handler on all 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type placeRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Address     string   `json:"address"     validate:"required"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extra_info"`
	CheckIn     int      `json:"check_in"    validate:"min=0,max=23"`
	CheckOut    int      `json:"check_out"   validate:"min=0,max=23"`
	MaxGuests   int      `json:"max_guests"  validate:"required,min=1"`
	Price       int      `json:"price"       validate:"required,min=0"`
}

type updatePlaceRequest struct {
	ID string `json:"id" validate:"required"`
	placeRequest
}
