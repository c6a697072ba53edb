package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingRequest struct {
	PlaceID  string    `json:"place"     validate:"required"`
	CheckIn  time.Time `json:"check_in"  validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
	Guests   int       `json:"guests"    validate:"required,min=1"`
	Name     string    `json:"name"      validate:"required"`
	Phone    string    `json:"phone"     validate:"required"`
	Price    int       `json:"price"     validate:"min=0"`
}

// Create handles POST /bookings. Customers only; booking one's own place is
// rejected before anything is written.
//
// @Summary      Book a stay
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Create(c.Request().Context(), actor, ports.BookingInput{
		PlaceID:  req.PlaceID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
		Name:     req.Name,
		Phone:    req.Phone,
		Price:    req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// ListMine handles GET /bookings, the caller's own bookings.
//
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      401  {object}  errorResponse
// @Router       /bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// AdminList handles GET /bookings/admin/all.
//
// @Summary      List all bookings (admin)
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      403  {object}  errorResponse
// @Router       /bookings/admin/all [get]
func (h *BookingHandler) AdminList(c echo.Context) error {
	bookings, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}
