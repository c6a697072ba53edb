package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

// PlaceHandler handles HTTP requests for rental listings.
type PlaceHandler struct {
	service ports.PlaceService
}

func NewPlaceHandler(service ports.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// List handles GET /places. Every listing, no identity needed.
//
// @Summary      List all places
// @Tags         places
// @Produce      json
// @Success      200  {array}  domain.Place
// @Router       /places [get]
func (h *PlaceHandler) List(c echo.Context) error {
	places, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, places)
}

// Get handles GET /places/:id.
//
// @Summary      Get a place by id
// @Tags         places
// @Produce      json
// @Param        id   path      string  true  "Place id"
// @Success      200  {object}  domain.Place
// @Failure      404  {object}  errorResponse
// @Router       /places/{id} [get]
func (h *PlaceHandler) Get(c echo.Context) error {
	place, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, place)
}

// Search handles GET /places/search/:key with a title/address substring match.
//
// @Summary      Search places
// @Tags         places
// @Produce      json
// @Param        key  path     string  true  "Search key"
// @Success      200  {array}  domain.Place
// @Router       /places/search/{key} [get]
func (h *PlaceHandler) Search(c echo.Context) error {
	places, err := h.service.Search(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, places)
}

// Create handles POST /places/user/add. Ownership comes from the resolved
// principal; the payload carries listing fields only.
//
// @Summary      Create a listing
// @Tags         places
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeRequest  true  "Listing details"
// @Success      201   {object}  domain.Place
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /places/user/add [post]
func (h *PlaceHandler) Create(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req placeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	place, err := h.service.Create(c.Request().Context(), actor, toPlaceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, place)
}

// Update handles PUT /places/user/update. The service keys authorization off
// the stored document's owner, never off identity claims in the body.
//
// @Summary      Update a listing
// @Tags         places
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePlaceRequest  true  "Listing update"
// @Success      200   {object}  domain.Place
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /places/user/update [put]
func (h *PlaceHandler) Update(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req updatePlaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	place, err := h.service.Update(c.Request().Context(), actor, ports.UpdatePlaceInput{
		ID:         req.ID,
		PlaceInput: toPlaceInput(req.placeRequest),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, place)
}

// ListMine handles GET /places/user/list. It returns the caller's listings,
// or every listing for an admin.
//
// @Summary      List own listings
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Place
// @Failure      401  {object}  errorResponse
// @Router       /places/user/list [get]
func (h *PlaceHandler) ListMine(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	places, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, places)
}

// AdminList handles GET /places/admin/list.
//
// @Summary      List all listings (admin)
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Place
// @Failure      403  {object}  errorResponse
// @Router       /places/admin/list [get]
func (h *PlaceHandler) AdminList(c echo.Context) error {
	places, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, places)
}

// AdminDelete handles DELETE /places/admin/:id, the only hard delete in the
// system.
//
// @Summary      Delete a listing (admin)
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Place id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  errorResponse
// @Router       /places/admin/{id} [delete]
func (h *PlaceHandler) AdminDelete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func toPlaceInput(req placeRequest) ports.PlaceInput {
	return ports.PlaceInput{
		Title:       req.Title,
		Address:     req.Address,
		Photos:      req.Photos,
		Description: req.Description,
		Perks:       req.Perks,
		ExtraInfo:   req.ExtraInfo,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		MaxGuests:   req.MaxGuests,
		Price:       req.Price,
	}
}
