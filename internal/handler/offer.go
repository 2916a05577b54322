package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/repository"
)

// OfferHandler serves the public active-offer listing and the staff offer
// management surface.
type OfferHandler struct {
	Repo *repository.OfferRepo
}

// NewOfferHandler constructs an OfferHandler.
func NewOfferHandler(repo *repository.OfferRepo) *OfferHandler {
	if repo == nil {
		panic("nil repository passed to NewOfferHandler")
	}
	return &OfferHandler{Repo: repo}
}

// ListActive handles GET /v1/offers, the public view.  Cached alongside the
// menu routes.
func (h *OfferHandler) ListActive(c echo.Context) error {
	offers, err := h.Repo.List(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"offers": offers, "count": len(offers)})
}

// List handles GET /v1/admin/offers and includes inactive offers.
func (h *OfferHandler) List(c echo.Context) error {
	offers, err := h.Repo.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"offers": offers, "count": len(offers)})
}

type offerRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	OriginalPrice float64 `json:"originalPrice"`
	OfferPrice    float64 `json:"offerPrice"`
	Badge         *string `json:"badge"`
	ImageURL      *string `json:"imageUrl"`
	IsActive      *bool   `json:"isActive"`
}

func (r *offerRequest) validate() string {
	if r.Title == "" {
		return "title is required"
	}
	if r.OriginalPrice <= 0 || r.OfferPrice <= 0 {
		return "prices must be positive"
	}
	if r.OfferPrice >= r.OriginalPrice {
		return "offerPrice must be below originalPrice"
	}
	return ""
}

func (r *offerRequest) toModel(id uint64) *model.SpecialOffer {
	discount := int((r.OriginalPrice - r.OfferPrice) / r.OriginalPrice * 100)
	return &model.SpecialOffer{
		ID:            id,
		Title:         r.Title,
		Description:   r.Description,
		OriginalPrice: r.OriginalPrice,
		OfferPrice:    r.OfferPrice,
		DiscountPct:   discount,
		Badge:         r.Badge,
		ImageURL:      r.ImageURL,
		IsActive:      r.IsActive == nil || *r.IsActive,
	}
}

// Create handles POST /v1/admin/offers.  The discount percentage is derived
// from the two prices rather than trusted from the client.
func (h *OfferHandler) Create(c echo.Context) error {
	var body offerRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	offer := body.toModel(0)
	if err := h.Repo.Create(c.Request().Context(), offer); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create offer"})
	}
	return c.JSON(http.StatusCreated, offer)
}

// Update handles PUT /v1/admin/offers/:id.
func (h *OfferHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offer id"})
	}
	var body offerRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	offer := body.toModel(id)
	if err := h.Repo.Update(c.Request().Context(), offer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "offer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update offer"})
	}
	return c.JSON(http.StatusOK, offer)
}

// SetActive handles PATCH /v1/admin/offers/:id/active.
func (h *OfferHandler) SetActive(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offer id"})
	}
	var body struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil || body.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "isActive is required"})
	}
	if err := h.Repo.SetActive(c.Request().Context(), id, *body.IsActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "offer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update offer"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "isActive": *body.IsActive})
}

// Delete handles DELETE /v1/admin/offers/:id.
func (h *OfferHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offer id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "offer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete offer"})
	}
	return c.NoContent(http.StatusNoContent)
}
