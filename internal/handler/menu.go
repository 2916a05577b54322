package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/repository"
)

// MenuHandler serves the public menu listing and the staff menu CRUD.
type MenuHandler struct {
	Repo *repository.MenuRepo
}

// NewMenuHandler constructs a MenuHandler.
func NewMenuHandler(repo *repository.MenuRepo) *MenuHandler {
	if repo == nil {
		panic("nil repository passed to NewMenuHandler")
	}
	return &MenuHandler{Repo: repo}
}

// List handles GET /v1/menu?category=.  This route sits behind the response
// cache, so repeated menu loads do not hit the database.
func (h *MenuHandler) List(c echo.Context) error {
	items, err := h.Repo.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/menu/:id.
func (h *MenuHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	item, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, item)
}

type menuItemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (r *menuItemRequest) validate() string {
	if r.Name == "" || r.Category == "" {
		return "name and category are required"
	}
	if r.Price <= 0 {
		return "price must be positive"
	}
	return ""
}

// Create handles POST /v1/admin/menu.
func (h *MenuHandler) Create(c echo.Context) error {
	var body menuItemRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	item := &model.MenuItem{
		Name:        body.Name,
		Category:    body.Category,
		Price:       body.Price,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		IsAvailable: body.IsAvailable == nil || *body.IsAvailable,
	}
	if err := h.Repo.Create(c.Request().Context(), item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create menu item"})
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/admin/menu/:id.
func (h *MenuHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	var body menuItemRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	item := &model.MenuItem{
		ID:          id,
		Name:        body.Name,
		Category:    body.Category,
		Price:       body.Price,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		IsAvailable: body.IsAvailable == nil || *body.IsAvailable,
	}
	if err := h.Repo.Update(c.Request().Context(), item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update menu item"})
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /v1/admin/menu/:id.
func (h *MenuHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete menu item"})
	}
	return c.NoContent(http.StatusNoContent)
}
