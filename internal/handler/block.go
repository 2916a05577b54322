package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/repository"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// BlockHandler manages administrator table blocks.
type BlockHandler struct {
	Repo    *repository.BlockRepo
	Catalog *catalog.Catalog
}

// NewBlockHandler constructs a BlockHandler.
func NewBlockHandler(repo *repository.BlockRepo, cat *catalog.Catalog) *BlockHandler {
	if repo == nil || cat == nil {
		panic("nil dependency passed to NewBlockHandler")
	}
	return &BlockHandler{Repo: repo, Catalog: cat}
}

// Create handles POST /v1/admin/blocks.  Blocks carry an explicit end time,
// and start must be strictly before end.  Overlap with existing reservations
// is allowed: a block does not evict anyone, it only stops new bookings.
func (h *BlockHandler) Create(c echo.Context) error {
	var body struct {
		Space     string `json:"spaceType"`
		TableID   string `json:"tableId"`
		Date      string `json:"blockDate"`
		StartTime string `json:"blockStartTime"`
		EndTime   string `json:"blockEndTime"`
		Reason    string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Space == "" || body.TableID == "" || body.Date == "" || body.StartTime == "" || body.EndTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "spaceType, tableId, blockDate, blockStartTime and blockEndTime are required"})
	}
	if _, err := h.Catalog.Table(body.Space, body.TableID); err != nil {
		if errors.Is(err, catalog.ErrUnknownSpace) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown space type"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown table"})
	}
	if _, err := timeslot.ParseDate(body.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "blockDate must be YYYY-MM-DD"})
	}
	start, err := timeslot.ParseClock(body.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "blockStartTime must be HH:MM"})
	}
	end, err := timeslot.ParseClock(body.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "blockEndTime must be HH:MM"})
	}
	if start >= end {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "blockStartTime must be before blockEndTime"})
	}

	block := &model.Block{
		Space:     body.Space,
		TableID:   body.TableID,
		Date:      body.Date,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Reason:    body.Reason,
	}
	if err := h.Repo.Create(c.Request().Context(), block); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create block"})
	}
	return c.JSON(http.StatusCreated, block)
}

// List handles GET /v1/admin/blocks?date=&spaceType=.
func (h *BlockHandler) List(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	if _, err := timeslot.ParseDate(date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	space := c.QueryParam("spaceType")
	if space != "" && !h.Catalog.HasSpace(space) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown space type"})
	}
	out, err := h.Repo.ListByDate(c.Request().Context(), date, space)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"blocks": out, "count": len(out)})
}

// Delete handles DELETE /v1/admin/blocks/:id.  Removing a block makes the
// window bookable again immediately.
func (h *BlockHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "block not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete block"})
	}
	return c.NoContent(http.StatusNoContent)
}
