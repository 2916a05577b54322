package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/availability"
	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// AvailabilityHandler answers table availability queries.
type AvailabilityHandler struct {
	Service *availability.Service
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc *availability.Service) *AvailabilityHandler {
	if svc == nil {
		panic("nil service passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Service: svc}
}

// Query handles GET /v1/availability?spaceType=&date=&time=.  It returns the
// full partition of the space's tables into available and reserved for the
// requested slot.  Responses are never cached; the answer must reflect the
// store at the moment of the query.
func (h *AvailabilityHandler) Query(c echo.Context) error {
	space := c.QueryParam("spaceType")
	date := c.QueryParam("date")
	timeStr := c.QueryParam("time")
	if space == "" || date == "" || timeStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "spaceType, date and time are required"})
	}

	res, err := h.Service.Query(c.Request().Context(), space, date, timeStr)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownSpace):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown space type"})
		case errors.Is(err, timeslot.ErrInvalidDate):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		case errors.Is(err, timeslot.ErrInvalidTime):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be HH:MM"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"spaceType": space,
		"date":      date,
		"time":      timeStr,
		"available": res.Available,
		"reserved":  res.Reserved,
	})
}
