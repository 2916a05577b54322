package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/booking"
	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/repository"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// ReservationHandler serves the public booking endpoint and the staff
// reservation management surface.
type ReservationHandler struct {
	Booking *booking.Service
	Repo    *repository.ReservationRepo
}

// NewReservationHandler constructs a ReservationHandler.  Both dependencies
// must be non-nil.
func NewReservationHandler(svc *booking.Service, repo *repository.ReservationRepo) *ReservationHandler {
	if svc == nil || repo == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Booking: svc, Repo: repo}
}

// createRequest is the booking payload accepted from clients.
type createRequest struct {
	Space         string  `json:"spaceType"`
	TableID       string  `json:"tableId"`
	TableCapacity int     `json:"tableCapacity"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail string  `json:"customerEmail"`
	DepositAmount float64 `json:"depositAmount"`
	BookingSource string  `json:"bookingSource"`
}

// Create handles POST /v1/reservations.  A 409 means the slot was taken
// between the client's availability query and this request; the client should
// re-query and choose another table or time.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body createRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res, err := h.Booking.Commit(c.Request().Context(), booking.CommitRequest{
		Space:         body.Space,
		TableID:       body.TableID,
		TableCapacity: body.TableCapacity,
		Date:          body.Date,
		Time:          body.Time,
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		CustomerEmail: body.CustomerEmail,
		DepositAmount: body.DepositAmount,
		BookingSource: body.BookingSource,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNoLongerAvailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "table no longer available for this time slot"})
		case errors.Is(err, booking.ErrMissingField),
			errors.Is(err, booking.ErrInvalidSource),
			errors.Is(err, timeslot.ErrInvalidDate),
			errors.Is(err, timeslot.ErrInvalidTime),
			errors.Is(err, catalog.ErrUnknownSpace),
			errors.Is(err, catalog.ErrUnknownTable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	return c.JSON(http.StatusCreated, res)
}

// List handles GET /v1/admin/reservations with optional status, date and
// spaceType filters.  date accepts YYYY-MM-DD or today/upcoming/past.
func (h *ReservationHandler) List(c echo.Context) error {
	out, err := h.Repo.List(c.Request().Context(), repository.ReservationFilter{
		Status: c.QueryParam("status"),
		Date:   c.QueryParam("date"),
		Space:  c.QueryParam("spaceType"),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out, "count": len(out)})
}

// Get handles GET /v1/admin/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	res, err := h.Repo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateStatus handles PATCH /v1/admin/reservations/:id/status.  Illegal
// jumps (a terminal reservation back to pending, seated straight to
// cancelled) are rejected with 409.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil || body.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	err := h.Booking.UpdateStatus(c.Request().Context(), c.Param("id"), body.Status)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		case errors.Is(err, model.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "status": body.Status})
}

// Cancel handles POST /v1/admin/reservations/:id/cancel, a shortcut for the
// cancelled transition.  Cancelling frees the slot immediately.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	err := h.Booking.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "status": model.StatusCancelled})
}

// UpdatePayment handles PATCH /v1/admin/reservations/:id/payment.
func (h *ReservationHandler) UpdatePayment(c echo.Context) error {
	var body struct {
		PaymentStatus string  `json:"paymentStatus"`
		PaymentMethod *string `json:"paymentMethod"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch body.PaymentStatus {
	case "pending", "paid", "refunded":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paymentStatus must be pending, paid or refunded"})
	}
	if body.PaymentMethod != nil && !model.ValidPaymentMethod(*body.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paymentMethod must be cash, card or transfer"})
	}
	err := h.Repo.UpdatePayment(c.Request().Context(), c.Param("id"), body.PaymentStatus, body.PaymentMethod)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "paymentStatus": body.PaymentStatus})
}

// Delete handles DELETE /v1/admin/reservations/:id.  Only reservations in a
// terminal status may be purged; active ones must be cancelled first so the
// slot bookkeeping stays consistent.
func (h *ReservationHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	res, err := h.Repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !model.TerminalStatus(res.Status) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only completed, cancelled or no_show reservations can be deleted"})
	}
	if err := h.Repo.Delete(ctx, res.ReservationID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}
