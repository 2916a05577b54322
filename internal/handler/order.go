package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/repository"
)

// OrderHandler serves food order submission and the staff order queue.
type OrderHandler struct {
	Repo *repository.OrderRepo
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(repo *repository.OrderRepo) *OrderHandler {
	if repo == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Repo: repo}
}

type orderRequest struct {
	OrderType       string          `json:"orderType"`
	TableNumber     *int            `json:"tableNumber"`
	CustomerName    *string         `json:"customerName"`
	CustomerPhone   *string         `json:"customerPhone"`
	DeliveryAddress *string         `json:"deliveryAddress"`
	DeliveryNotes   *string         `json:"deliveryNotes"`
	Items           json.RawMessage `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Tax             float64         `json:"tax"`
	DeliveryFee     float64         `json:"deliveryFee"`
	Total           float64         `json:"total"`
	RequestedWaiter bool            `json:"requestedWaiter"`
}

// Create handles POST /v1/orders.  Line items are stored as the submitted
// JSON array; the kitchen display renders them as-is.
func (h *OrderHandler) Create(c echo.Context) error {
	var body orderRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidOrderType(body.OrderType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "orderType must be dinein or delivery"})
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body.Items, &items); err != nil || len(items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items must be a non-empty array"})
	}
	if body.Total <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total must be positive"})
	}
	switch body.OrderType {
	case model.OrderTypeDineIn:
		if body.TableNumber == nil || *body.TableNumber <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tableNumber is required for dine-in orders"})
		}
	case model.OrderTypeDelivery:
		if body.DeliveryAddress == nil || *body.DeliveryAddress == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "deliveryAddress is required for delivery orders"})
		}
	}

	order := &model.Order{
		OrderType:       body.OrderType,
		Status:          model.OrderPending,
		TableNumber:     body.TableNumber,
		CustomerName:    body.CustomerName,
		CustomerPhone:   body.CustomerPhone,
		DeliveryAddress: body.DeliveryAddress,
		DeliveryNotes:   body.DeliveryNotes,
		Items:           string(body.Items),
		Subtotal:        body.Subtotal,
		Tax:             body.Tax,
		DeliveryFee:     body.DeliveryFee,
		Total:           body.Total,
		PaymentStatus:   "pending",
		RequestedWaiter: body.RequestedWaiter,
	}
	if err := h.Repo.Create(c.Request().Context(), order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}
	return c.JSON(http.StatusCreated, order)
}

// List handles GET /v1/admin/orders?status=&orderType=.
func (h *OrderHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !model.ValidOrderStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	orderType := c.QueryParam("orderType")
	if orderType != "" && !model.ValidOrderType(orderType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid orderType"})
	}
	out, err := h.Repo.List(c.Request().Context(), status, orderType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": out, "count": len(out)})
}

// Get handles GET /v1/admin/orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.Repo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PATCH /v1/admin/orders/:id/status and optionally
// records payment when the order completes.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var body struct {
		Status        string  `json:"status"`
		PaymentStatus *string `json:"paymentStatus"`
		PaymentMethod *string `json:"paymentMethod"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidOrderStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if body.PaymentMethod != nil && !model.ValidPaymentMethod(*body.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paymentMethod must be cash, card or transfer"})
	}
	err := h.Repo.UpdateStatus(c.Request().Context(), c.Param("id"), body.Status, body.PaymentStatus, body.PaymentMethod)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "status": body.Status})
}

// Delete handles DELETE /v1/admin/orders/:id.
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.Repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete order"})
	}
	return c.NoContent(http.StatusNoContent)
}
