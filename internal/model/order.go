package model

import "time"

// Order statuses and types.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"

	OrderTypeDineIn   = "dinein"
	OrderTypeDelivery = "delivery"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// ValidOrderType reports whether s is a known order type.
func ValidOrderType(s string) bool {
	return s == OrderTypeDineIn || s == OrderTypeDelivery
}

// ValidPaymentMethod reports whether s is an accepted payment method.
func ValidPaymentMethod(s string) bool {
	switch s {
	case "cash", "card", "transfer":
		return true
	}
	return false
}

// Order mirrors the orders table.  Items is the raw JSON array of line items
// as submitted by the cart; the engine stores it opaquely.
type Order struct {
	ID              uint64    `json:"-"`
	OrderID         string    `json:"id"`
	OrderType       string    `json:"orderType"`
	Status          string    `json:"status"`
	TableNumber     *int      `json:"tableNumber"`
	CustomerName    *string   `json:"customerName"`
	CustomerPhone   *string   `json:"customerPhone"`
	DeliveryAddress *string   `json:"deliveryAddress"`
	DeliveryNotes   *string   `json:"deliveryNotes"`
	Items           string    `json:"items"`
	Subtotal        float64   `json:"subtotal"`
	Tax             float64   `json:"tax"`
	DeliveryFee     float64   `json:"deliveryFee"`
	Total           float64   `json:"total"`
	PaymentStatus   string    `json:"paymentStatus"`
	PaymentMethod   *string   `json:"paymentMethod"`
	RequestedWaiter bool      `json:"requestedWaiter"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
