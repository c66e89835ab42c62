package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a placed customer order with snapshotted line prices.
type Order struct {
	OrderID     uuid.UUID       `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderItem     `json:"items"`
	TotalCents  int64           `json:"total_cents"`
	Currency    string          `json:"currency"`
	ShipName    string          `json:"ship_name"`
	ShipPhone   string          `json:"ship_phone"`
	ShipAddress string          `json:"ship_address"`
	ShipCity    string          `json:"ship_city"`
	Tracking    []TrackingEvent `json:"tracking,omitempty"`
	PlacedAt    time.Time       `json:"placed_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

// TrackingEvent is a delivery-partner status update appended to an order.
type TrackingEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	OrderID    uuid.UUID `json:"order_id"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	Partner    string    `json:"partner,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at"`
}

// orderTransitions is the allowed status graph. Cancellation is permitted
// until the order ships.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPlaced:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateOrderStatus rejects statuses outside the order enum.
func ValidateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderStatusPlaced, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return nil
	default:
		return fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}
}
