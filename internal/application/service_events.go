package application

import "time"

const (
	// eventTypeLeadCreated is emitted when a lead passes both duplicate checks
	// and is persisted. The worker turns it into the ops-inbox notification.
	eventTypeLeadCreated = "lead.created"
	// eventTypeOrderPlaced is emitted when an order is accepted.
	eventTypeOrderPlaced = "order.placed"
)

// leadCreatedPayload is the outbox body for lead.created.
type leadCreatedPayload struct {
	LeadID         string    `json:"lead_id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	City           string    `json:"city,omitempty"`
	HomeType       string    `json:"home_type,omitempty"`
	SourcePage     string    `json:"source_page,omitempty"`
	Message        string    `json:"message,omitempty"`
	ProductDetails string    `json:"product_details,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// orderPlacedPayload is the outbox body for order.placed.
type orderPlacedPayload struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	TotalCents int64     `json:"total_cents"`
	Currency   string    `json:"currency"`
	ItemCount  int       `json:"item_count"`
	PlacedAt   time.Time `json:"placed_at"`
}
