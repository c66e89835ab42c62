package application

import (
	"github.com/google/uuid"
)

// SubmitLeadRequest is the public lead-capture payload.
type SubmitLeadRequest struct {
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	City           string   `json:"city"`
	HomeType       string   `json:"homeType"`
	SourcePage     string   `json:"sourcePage"`
	Message        string   `json:"message"`
	Meta           LeadMeta `json:"meta"`
	ProductDetails string   `json:"productDetails"`

	// IPAddress is filled by the transport adapter for throttling.
	IPAddress string `json:"-"`
}

// LeadMeta carries client-supplied submission metadata. RequestID is the
// optional idempotency key generated per attempt.
type LeadMeta struct {
	RequestID    string `json:"requestId"`
	SubmissionID string `json:"submissionId"`
}

type ListLeadsInput struct {
	Status   string
	Phone    string
	Page     int
	PageSize int
}

type UpdateLeadStatusInput struct {
	LeadID uuid.UUID
	Status string
}

type CreateProductInput struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	ImageURLs   []string `json:"image_urls"`
	InStock     bool     `json:"in_stock"`
}

type UpdateProductInput struct {
	ProductID   uuid.UUID
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	PriceCents  *int64   `json:"price_cents"`
	ImageURLs   []string `json:"image_urls"`
	InStock     *bool    `json:"in_stock"`
	Archived    *bool    `json:"archived"`
}

type ListProductsInput struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

type CartAddInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type PlaceOrderInput struct {
	Items       []OrderLineInput `json:"items"`
	ShipName    string           `json:"ship_name"`
	ShipPhone   string           `json:"ship_phone"`
	ShipAddress string           `json:"ship_address"`
	ShipCity    string           `json:"ship_city"`
}

type OrderLineInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type ListOrdersInput struct {
	Status   string
	Page     int
	PageSize int
}

type UpdateOrderStatusInput struct {
	OrderID uuid.UUID
	Status  string
}

type DeliveryEventInput struct {
	OrderID    uuid.UUID
	Status     string `json:"status"`
	Note       string `json:"note"`
	OccurredAt string `json:"occurred_at"`
}

type DashboardInput struct {
	DateFrom string
	DateTo   string
}
