package postgres

import (
	"time"

	"github.com/google/uuid"
)

type leadModel struct {
	LeadID         uuid.UUID `gorm:"column:lead_id;type:uuid;primaryKey"`
	Name           string    `gorm:"column:name"`
	Phone          string    `gorm:"column:phone"`
	Email          string    `gorm:"column:email"`
	City           string    `gorm:"column:city"`
	HomeType       string    `gorm:"column:home_type"`
	SourcePage     string    `gorm:"column:source_page"`
	Message        string    `gorm:"column:message"`
	RequestID      *string   `gorm:"column:request_id"`
	ProductDetails string    `gorm:"column:product_details"`
	Status         string    `gorm:"column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (leadModel) TableName() string { return "leads" }

type productModel struct {
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name"`
	Slug        string    `gorm:"column:slug"`
	Category    string    `gorm:"column:category"`
	Description string    `gorm:"column:description"`
	PriceCents  int64     `gorm:"column:price_cents"`
	Currency    string    `gorm:"column:currency"`
	ImageURLs   string    `gorm:"column:image_urls;type:jsonb"`
	InStock     bool      `gorm:"column:in_stock"`
	Archived    bool      `gorm:"column:archived"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "products" }

type cartItemModel struct {
	CustomerID     string    `gorm:"column:customer_id;primaryKey"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	ProductName    string    `gorm:"column:product_name"`
	Quantity       int       `gorm:"column:quantity"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents"`
	AddedAt        time.Time `gorm:"column:added_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (cartItemModel) TableName() string { return "cart_items" }

type wishlistItemModel struct {
	CustomerID string    `gorm:"column:customer_id;primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	AddedAt    time.Time `gorm:"column:added_at"`
}

func (wishlistItemModel) TableName() string { return "wishlist_items" }

type orderModel struct {
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	CustomerID  string    `gorm:"column:customer_id"`
	Status      string    `gorm:"column:status"`
	TotalCents  int64     `gorm:"column:total_cents"`
	Currency    string    `gorm:"column:currency"`
	ShipName    string    `gorm:"column:ship_name"`
	ShipPhone   string    `gorm:"column:ship_phone"`
	ShipAddress string    `gorm:"column:ship_address"`
	ShipCity    string    `gorm:"column:ship_city"`
	PlacedAt    time.Time `gorm:"column:placed_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "orders" }

type orderItemModel struct {
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	ProductName    string    `gorm:"column:product_name"`
	Quantity       int       `gorm:"column:quantity"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents"`
}

func (orderItemModel) TableName() string { return "order_items" }

type trackingEventModel struct {
	EventID    uuid.UUID `gorm:"column:event_id;type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid"`
	Status     string    `gorm:"column:status"`
	Note       string    `gorm:"column:note"`
	Partner    string    `gorm:"column:partner"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	RecordedAt time.Time `gorm:"column:recorded_at"`
}

func (trackingEventModel) TableName() string { return "order_tracking_events" }

type outboxModel struct {
	OutboxID       uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType      string     `gorm:"column:event_type"`
	PartitionKey   string     `gorm:"column:partition_key"`
	Payload        string     `gorm:"column:payload;type:jsonb"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	FirstSeenAt    time.Time  `gorm:"column:first_seen_at"`
	PublishedAt    *time.Time `gorm:"column:published_at"`
	RetryCount     int        `gorm:"column:retry_count"`
	LastError      *string    `gorm:"column:last_error"`
	LastErrorAt    *time.Time `gorm:"column:last_error_at"`
	ClaimToken     *string    `gorm:"column:claim_token"`
	ClaimUntil     *time.Time `gorm:"column:claim_until"`
	DeadLetteredAt *time.Time `gorm:"column:dead_lettered_at"`
}

func (outboxModel) TableName() string { return "storefront_outbox" }

type idempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	Status         string    `gorm:"column:status"`
	ResponseCode   int       `gorm:"column:response_code"`
	ResponseBody   *string   `gorm:"column:response_body;type:jsonb"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (idempotencyModel) TableName() string { return "order_idempotency" }
