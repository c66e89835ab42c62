package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/domain"
)

// LeadFilter narrows admin lead listings.
type LeadFilter struct {
	Status   domain.LeadStatus
	Phone    string
	Page     int
	PageSize int
}

// LeadRepository defines persistence operations for captured leads.
// CreateWithOutboxTx inserts the lead and its notification event in one
// transaction; a request_id unique violation surfaces as
// domain.ErrDuplicateRequestID so the constraint, not a prior read, is the
// authoritative duplicate signal.
type LeadRepository interface {
	CreateWithOutboxTx(ctx context.Context, lead domain.Lead, event OutboxEvent) (domain.Lead, error)
	ExistsByRequestID(ctx context.Context, requestID string) (bool, error)
	ExistsByPhoneSince(ctx context.Context, phone string, since time.Time) (bool, error)
	GetByID(ctx context.Context, leadID uuid.UUID) (domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, int, error)
	UpdateStatus(ctx context.Context, leadID uuid.UUID, status domain.LeadStatus, at time.Time) (domain.Lead, error)
}

// ProductRepository manages the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	GetByID(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
}

// CartRepository manages per-customer cart lines.
type CartRepository interface {
	UpsertItem(ctx context.Context, item domain.CartItem) error
	RemoveItem(ctx context.Context, customerID string, productID uuid.UUID) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.CartItem, error)
	Clear(ctx context.Context, customerID string) error
}

// WishlistRepository manages saved-for-later products.
type WishlistRepository interface {
	Add(ctx context.Context, item domain.WishlistItem) error
	Remove(ctx context.Context, customerID string, productID uuid.UUID) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistItem, error)
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status   domain.OrderStatus
	Page     int
	PageSize int
}

// OrderRepository manages orders and their delivery tracking history.
// The transactional create method enforces order+outbox consistency.
type OrderRepository interface {
	CreateWithOutboxTx(ctx context.Context, order domain.Order, event OutboxEvent) (domain.Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]domain.Order, int, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, at time.Time) (domain.Order, error)
	AppendTracking(ctx context.Context, event domain.TrackingEvent, advanceTo *domain.OrderStatus) (domain.Order, error)
}

// WarehouseRepository serves the pre-aggregated admin dashboard reads.
type WarehouseRepository interface {
	LeadCountsByStatus(ctx context.Context) (map[string]int, error)
	LeadsPerDay(ctx context.Context, from, to time.Time) ([]domain.DayCount, error)
	OrderCountsByStatus(ctx context.Context) (map[string]int, error)
	RevenueCents(ctx context.Context, from, to time.Time) (int64, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductVolume, error)
}

// IdempotencyRecord is a stored idempotency envelope for order placement.
type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	Status       string
	ResponseCode int
	ResponseBody []byte
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IdempotencyRepository persists replay-safe request envelopes.
// Reserve must fail with domain.ErrConflict when the key already exists.
type IdempotencyRepository interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
	Complete(ctx context.Context, key string, responseCode int, responseBody []byte, at time.Time) error
}

// OutboxEvent captures a domain event enqueued alongside a transactional write.
type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

// OutboxRecord is a stored outbox row claimed by the publisher worker.
type OutboxRecord struct {
	OutboxID       uuid.UUID
	EventType      string
	PartitionKey   string
	Payload        []byte
	RetryCount     int
	LastError      *string
	CreatedAt      time.Time
	FirstSeenAt    time.Time
	PublishedAt    *time.Time
	LastErrorAt    *time.Time
	ClaimToken     *string
	ClaimUntil     *time.Time
	DeadLetteredAt *time.Time
}

// OutboxRepository stores events pending publication.
// Claim-token semantics let multiple workers share the table without
// double-publishing within a claim window.
type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	ClaimUnpublished(ctx context.Context, limit int, claimToken string, claimUntil time.Time) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, claimToken string, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, claimToken, errMsg string, at time.Time) error
	MarkDeadLettered(ctx context.Context, outboxID uuid.UUID, claimToken, errMsg string, at time.Time) error
}
