package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/nestora/storefront/internal/domain"
	"github.com/nestora/storefront/internal/ports"
)

// Config carries the tunable application policies.
type Config struct {
	PhoneDedupWindow     time.Duration
	SubmitIPThreshold    int
	SubmitPhoneThreshold int
	SubmitRateWindow     time.Duration
	IdempotencyTTL       time.Duration
	DashboardCacheTTL    time.Duration
	Currency             string
}

type Service struct {
	cfg       Config
	leads     ports.LeadRepository
	products  ports.ProductRepository
	carts     ports.CartRepository
	wishlist  ports.WishlistRepository
	orders    ports.OrderRepository
	warehouse ports.WarehouseRepository
	idempotency ports.IdempotencyRepository
	throttle  ports.ThrottleStore
	dashCache ports.DashboardCache
	nowFn     func() time.Time
}

type Dependencies struct {
	Config      Config
	Leads       ports.LeadRepository
	Products    ports.ProductRepository
	Carts       ports.CartRepository
	Wishlist    ports.WishlistRepository
	Orders      ports.OrderRepository
	Warehouse   ports.WarehouseRepository
	Idempotency ports.IdempotencyRepository
	Throttle    ports.ThrottleStore
	DashCache   ports.DashboardCache
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.PhoneDedupWindow <= 0 {
		cfg.PhoneDedupWindow = domain.PhoneDedupWindow
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &Service{
		cfg:         cfg,
		leads:       deps.Leads,
		products:    deps.Products,
		carts:       deps.Carts,
		wishlist:    deps.Wishlist,
		orders:      deps.Orders,
		warehouse:   deps.Warehouse,
		idempotency: deps.Idempotency,
		throttle:    deps.Throttle,
		dashCache:   deps.DashCache,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// Actor identifies the caller as resolved by the transport adapter.
// Identity arrives from the upstream gateway; this service performs no
// authentication flows of its own.
type Actor struct {
	SubjectID      string
	Role           string
	Partner        string
	IdempotencyKey string
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RolePartner  = "partner"
)

func (a Actor) isAdmin() bool   { return strings.EqualFold(a.Role, RoleAdmin) }
func (a Actor) isPartner() bool { return strings.EqualFold(a.Role, RolePartner) }

func requireCustomer(actor Actor) error {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

func requireAdmin(actor Actor) error {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.ErrUnauthorized
	}
	if !actor.isAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// enforceRateLimit counts an attempt against key and rejects once the
// threshold is crossed inside the window. Store unavailability is logged and
// waved through: throttling is protective, not load-bearing.
func (s *Service) enforceRateLimit(ctx context.Context, key string, threshold int, window time.Duration) error {
	if s.throttle == nil || threshold <= 0 || window <= 0 {
		return nil
	}
	if strings.TrimSpace(key) == "" {
		return nil
	}

	state, err := s.throttle.Get(ctx, key)
	if err == nil && state.BlockedUntil != nil && state.BlockedUntil.After(s.nowFn()) {
		return domain.ErrRateLimited
	}

	now := s.nowFn()
	updated, err := s.throttle.RecordAttempt(ctx, key, now, threshold, window)
	if err != nil {
		slog.Default().WarnContext(ctx, "throttle state unavailable",
			"service", serviceName,
			"module", "application",
			"layer", "application",
			"operation", "rate_limit",
			"outcome", "warning",
			"key", key,
			"error", err,
		)
		return nil
	}
	if updated.BlockedUntil != nil && updated.BlockedUntil.After(now) {
		return domain.ErrRateLimited
	}
	return nil
}

const serviceName = "storefront"

func normalizePaging(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func hashRequest(v any) string {
	raw, _ := json.Marshal(v)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
