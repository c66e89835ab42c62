package ports

import (
	"context"
	"time"

	"github.com/nestora/storefront/internal/domain"
)

// ThrottleState is the current submission-throttle envelope for a key.
// It is cache-backed to avoid hot database writes on every attempt.
type ThrottleState struct {
	AttemptCount int
	BlockedUntil *time.Time
}

// ThrottleStore handles short-lived public-endpoint abuse protection.
type ThrottleStore interface {
	Get(ctx context.Context, key string) (ThrottleState, error)
	RecordAttempt(ctx context.Context, key string, now time.Time, threshold int, blockWindow time.Duration) (ThrottleState, error)
	Clear(ctx context.Context, key string) error
}

// DashboardCache keeps short-TTL snapshots of the admin dashboard so the
// aggregate queries do not run on every page load.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*domain.DashboardSnapshot, error)
	Put(ctx context.Context, key string, snapshot domain.DashboardSnapshot, ttl time.Duration) error
}
