package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nestora/storefront/internal/domain"
)

// GetDashboard assembles the admin dashboard from pre-aggregated warehouse
// reads, behind a short-TTL cache so repeated page loads do not re-run the
// aggregate queries.
func (s *Service) GetDashboard(ctx context.Context, actor Actor, input DashboardInput) (domain.DashboardSnapshot, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.DashboardSnapshot{}, err
	}
	from, to, err := parseDateRange(input.DateFrom, input.DateTo, s.nowFn())
	if err != nil {
		return domain.DashboardSnapshot{}, err
	}

	cacheKey := "dashboard:" + from.Format("2006-01-02") + ":" + to.Format("2006-01-02")
	if s.dashCache != nil {
		if cached, err := s.dashCache.Get(ctx, cacheKey); err == nil && cached != nil {
			return *cached, nil
		}
	}

	snapshot := domain.DashboardSnapshot{
		DateFrom:    from.Format("2006-01-02"),
		DateTo:      to.Format("2006-01-02"),
		GeneratedAt: s.nowFn(),
	}
	if snapshot.LeadsByStatus, err = s.warehouse.LeadCountsByStatus(ctx); err != nil {
		return domain.DashboardSnapshot{}, fmt.Errorf("lead counts: %w", err)
	}
	if snapshot.LeadsPerDay, err = s.warehouse.LeadsPerDay(ctx, from, to); err != nil {
		return domain.DashboardSnapshot{}, fmt.Errorf("leads per day: %w", err)
	}
	if snapshot.OrdersByStatus, err = s.warehouse.OrderCountsByStatus(ctx); err != nil {
		return domain.DashboardSnapshot{}, fmt.Errorf("order counts: %w", err)
	}
	if snapshot.RevenueCents, err = s.warehouse.RevenueCents(ctx, from, to); err != nil {
		return domain.DashboardSnapshot{}, fmt.Errorf("revenue: %w", err)
	}
	if snapshot.TopProducts, err = s.warehouse.TopProducts(ctx, from, to, 10); err != nil {
		return domain.DashboardSnapshot{}, fmt.Errorf("top products: %w", err)
	}

	if s.dashCache != nil {
		if err := s.dashCache.Put(ctx, cacheKey, snapshot, s.cfg.DashboardCacheTTL); err != nil {
			slog.Default().WarnContext(ctx, "dashboard cache write failed",
				"service", serviceName,
				"module", "application",
				"layer", "application",
				"operation", "dashboard_cache_put",
				"outcome", "warning",
				"error", err,
			)
		}
	}
	return snapshot, nil
}

// parseDateRange resolves an optional YYYY-MM-DD range, defaulting to the
// trailing 30 days.
func parseDateRange(fromRaw, toRaw string, now time.Time) (time.Time, time.Time, error) {
	to := now
	if raw := strings.TrimSpace(toRaw); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: date_to must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	from := to.AddDate(0, 0, -30)
	if raw := strings.TrimSpace(fromRaw); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: date_from must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		from = parsed
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date_from is after date_to", domain.ErrInvalidInput)
	}
	return from.UTC(), to.UTC(), nil
}
