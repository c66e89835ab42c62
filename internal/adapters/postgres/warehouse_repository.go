package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nestora/storefront/internal/domain"
)

type warehouseRepository struct {
	db *gorm.DB
}

type statusCountRow struct {
	Status string
	Count  int
}

func (r *warehouseRepository) LeadCountsByStatus(ctx context.Context) (map[string]int, error) {
	var rows []statusCountRow
	if err := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *warehouseRepository) LeadsPerDay(ctx context.Context, from, to time.Time) ([]domain.DayCount, error) {
	var rows []struct {
		Day   time.Time
		Count int
	}
	if err := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Select("date_trunc('day', created_at) AS day, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", from, to).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.DayCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.DayCount{Day: row.Day.Format("2006-01-02"), Count: row.Count})
	}
	return out, nil
}

func (r *warehouseRepository) OrderCountsByStatus(ctx context.Context) (map[string]int, error) {
	var rows []statusCountRow
	if err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// RevenueCents sums delivered and shipped orders only; cancelled and not-yet
// confirmed orders do not count as revenue.
func (r *warehouseRepository) RevenueCents(ctx context.Context, from, to time.Time) (int64, error) {
	var total *int64
	if err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Select("SUM(total_cents)").
		Where("status IN ?", []string{string(domain.OrderStatusShipped), string(domain.OrderStatusDelivered)}).
		Where("placed_at BETWEEN ? AND ?", from, to).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *warehouseRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductVolume, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []struct {
		ProductID   string
		ProductName string
		Quantity    int
	}
	if err := r.db.WithContext(ctx).
		Model(&orderItemModel{}).
		Select("order_items.product_id, order_items.product_name, SUM(order_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.order_id = order_items.order_id").
		Where("orders.placed_at BETWEEN ? AND ?", from, to).
		Where("orders.status <> ?", string(domain.OrderStatusCancelled)).
		Group("order_items.product_id, order_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ProductVolume, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ProductVolume{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
		})
	}
	return out, nil
}
