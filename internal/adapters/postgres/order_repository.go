package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nestora/storefront/internal/domain"
	"github.com/nestora/storefront/internal/ports"
)

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) CreateWithOutboxTx(ctx context.Context, order domain.Order, event ports.OutboxEvent) (domain.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := orderModel{
			OrderID:     order.OrderID,
			CustomerID:  order.CustomerID,
			Status:      string(order.Status),
			TotalCents:  order.TotalCents,
			Currency:    order.Currency,
			ShipName:    order.ShipName,
			ShipPhone:   order.ShipPhone,
			ShipAddress: order.ShipAddress,
			ShipCity:    order.ShipCity,
			PlacedAt:    order.PlacedAt,
			UpdatedAt:   order.UpdatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			itemRec := orderItemModel{
				OrderID:        order.OrderID,
				ProductID:      item.ProductID,
				ProductName:    item.ProductName,
				Quantity:       item.Quantity,
				UnitPriceCents: item.UnitPriceCents,
			}
			if err := tx.Create(&itemRec).Error; err != nil {
				return err
			}
		}
		payload := event.Payload
		if len(payload) == 0 {
			payload = []byte(`{}`)
		}
		outboxRec := outboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      string(payload),
			CreatedAt:    event.OccurredAt,
			FirstSeenAt:  event.OccurredAt,
		}
		return tx.Create(&outboxRec).Error
	})
	if err != nil {
		return domain.Order{}, err
	}
	return r.GetByID(ctx, order.OrderID)
}

func (r *orderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var rec orderModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, err
	}
	return r.hydrate(ctx, rec)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]domain.Order, int, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&orderModel{}).Where("customer_id = ?", customerID), page, pageSize)
}

func (r *orderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]domain.Order, int, error) {
	q := r.db.WithContext(ctx).Model(&orderModel{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	return r.list(ctx, q, filter.Page, filter.PageSize)
}

func (r *orderRepository) list(ctx context.Context, q *gorm.DB, page, pageSize int) ([]domain.Order, int, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []orderModel
	if err := q.Order("placed_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := r.hydrate(ctx, row)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	return orders, int(total), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, at time.Time) (domain.Order, error) {
	result := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": at,
		})
	if result.Error != nil {
		return domain.Order{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, orderID)
}

func (r *orderRepository) AppendTracking(ctx context.Context, event domain.TrackingEvent, advanceTo *domain.OrderStatus) (domain.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := trackingEventModel{
			EventID:    event.EventID,
			OrderID:    event.OrderID,
			Status:     event.Status,
			Note:       event.Note,
			Partner:    event.Partner,
			OccurredAt: event.OccurredAt,
			RecordedAt: event.RecordedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if advanceTo == nil {
			return nil
		}
		result := tx.Model(&orderModel{}).
			Where("order_id = ?", event.OrderID).
			Updates(map[string]any{
				"status":     string(*advanceTo),
				"updated_at": event.RecordedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return r.GetByID(ctx, event.OrderID)
}

// hydrate attaches items and tracking history to an order row.
func (r *orderRepository) hydrate(ctx context.Context, rec orderModel) (domain.Order, error) {
	order := domain.Order{
		OrderID:     rec.OrderID,
		CustomerID:  rec.CustomerID,
		Status:      domain.OrderStatus(rec.Status),
		TotalCents:  rec.TotalCents,
		Currency:    rec.Currency,
		ShipName:    rec.ShipName,
		ShipPhone:   rec.ShipPhone,
		ShipAddress: rec.ShipAddress,
		ShipCity:    rec.ShipCity,
		PlacedAt:    rec.PlacedAt,
		UpdatedAt:   rec.UpdatedAt,
	}

	var itemRows []orderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", rec.OrderID).
		Find(&itemRows).Error; err != nil {
		return domain.Order{}, err
	}
	for _, row := range itemRows {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			Quantity:       row.Quantity,
			UnitPriceCents: row.UnitPriceCents,
		})
	}

	var trackingRows []trackingEventModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", rec.OrderID).
		Order("occurred_at ASC").
		Find(&trackingRows).Error; err != nil {
		return domain.Order{}, err
	}
	for _, row := range trackingRows {
		order.Tracking = append(order.Tracking, domain.TrackingEvent{
			EventID:    row.EventID,
			OrderID:    row.OrderID,
			Status:     row.Status,
			Note:       row.Note,
			Partner:    row.Partner,
			OccurredAt: row.OccurredAt,
			RecordedAt: row.RecordedAt,
		})
	}
	return order, nil
}
