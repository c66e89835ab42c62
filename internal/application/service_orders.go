package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/domain"
	"github.com/nestora/storefront/internal/ports"
)

// PlaceOrder creates an order from explicit line items, or from the caller's
// cart when no items are given. With an Idempotency-Key header the whole
// operation is replay-safe: a retried identical request returns the stored
// order, a reused key with a different payload is a conflict.
func (s *Service) PlaceOrder(ctx context.Context, actor Actor, input PlaceOrderInput) (domain.Order, error) {
	if err := requireCustomer(actor); err != nil {
		return domain.Order{}, err
	}
	if strings.TrimSpace(input.ShipName) == "" || strings.TrimSpace(input.ShipAddress) == "" {
		return domain.Order{}, fmt.Errorf("%w: shipping name and address are required", domain.ErrInvalidInput)
	}

	fromCart := len(input.Items) == 0
	lines := input.Items
	if fromCart {
		cartItems, err := s.carts.ListByCustomer(ctx, actor.SubjectID)
		if err != nil {
			return domain.Order{}, err
		}
		for _, item := range cartItems {
			lines = append(lines, OrderLineInput{ProductID: item.ProductID, Quantity: item.Quantity})
		}
	}
	if len(lines) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	}

	key := strings.TrimSpace(actor.IdempotencyKey)
	requestHash := hashRequest(map[string]any{"op": "place_order", "customer_id": actor.SubjectID, "input": input})
	if key != "" {
		if stored, ok, err := s.replayIdempotent(ctx, key, requestHash); err != nil {
			return domain.Order{}, err
		} else if ok {
			return stored, nil
		}
		if err := s.idempotency.Reserve(ctx, key, requestHash, s.nowFn().Add(s.cfg.IdempotencyTTL)); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return domain.Order{}, domain.ErrIdempotencyConflict
			}
			return domain.Order{}, fmt.Errorf("reserve idempotency: %w", err)
		}
	}

	now := s.nowFn()
	order := domain.Order{
		OrderID:     uuid.New(),
		CustomerID:  actor.SubjectID,
		Status:      domain.OrderStatusPlaced,
		Currency:    s.cfg.Currency,
		ShipName:    strings.TrimSpace(input.ShipName),
		ShipPhone:   domain.NormalizePhone(input.ShipPhone),
		ShipAddress: strings.TrimSpace(input.ShipAddress),
		ShipCity:    strings.TrimSpace(input.ShipCity),
		PlacedAt:    now,
		UpdatedAt:   now,
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		if product.Archived {
			return domain.Order{}, domain.ErrNotFound
		}
		if !product.InStock {
			return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrOutOfStock, product.Name)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      product.ProductID,
			ProductName:    product.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: product.PriceCents,
		})
		order.TotalCents += product.PriceCents * int64(line.Quantity)
	}

	payload, err := json.Marshal(orderPlacedPayload{
		OrderID:    order.OrderID.String(),
		CustomerID: order.CustomerID,
		TotalCents: order.TotalCents,
		Currency:   order.Currency,
		ItemCount:  len(order.Items),
		PlacedAt:   now,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode order event: %w", err)
	}

	created, err := s.orders.CreateWithOutboxTx(ctx, order, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventTypeOrderPlaced,
		PartitionKey: order.OrderID.String(),
		Payload:      payload,
		OccurredAt:   now,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	if fromCart {
		// Cart cleanup is best effort; the order is already committed.
		_ = s.carts.Clear(ctx, actor.SubjectID)
	}
	if key != "" {
		raw, _ := json.Marshal(created)
		_ = s.idempotency.Complete(ctx, key, 201, raw, s.nowFn())
	}
	return created, nil
}

// replayIdempotent returns the stored order for a completed identical
// request, or an idempotency conflict when the key was reused with a
// different payload.
func (s *Service) replayIdempotent(ctx context.Context, key, requestHash string) (domain.Order, bool, error) {
	rec, err := s.idempotency.Get(ctx, key)
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("load idempotency record: %w", err)
	}
	if rec == nil {
		return domain.Order{}, false, nil
	}
	if rec.RequestHash != requestHash {
		return domain.Order{}, false, domain.ErrIdempotencyConflict
	}
	if len(rec.ResponseBody) == 0 {
		// Reserved but never completed: original request is still in flight
		// or died mid-way. Treat as conflict rather than double-placing.
		return domain.Order{}, false, domain.ErrIdempotencyConflict
	}
	var order domain.Order
	if err := json.Unmarshal(rec.ResponseBody, &order); err != nil {
		return domain.Order{}, false, fmt.Errorf("decode stored order: %w", err)
	}
	return order, true, nil
}

func (s *Service) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (domain.Order, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Order{}, domain.ErrUnauthorized
	}
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !actor.isAdmin() && order.CustomerID != actor.SubjectID {
		return domain.Order{}, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) ListMyOrders(ctx context.Context, actor Actor, page, pageSize int) ([]domain.Order, int, error) {
	if err := requireCustomer(actor); err != nil {
		return nil, 0, err
	}
	page, pageSize = normalizePaging(page, pageSize)
	return s.orders.ListByCustomer(ctx, actor.SubjectID, page, pageSize)
}

func (s *Service) ListOrders(ctx context.Context, actor Actor, input ListOrdersInput) ([]domain.Order, int, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	filter := ports.OrderFilter{}
	if raw := strings.ToLower(strings.TrimSpace(input.Status)); raw != "" {
		status := domain.OrderStatus(raw)
		if err := domain.ValidateOrderStatus(status); err != nil {
			return nil, 0, err
		}
		filter.Status = status
	}
	filter.Page, filter.PageSize = normalizePaging(input.Page, input.PageSize)
	return s.orders.List(ctx, filter)
}

// UpdateOrderStatus applies an admin status change through the transition graph.
func (s *Service) UpdateOrderStatus(ctx context.Context, actor Actor, input UpdateOrderStatusInput) (domain.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Order{}, err
	}
	if input.OrderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	status := domain.OrderStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if err := domain.ValidateOrderStatus(status); err != nil {
		return domain.Order{}, err
	}
	order, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !domain.CanTransition(order.Status, status) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, status)
	}
	return s.orders.UpdateStatus(ctx, input.OrderID, status, s.nowFn())
}
