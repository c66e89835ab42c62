package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/domain"
)

// deliveryStatusAdvance maps partner tracking statuses to the order status
// they imply. Intermediate statuses (picked_up, in_transit, out_for_delivery)
// record history without moving the order.
var deliveryStatusAdvance = map[string]domain.OrderStatus{
	"shipped":   domain.OrderStatusShipped,
	"delivered": domain.OrderStatusDelivered,
}

var deliveryStatuses = map[string]struct{}{
	"picked_up":        {},
	"in_transit":       {},
	"out_for_delivery": {},
	"shipped":          {},
	"delivered":        {},
	"delayed":          {},
	"failed_attempt":   {},
}

// RecordDeliveryEvent appends a partner tracking update to an order and, for
// shipped/delivered statuses, advances the order when the transition graph
// allows it. Out-of-order partner callbacks keep their history entry without
// regressing the order status.
func (s *Service) RecordDeliveryEvent(ctx context.Context, actor Actor, input DeliveryEventInput) (domain.Order, error) {
	if !actor.isPartner() {
		return domain.Order{}, domain.ErrForbidden
	}
	if input.OrderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if _, ok := deliveryStatuses[status]; !ok {
		return domain.Order{}, fmt.Errorf("%w: unknown delivery status %q", domain.ErrInvalidInput, status)
	}

	now := s.nowFn()
	occurredAt := now
	if raw := strings.TrimSpace(input.OccurredAt); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return domain.Order{}, fmt.Errorf("%w: occurred_at must be RFC3339", domain.ErrInvalidInput)
		}
		occurredAt = parsed.UTC()
	}

	order, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return domain.Order{}, err
	}

	var advanceTo *domain.OrderStatus
	if next, ok := deliveryStatusAdvance[status]; ok && domain.CanTransition(order.Status, next) {
		advanceTo = &next
	}

	return s.orders.AppendTracking(ctx, domain.TrackingEvent{
		EventID:    uuid.New(),
		OrderID:    input.OrderID,
		Status:     status,
		Note:       strings.TrimSpace(input.Note),
		Partner:    actor.Partner,
		OccurredAt: occurredAt,
		RecordedAt: now,
	}, advanceTo)
}
