package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nestora/storefront/internal/application"
	"github.com/nestora/storefront/internal/domain"
)

func (f *fixture) seedShippableOrder(t *testing.T) domain.Order {
	t.Helper()
	ctx := context.Background()
	sofa := f.seedProduct("Oakwood Sofa", 4599900, true)
	order, err := f.service.PlaceOrder(ctx, customerActor("cust-1"), application.PlaceOrderInput{
		Items:       []application.OrderLineInput{{ProductID: sofa.ProductID, Quantity: 1}},
		ShipName:    "Asha Verma",
		ShipAddress: "14 Lake View Road",
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	order, err = f.service.UpdateOrderStatus(ctx, adminActor(), application.UpdateOrderStatusInput{
		OrderID: order.OrderID,
		Status:  "confirmed",
	})
	if err != nil {
		t.Fatalf("confirm order failed: %v", err)
	}
	return order
}

func TestRecordDeliveryEventAppendsHistory(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	order := f.seedShippableOrder(t)

	updated, err := f.service.RecordDeliveryEvent(ctx, partnerActor("swiftship"), application.DeliveryEventInput{
		OrderID: order.OrderID,
		Status:  "in_transit",
		Note:    "left Pune hub",
	})
	if err != nil {
		t.Fatalf("record delivery event failed: %v", err)
	}
	if updated.Status != domain.OrderStatusConfirmed {
		t.Fatalf("intermediate status must not move the order, got %s", updated.Status)
	}
	if len(updated.Tracking) != 1 || updated.Tracking[0].Status != "in_transit" {
		t.Fatalf("expected tracking entry, got %+v", updated.Tracking)
	}
	if updated.Tracking[0].Partner != "swiftship" {
		t.Fatalf("expected partner attribution, got %q", updated.Tracking[0].Partner)
	}
}

func TestRecordDeliveryEventAdvancesOrder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	order := f.seedShippableOrder(t)

	shipped, err := f.service.RecordDeliveryEvent(ctx, partnerActor("swiftship"), application.DeliveryEventInput{
		OrderID:    order.OrderID,
		Status:     "shipped",
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("shipped event failed: %v", err)
	}
	if shipped.Status != domain.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", shipped.Status)
	}

	delivered, err := f.service.RecordDeliveryEvent(ctx, partnerActor("swiftship"), application.DeliveryEventInput{
		OrderID: order.OrderID,
		Status:  "delivered",
	})
	if err != nil {
		t.Fatalf("delivered event failed: %v", err)
	}
	if delivered.Status != domain.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", delivered.Status)
	}
}

func TestRecordDeliveryEventOutOfOrderKeepsHistory(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	order := f.seedShippableOrder(t)

	if _, err := f.service.RecordDeliveryEvent(ctx, partnerActor("swiftship"), application.DeliveryEventInput{
		OrderID: order.OrderID,
		Status:  "shipped",
	}); err != nil {
		t.Fatalf("shipped event failed: %v", err)
	}
	if _, err := f.service.RecordDeliveryEvent(ctx, partnerActor("swiftship"), application.DeliveryEventInput{
		OrderID: order.OrderID,
		Status:  "delivered",
	}); err != nil {
		t.Fatalf("delivered event failed: %v", err)
	}

	// A late "shipped" callback after delivery records history but must not
	// regress the order status.
	late, err := f.service.RecordDeliveryEvent(ctx, partnerActor("swiftship"), application.DeliveryEventInput{
		OrderID: order.OrderID,
		Status:  "shipped",
	})
	if err != nil {
		t.Fatalf("late event failed: %v", err)
	}
	if late.Status != domain.OrderStatusDelivered {
		t.Fatalf("expected delivered to stick, got %s", late.Status)
	}
	if len(late.Tracking) != 3 {
		t.Fatalf("expected three tracking entries, got %d", len(late.Tracking))
	}
}

func TestRecordDeliveryEventValidation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	order := f.seedShippableOrder(t)

	if _, err := f.service.RecordDeliveryEvent(ctx, customerActor("cust-1"), application.DeliveryEventInput{
		OrderID: order.OrderID,
		Status:  "shipped",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-partner, got %v", err)
	}

	if _, err := f.service.RecordDeliveryEvent(ctx, partnerActor("swiftship"), application.DeliveryEventInput{
		OrderID: order.OrderID,
		Status:  "teleported",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}

	if _, err := f.service.RecordDeliveryEvent(ctx, partnerActor("swiftship"), application.DeliveryEventInput{
		OrderID:    order.OrderID,
		Status:     "in_transit",
		OccurredAt: "yesterday",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad timestamp, got %v", err)
	}
}
