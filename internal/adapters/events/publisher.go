package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nestora/storefront/internal/ports"
)

// LoggingPublisher writes events to the structured log. It is the fallback
// delivery path for event types no other publisher handles, and the whole
// delivery path in environments without a mail provider configured.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	p.logger.InfoContext(ctx, "published event", "event_type", eventType, "payload", string(payload))
	return nil
}

// MailPublisher turns lead and order events into ops-inbox notifications.
// Events it does not recognize fall through to the next publisher.
type MailPublisher struct {
	logger   *slog.Logger
	sender   ports.MailSender
	opsInbox string
	next     ports.EventPublisher
}

func NewMailPublisher(logger *slog.Logger, sender ports.MailSender, opsInbox string, next ports.EventPublisher) *MailPublisher {
	return &MailPublisher{logger: logger, sender: sender, opsInbox: opsInbox, next: next}
}

func (p *MailPublisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	switch eventType {
	case "lead.created":
		return p.sendLeadMail(ctx, payload)
	case "order.placed":
		return p.sendOrderMail(ctx, payload)
	default:
		if p.next != nil {
			return p.next.Publish(ctx, eventType, payload)
		}
		return nil
	}
}

type leadCreatedEvent struct {
	LeadID         string `json:"lead_id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	City           string `json:"city"`
	HomeType       string `json:"home_type"`
	SourcePage     string `json:"source_page"`
	Message        string `json:"message"`
	ProductDetails string `json:"product_details"`
}

func (p *MailPublisher) sendLeadMail(ctx context.Context, payload []byte) error {
	var evt leadCreatedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("decode lead.created payload: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New enquiry %s\n\n", evt.LeadID)
	fmt.Fprintf(&b, "Name:  %s\n", evt.Name)
	fmt.Fprintf(&b, "Phone: %s\n", evt.Phone)
	if evt.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", evt.Email)
	}
	if evt.City != "" {
		fmt.Fprintf(&b, "City:  %s\n", evt.City)
	}
	if evt.HomeType != "" {
		fmt.Fprintf(&b, "Home:  %s\n", evt.HomeType)
	}
	if evt.SourcePage != "" {
		fmt.Fprintf(&b, "Page:  %s\n", evt.SourcePage)
	}
	if evt.ProductDetails != "" {
		fmt.Fprintf(&b, "Products: %s\n", evt.ProductDetails)
	}
	if evt.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", evt.Message)
	}

	subject := "New lead: " + evt.Name
	if evt.City != "" {
		subject += " (" + evt.City + ")"
	}
	return p.sender.Send(ctx, ports.MailMessage{
		To:      p.opsInbox,
		Subject: subject,
		Body:    b.String(),
	})
}

type orderPlacedEvent struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	TotalCents int64  `json:"total_cents"`
	Currency   string `json:"currency"`
	ItemCount  int    `json:"item_count"`
}

func (p *MailPublisher) sendOrderMail(ctx context.Context, payload []byte) error {
	var evt orderPlacedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("decode order.placed payload: %w", err)
	}

	body := fmt.Sprintf(
		"Order %s placed by customer %s.\n\nItems: %d\nTotal: %d.%02d %s\n",
		evt.OrderID, evt.CustomerID, evt.ItemCount,
		evt.TotalCents/100, evt.TotalCents%100, evt.Currency,
	)
	return p.sender.Send(ctx, ports.MailMessage{
		To:      p.opsInbox,
		Subject: "New order " + evt.OrderID,
		Body:    body,
	})
}
