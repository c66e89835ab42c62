package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type memOutbox struct {
	mu           sync.Mutex
	records      []ports.OutboxRecord
	published    []uuid.UUID
	failed       []uuid.UUID
	deadLettered []uuid.UUID
}

func (m *memOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, ports.OutboxRecord{
		OutboxID:  uuid.New(),
		EventType: event.EventType,
		Payload:   event.Payload,
	})
	return nil
}

func (m *memOutbox) ClaimUnpublished(_ context.Context, limit int, _ string, _ time.Time) ([]ports.OutboxRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.OutboxRecord, 0, limit)
	for _, rec := range m.records {
		if len(out) == limit {
			break
		}
		out = append(out, rec)
	}
	return out, nil
}

func (m *memOutbox) MarkPublished(_ context.Context, outboxID uuid.UUID, _ string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, outboxID)
	m.remove(outboxID)
	return nil
}

func (m *memOutbox) MarkFailed(_ context.Context, outboxID uuid.UUID, _, _ string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, outboxID)
	for i := range m.records {
		if m.records[i].OutboxID == outboxID {
			m.records[i].RetryCount++
		}
	}
	return nil
}

func (m *memOutbox) MarkDeadLettered(_ context.Context, outboxID uuid.UUID, _, _ string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deadLettered = append(m.deadLettered, outboxID)
	m.remove(outboxID)
	return nil
}

func (m *memOutbox) remove(outboxID uuid.UUID) {
	for i, rec := range m.records {
		if rec.OutboxID == outboxID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return
		}
	}
}

type stubPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, eventType string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, eventType)
	return nil
}

type stubMailer struct {
	mu   sync.Mutex
	sent []ports.MailMessage
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestOutboxWorkerPublishesClaimedBatch(t *testing.T) {
	t.Parallel()

	outbox := &memOutbox{}
	ctx := context.Background()
	if err := outbox.Enqueue(ctx, ports.OutboxEvent{EventType: "lead.created", Payload: []byte(`{"name":"A"}`)}); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := outbox.Enqueue(ctx, ports.OutboxEvent{EventType: "order.placed", Payload: []byte(`{"order_id":"o"}`)}); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	pub := &stubPublisher{}
	w := NewOutboxWorker(discardLogger(), outbox, pub, 0, 0, 0, 0)
	if err := w.processOnce(ctx); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 publishes, got %v", pub.events)
	}
	if len(outbox.published) != 2 || len(outbox.failed) != 0 {
		t.Fatalf("expected both records published, got published=%d failed=%d", len(outbox.published), len(outbox.failed))
	}
	if len(outbox.records) != 0 {
		t.Fatalf("published records must leave the claim set, %d remain", len(outbox.records))
	}
}

func TestOutboxWorkerRetriesThenDeadLetters(t *testing.T) {
	t.Parallel()

	outbox := &memOutbox{}
	ctx := context.Background()
	if err := outbox.Enqueue(ctx, ports.OutboxEvent{EventType: "lead.created", Payload: []byte(`{}`)}); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	pub := &stubPublisher{err: errors.New("mail provider down")}
	w := NewOutboxWorker(discardLogger(), outbox, pub, 0, 0, 0, 3)

	// Two failures stay retryable, the third crosses the threshold.
	for i := 0; i < 3; i++ {
		if err := w.processOnce(ctx); err != nil {
			t.Fatalf("process %d failed: %v", i, err)
		}
	}

	if len(outbox.failed) != 2 {
		t.Fatalf("expected 2 retryable failures, got %d", len(outbox.failed))
	}
	if len(outbox.deadLettered) != 1 {
		t.Fatalf("expected 1 dead-lettered record, got %d", len(outbox.deadLettered))
	}
	if len(outbox.records) != 0 {
		t.Fatalf("dead-lettered record must leave the claim set")
	}
}

func TestOutboxWorkerRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	outbox := &memOutbox{}
	pub := &stubPublisher{}
	w := NewOutboxWorker(discardLogger(), outbox, pub, 10*time.Millisecond, 0, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMailPublisherSendsLeadMail(t *testing.T) {
	t.Parallel()

	mailer := &stubMailer{}
	next := &stubPublisher{}
	p := NewMailPublisher(discardLogger(), mailer, "ops@nestora.example", next)

	payload := []byte(`{"lead_id":"l-1","name":"Asha Rao","phone":"919876543210","city":"Pune","message":"Need a sectional"}`)
	if err := p.Publish(context.Background(), "lead.created", payload); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To != "ops@nestora.example" {
		t.Fatalf("unexpected recipient %q", msg.To)
	}
	if msg.Subject != "New lead: Asha Rao (Pune)" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "919876543210") || !strings.Contains(msg.Body, "Need a sectional") {
		t.Fatalf("mail body missing lead details:\n%s", msg.Body)
	}
	if len(next.events) != 0 {
		t.Fatalf("handled events must not fall through, got %v", next.events)
	}
}

func TestMailPublisherSendsOrderMail(t *testing.T) {
	t.Parallel()

	mailer := &stubMailer{}
	p := NewMailPublisher(discardLogger(), mailer, "ops@nestora.example", nil)

	payload := []byte(`{"order_id":"o-1","customer_id":"cust-1","total_cents":4599950,"currency":"INR","item_count":2}`)
	if err := p.Publish(context.Background(), "order.placed", payload); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.Subject != "New order o-1" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "45999.50 INR") {
		t.Fatalf("mail body missing formatted total:\n%s", msg.Body)
	}
}

func TestMailPublisherFallsThroughUnknownEvents(t *testing.T) {
	t.Parallel()

	mailer := &stubMailer{}
	next := &stubPublisher{}
	p := NewMailPublisher(discardLogger(), mailer, "ops@nestora.example", next)

	if err := p.Publish(context.Background(), "lead.status_changed", []byte(`{}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("unknown events must not produce mail")
	}
	if len(next.events) != 1 || next.events[0] != "lead.status_changed" {
		t.Fatalf("expected fall-through, got %v", next.events)
	}
}

func TestMailPublisherSurfacesSendFailure(t *testing.T) {
	t.Parallel()

	mailer := &stubMailer{err: errors.New("smtp 451")}
	p := NewMailPublisher(discardLogger(), mailer, "ops@nestora.example", nil)

	if err := p.Publish(context.Background(), "lead.created", []byte(`{"name":"A"}`)); err == nil {
		t.Fatal("expected send failure to surface for outbox retry")
	}
}
