package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nestora/storefront/internal/application"
	"github.com/nestora/storefront/internal/domain"
)

func TestSubmitLeadPersistsAndEnqueuesNotification(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	lead, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
		Name:       "  Asha Verma ",
		Phone:      "+91 98765-43210",
		Email:      "asha@example.com",
		City:       "Pune",
		HomeType:   "2BHK",
		SourcePage: "/living-room",
		Meta:       application.LeadMeta{RequestID: "req-abc-1"},
	})
	if err != nil {
		t.Fatalf("submit lead failed: %v", err)
	}
	if lead.Status != domain.LeadStatusNew {
		t.Fatalf("expected status new, got %s", lead.Status)
	}
	if lead.Name != "Asha Verma" {
		t.Fatalf("expected trimmed name, got %q", lead.Name)
	}
	if lead.Phone != "919876543210" {
		t.Fatalf("expected normalized phone, got %q", lead.Phone)
	}

	if len(f.leads.events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(f.leads.events))
	}
	if got := f.leads.events[0].EventType; got != "lead.created" {
		t.Fatalf("expected lead.created event, got %s", got)
	}
}

func TestSubmitLeadValidation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{Phone: "9876543210"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing name, got %v", err)
	}
	if _, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{Name: "Asha"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing phone, got %v", err)
	}
	// A phone with no digits normalizes to empty and is rejected the same way.
	if _, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{Name: "Asha", Phone: "n/a"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for digit-free phone, got %v", err)
	}
}

func TestSubmitLeadDuplicateRequestIDHasNoTimeWindow(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	// Seed an old lead: well past the phone window, the request id must
	// still block a replay.
	f.seedLead("9876543210", "req-old-1", time.Now().UTC().Add(-48*time.Hour))

	_, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
		Name:  "Asha",
		Phone: "8888877777",
		Meta:  application.LeadMeta{RequestID: "req-old-1"},
	})
	if !errors.Is(err, domain.ErrDuplicateRequestID) {
		t.Fatalf("expected duplicate request id, got %v", err)
	}
}

func TestSubmitLeadPhoneWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("inside window rejected", func(t *testing.T) {
		f := newFixture()
		f.seedLead("9876543210", "", time.Now().UTC().Add(-4*time.Minute))

		_, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
			Name:  "Asha",
			Phone: "98765 43210",
		})
		if !errors.Is(err, domain.ErrDuplicatePhoneWindow) {
			t.Fatalf("expected duplicate phone window, got %v", err)
		}
	})

	t.Run("outside window accepted", func(t *testing.T) {
		f := newFixture()
		f.seedLead("9876543210", "", time.Now().UTC().Add(-5*time.Minute-time.Second))

		if _, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
			Name:  "Asha",
			Phone: "9876543210",
		}); err != nil {
			t.Fatalf("expected accepted submission outside window, got %v", err)
		}
	})

	t.Run("different phone inside window accepted", func(t *testing.T) {
		f := newFixture()
		f.seedLead("9876543210", "", time.Now().UTC().Add(-time.Minute))

		if _, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
			Name:  "Ravi",
			Phone: "8888877777",
		}); err != nil {
			t.Fatalf("expected accepted submission for other phone, got %v", err)
		}
	})
}

func TestSubmitLeadRequestIDCheckedBeforePhoneWindow(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	// The seeded lead matches on both request id and recent phone; the
	// request id verdict must win.
	f.seedLead("9876543210", "req-both-1", time.Now().UTC().Add(-time.Minute))

	_, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
		Name:  "Asha",
		Phone: "9876543210",
		Meta:  application.LeadMeta{RequestID: "req-both-1"},
	})
	if !errors.Is(err, domain.ErrDuplicateRequestID) {
		t.Fatalf("expected duplicate request id verdict, got %v", err)
	}
}

func TestSubmitLeadConstraintRaceSurfacesAsDuplicate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	// Simulate the insert losing a race: the pre-insert read saw nothing,
	// but the unique index rejects the row.
	f.leads.createErr = domain.ErrDuplicateRequestID

	_, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
		Name:  "Asha",
		Phone: "9876543210",
		Meta:  application.LeadMeta{RequestID: "req-race-1"},
	})
	if !errors.Is(err, domain.ErrDuplicateRequestID) {
		t.Fatalf("expected duplicate request id from constraint, got %v", err)
	}
}

func TestSubmitLeadWithoutRequestIDSkipsIdempotencyCheck(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
			Name:  "Walk In",
			Phone: fmt.Sprintf("90000%05d", i),
		}); err != nil {
			t.Fatalf("submission %d failed: %v", i, err)
		}
	}
}

func TestSubmitLeadRateLimited(t *testing.T) {
	t.Parallel()

	cfg := defaultTestConfig()
	cfg.SubmitIPThreshold = 3
	f := newFixtureWithConfig(cfg)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
			Name:      "Asha",
			Phone:     fmt.Sprintf("91111%05d", i),
			IPAddress: "203.0.113.9",
		}); err != nil {
			t.Fatalf("submission %d failed: %v", i, err)
		}
	}

	_, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
		Name:      "Asha",
		Phone:     "9111100099",
		IPAddress: "203.0.113.9",
	})
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected rate limited, got %v", err)
	}
}

func TestSubmitLeadThrottleOutageWavesThrough(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	f.throttle.err = errors.New("redis down")

	if _, err := f.service.SubmitLead(ctx, application.SubmitLeadRequest{
		Name:      "Asha",
		Phone:     "9876543210",
		IPAddress: "203.0.113.9",
	}); err != nil {
		t.Fatalf("expected submission to pass when throttle store is down, got %v", err)
	}
}

func TestUpdateLeadStatus(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	lead := f.seedLead("9876543210", "", time.Now().UTC().Add(-time.Hour))

	updated, err := f.service.UpdateLeadStatus(ctx, adminActor(), application.UpdateLeadStatusInput{
		LeadID: lead.LeadID,
		Status: "Contacted",
	})
	if err != nil {
		t.Fatalf("update lead status failed: %v", err)
	}
	if updated.Status != domain.LeadStatusContacted {
		t.Fatalf("expected contacted, got %s", updated.Status)
	}

	if _, err := f.service.UpdateLeadStatus(ctx, adminActor(), application.UpdateLeadStatusInput{
		LeadID: lead.LeadID,
		Status: "archived",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}

	if _, err := f.service.UpdateLeadStatus(ctx, customerActor("cust-1"), application.UpdateLeadStatusInput{
		LeadID: lead.LeadID,
		Status: "closed",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
}

func TestListLeadsAdminOnly(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	f.seedLead("9876543210", "", time.Now().UTC())

	if _, _, err := f.service.ListLeads(ctx, customerActor("cust-1"), application.ListLeadsInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for customer, got %v", err)
	}

	leads, total, err := f.service.ListLeads(ctx, adminActor(), application.ListLeadsInput{})
	if err != nil {
		t.Fatalf("list leads failed: %v", err)
	}
	if total != 1 || len(leads) != 1 {
		t.Fatalf("expected one lead, got %d", total)
	}
}
