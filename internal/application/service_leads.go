package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/domain"
	"github.com/nestora/storefront/internal/ports"
)

// SubmitLead runs the public lead-capture pipeline: validation, submission
// throttling, the two duplicate checks in order, then the transactional
// insert with its notification event. The request-id check is evaluated
// before the phone-window check and is never time-limited; the unique index
// on request_id remains the final authority if two in-flight requests race
// past the read.
func (s *Service) SubmitLead(ctx context.Context, req SubmitLeadRequest) (domain.Lead, error) {
	name := strings.TrimSpace(req.Name)
	phone := domain.NormalizePhone(req.Phone)
	if name == "" {
		return domain.Lead{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if phone == "" {
		return domain.Lead{}, fmt.Errorf("%w: phone is required", domain.ErrInvalidInput)
	}

	if err := s.enforceRateLimit(ctx, "lead:ip:"+strings.TrimSpace(req.IPAddress), s.cfg.SubmitIPThreshold, s.cfg.SubmitRateWindow); err != nil {
		return domain.Lead{}, err
	}
	if err := s.enforceRateLimit(ctx, "lead:phone:"+phone, s.cfg.SubmitPhoneThreshold, s.cfg.SubmitRateWindow); err != nil {
		return domain.Lead{}, err
	}

	requestID := strings.TrimSpace(req.Meta.RequestID)
	if requestID != "" {
		exists, err := s.leads.ExistsByRequestID(ctx, requestID)
		if err != nil {
			return domain.Lead{}, fmt.Errorf("check request id: %w", err)
		}
		if exists {
			return domain.Lead{}, domain.ErrDuplicateRequestID
		}
	}

	now := s.nowFn()
	recent, err := s.leads.ExistsByPhoneSince(ctx, phone, now.Add(-s.cfg.PhoneDedupWindow))
	if err != nil {
		return domain.Lead{}, fmt.Errorf("check phone window: %w", err)
	}
	if recent {
		return domain.Lead{}, domain.ErrDuplicatePhoneWindow
	}

	lead := domain.Lead{
		LeadID:         uuid.New(),
		Name:           name,
		Phone:          phone,
		Email:          strings.TrimSpace(req.Email),
		City:           strings.TrimSpace(req.City),
		HomeType:       strings.TrimSpace(req.HomeType),
		SourcePage:     strings.TrimSpace(req.SourcePage),
		Message:        strings.TrimSpace(req.Message),
		RequestID:      requestID,
		ProductDetails: strings.TrimSpace(req.ProductDetails),
		Status:         domain.LeadStatusNew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	event, err := leadCreatedEvent(lead, now)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("encode lead event: %w", err)
	}

	created, err := s.leads.CreateWithOutboxTx(ctx, lead, event)
	if err != nil {
		// A racing request with the same token loses here even though the
		// read above saw nothing; the constraint is the real dedup signal.
		if errors.Is(err, domain.ErrDuplicateRequestID) {
			return domain.Lead{}, domain.ErrDuplicateRequestID
		}
		return domain.Lead{}, fmt.Errorf("persist lead: %w", err)
	}
	return created, nil
}

// ListLeads returns the admin lead queue, newest first.
func (s *Service) ListLeads(ctx context.Context, actor Actor, input ListLeadsInput) ([]domain.Lead, int, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	filter := ports.LeadFilter{
		Phone: domain.NormalizePhone(input.Phone),
	}
	if raw := strings.ToLower(strings.TrimSpace(input.Status)); raw != "" {
		status := domain.LeadStatus(raw)
		if err := domain.ValidateLeadStatus(status); err != nil {
			return nil, 0, err
		}
		filter.Status = status
	}
	filter.Page, filter.PageSize = normalizePaging(input.Page, input.PageSize)
	return s.leads.List(ctx, filter)
}

func (s *Service) GetLead(ctx context.Context, actor Actor, leadID uuid.UUID) (domain.Lead, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Lead{}, err
	}
	if leadID == uuid.Nil {
		return domain.Lead{}, fmt.Errorf("%w: lead id is required", domain.ErrInvalidInput)
	}
	return s.leads.GetByID(ctx, leadID)
}

// UpdateLeadStatus is the only post-creation mutation a lead supports.
func (s *Service) UpdateLeadStatus(ctx context.Context, actor Actor, input UpdateLeadStatusInput) (domain.Lead, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Lead{}, err
	}
	if input.LeadID == uuid.Nil {
		return domain.Lead{}, fmt.Errorf("%w: lead id is required", domain.ErrInvalidInput)
	}
	status := domain.LeadStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if err := domain.ValidateLeadStatus(status); err != nil {
		return domain.Lead{}, err
	}
	return s.leads.UpdateStatus(ctx, input.LeadID, status, s.nowFn())
}

func leadCreatedEvent(lead domain.Lead, at time.Time) (ports.OutboxEvent, error) {
	payload, err := json.Marshal(leadCreatedPayload{
		LeadID:         lead.LeadID.String(),
		Name:           lead.Name,
		Phone:          lead.Phone,
		Email:          lead.Email,
		City:           lead.City,
		HomeType:       lead.HomeType,
		SourcePage:     lead.SourcePage,
		Message:        lead.Message,
		ProductDetails: lead.ProductDetails,
		CreatedAt:      at,
	})
	if err != nil {
		return ports.OutboxEvent{}, err
	}
	return ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventTypeLeadCreated,
		PartitionKey: lead.LeadID.String(),
		Payload:      payload,
		OccurredAt:   at,
	}, nil
}
