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

type leadRepository struct {
	db *gorm.DB
}

// CreateWithOutboxTx inserts the lead and its notification event atomically.
// The partial unique index on request_id turns a racing duplicate token into
// domain.ErrDuplicateRequestID; that constraint error, not the application's
// earlier read, is the authoritative duplicate signal.
func (r *leadRepository) CreateWithOutboxTx(ctx context.Context, lead domain.Lead, event ports.OutboxEvent) (domain.Lead, error) {
	rec := leadToModel(lead)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateRequestID
			}
			return err
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
		return domain.Lead{}, err
	}
	return leadFromModel(rec), nil
}

func (r *leadRepository) ExistsByRequestID(ctx context.Context, requestID string) (bool, error) {
	if requestID == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Where("request_id = ?", requestID).
		Count(&count).Error
	return count > 0, err
}

func (r *leadRepository) ExistsByPhoneSince(ctx context.Context, phone string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Where("phone = ?", phone).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count > 0, err
}

func (r *leadRepository) GetByID(ctx context.Context, leadID uuid.UUID) (domain.Lead, error) {
	var rec leadModel
	if err := r.db.WithContext(ctx).Where("lead_id = ?", leadID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Lead{}, domain.ErrNotFound
		}
		return domain.Lead{}, err
	}
	return leadFromModel(rec), nil
}

func (r *leadRepository) List(ctx context.Context, filter ports.LeadFilter) ([]domain.Lead, int, error) {
	q := r.db.WithContext(ctx).Model(&leadModel{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Phone != "" {
		q = q.Where("phone = ?", filter.Phone)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []leadModel
	if err := q.Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	leads := make([]domain.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, leadFromModel(row))
	}
	return leads, int(total), nil
}

func (r *leadRepository) UpdateStatus(ctx context.Context, leadID uuid.UUID, status domain.LeadStatus, at time.Time) (domain.Lead, error) {
	result := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Where("lead_id = ?", leadID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": at,
		})
	if result.Error != nil {
		return domain.Lead{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Lead{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, leadID)
}

func leadToModel(lead domain.Lead) leadModel {
	rec := leadModel{
		LeadID:         lead.LeadID,
		Name:           lead.Name,
		Phone:          lead.Phone,
		Email:          lead.Email,
		City:           lead.City,
		HomeType:       lead.HomeType,
		SourcePage:     lead.SourcePage,
		Message:        lead.Message,
		ProductDetails: lead.ProductDetails,
		Status:         string(lead.Status),
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
	}
	// NULL keeps absent tokens out of the partial unique index.
	if lead.RequestID != "" {
		requestID := lead.RequestID
		rec.RequestID = &requestID
	}
	return rec
}

func leadFromModel(rec leadModel) domain.Lead {
	lead := domain.Lead{
		LeadID:         rec.LeadID,
		Name:           rec.Name,
		Phone:          rec.Phone,
		Email:          rec.Email,
		City:           rec.City,
		HomeType:       rec.HomeType,
		SourcePage:     rec.SourcePage,
		Message:        rec.Message,
		ProductDetails: rec.ProductDetails,
		Status:         domain.LeadStatus(rec.Status),
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.RequestID != nil {
		lead.RequestID = *rec.RequestID
	}
	return lead
}
