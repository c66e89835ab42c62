package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LeadStatus tracks the administrative lifecycle of a captured inquiry.
// Only the status is mutable after creation.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
)

// PhoneDedupWindow is the trailing interval during which a second lead with
// the same phone is treated as a likely duplicate. Deliberately narrow so a
// legitimate repeat inquiry later the same day is not blocked.
const PhoneDedupWindow = 5 * time.Minute

// Lead is a captured prospective-customer inquiry for a design consultation.
type Lead struct {
	LeadID         uuid.UUID  `json:"lead_id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email,omitempty"`
	City           string     `json:"city,omitempty"`
	HomeType       string     `json:"home_type,omitempty"`
	SourcePage     string     `json:"source_page,omitempty"`
	Message        string     `json:"message,omitempty"`
	RequestID      string     `json:"request_id,omitempty"`
	ProductDetails string     `json:"product_details,omitempty"`
	Status         LeadStatus `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ValidateLeadStatus rejects statuses outside the admin-settable enum.
func ValidateLeadStatus(status LeadStatus) error {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusClosed:
		return nil
	default:
		return fmt.Errorf("%w: unknown lead status %q", ErrInvalidInput, status)
	}
}

// NormalizePhone reduces a phone number to its digits so that formatting
// variants of the same number share one dedup fingerprint.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
