package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput covers missing or malformed caller-supplied fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateRequestID signals that a lead with the same client idempotency
	// key already exists. The check has no time window: a retried token is a
	// duplicate whether the original is seconds or hours old.
	ErrDuplicateRequestID = errors.New("duplicate request id")
	// ErrDuplicatePhoneWindow signals a lead with the same phone inside the
	// trailing dedup window. It is an anti-spam heuristic, not an identity check.
	ErrDuplicatePhoneWindow = errors.New("duplicate phone within dedup window")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict")
	ErrIdempotencyConflict  = errors.New("idempotency conflict")
	ErrRateLimited          = errors.New("rate limited")
	// ErrInvalidTransition rejects order status changes outside the allowed graph.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOutOfStock        = errors.New("product out of stock")
)
