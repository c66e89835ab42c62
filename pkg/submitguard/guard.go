// Package submitguard prevents a caller from firing two concurrent
// submissions for the same logical form. It is an advisory, process-local
// guard: it does not survive restarts and gives no cross-client guarantee,
// so it never substitutes for server-side idempotency.
package submitguard

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync"
	"time"
)

// Registry holds at most one live submission lock per form ID. It is an
// explicit value owned by the caller rather than a package-level singleton,
// so tests and independent clients each get their own lock space.
type Registry struct {
	mu    sync.Mutex
	locks map[string]lock
	nowFn func() time.Time
}

type lock struct {
	submissionID string
	acquiredAt   time.Time
}

// NewRegistry returns an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{
		locks: make(map[string]lock),
		nowFn: time.Now,
	}
}

// Acquire claims the submission lock for formID. The first caller wins and
// receives a fresh submission ID; every caller after that gets ok=false until
// Release runs. The check-and-set is mutex-serialized so rapid repeat events
// (double click, held Enter key) admit exactly one submission.
func (r *Registry) Acquire(formID string) (submissionID string, ok bool) {
	if formID == "" {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, held := r.locks[formID]; held {
		return "", false
	}
	now := r.nowFn()
	id := newSubmissionID(now)
	r.locks[formID] = lock{submissionID: id, acquiredAt: now}
	return id, true
}

// Release drops any lock held for formID. It is idempotent and must be called
// on every exit path of the submission workflow; a missed release leaves the
// form locked until the process restarts.
func (r *Registry) Release(formID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, formID)
}

// IsLocked reports whether a submission is in flight for formID, without
// side effects.
func (r *Registry) IsLocked(formID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, held := r.locks[formID]
	return held
}

// newSubmissionID builds an opaque per-attempt token: millisecond timestamp
// plus a random suffix.
func newSubmissionID(now time.Time) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + hex.EncodeToString(suffix)
}
