package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/nestora/storefront/internal/application"
)

// Handler is the HTTP adapter entrypoint for storefront use-cases.
// Keeping only application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service

	// Caller identity arrives pre-authenticated from the edge gateway.
	// The static tokens below gate the admin and delivery-partner surfaces.
	adminToken    string
	partnerTokens map[string]string
}

// NewHandler constructs an HTTP handler bound to the application service.
// partnerTokens maps a shared partner token to that partner's name.
func NewHandler(service *application.Service, adminToken string, partnerTokens map[string]string) *Handler {
	return &Handler{
		service:       service,
		adminToken:    adminToken,
		partnerTokens: partnerTokens,
	}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

// customerMiddleware resolves the customer identity the gateway forwarded.
func (h *Handler) customerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerID := strings.TrimSpace(r.Header.Get("X-Customer-Id"))
		if customerID == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing customer identity")
			return
		}

		actor := application.Actor{
			SubjectID:      customerID,
			Role:           application.RoleCustomer,
			IdempotencyKey: strings.TrimSpace(r.Header.Get("Idempotency-Key")),
		}
		next.ServeHTTP(w, r.WithContext(contextWithActor(r.Context(), actor)))
	})
}

func (h *Handler) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil || h.adminToken == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid admin token")
			return
		}

		actor := application.Actor{
			SubjectID: "admin",
			Role:      application.RoleAdmin,
		}
		next.ServeHTTP(w, r.WithContext(contextWithActor(r.Context(), actor)))
	})
}

func (h *Handler) partnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("X-Partner-Token"))
		partner, ok := h.partnerTokens[token]
		if token == "" || !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid partner token")
			return
		}

		actor := application.Actor{
			SubjectID: partner,
			Role:      application.RolePartner,
			Partner:   partner,
		}
		next.ServeHTTP(w, r.WithContext(contextWithActor(r.Context(), actor)))
	})
}
