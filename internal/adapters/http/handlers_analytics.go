package http

import (
	"net/http"

	"github.com/nestora/storefront/internal/application"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "dashboard")
		return
	}

	snapshot, err := h.service.GetDashboard(r.Context(), actor, application.DashboardInput{
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
	})
	if err != nil {
		writeMappedError(r.Context(), w, "dashboard", err)
		return
	}
	writeSuccess(w, http.StatusOK, snapshot)
}
