package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/application"
)

func (h *Handler) recordDeliveryEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "record_delivery_event")
		return
	}
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order_id")
		return
	}

	var req application.DeliveryEventInput
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "record_delivery_event", err)
		return
	}
	req.OrderID = orderID

	order, err := h.service.RecordDeliveryEvent(r.Context(), actor, req)
	if err != nil {
		writeMappedError(r.Context(), w, "record_delivery_event", err)
		return
	}
	writeSuccess(w, http.StatusOK, order)
}
