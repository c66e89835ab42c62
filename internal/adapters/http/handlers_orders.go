package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/application"
)

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "place_order")
		return
	}
	var req application.PlaceOrderInput
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "place_order", err)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), actor, req)
	if err != nil {
		writeMappedError(r.Context(), w, "place_order", err)
		return
	}
	writeSuccess(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "get_order")
		return
	}
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order_id")
		return
	}

	order, err := h.service.GetOrder(r.Context(), actor, orderID)
	if err != nil {
		writeMappedError(r.Context(), w, "get_order", err)
		return
	}
	writeSuccess(w, http.StatusOK, order)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "list_my_orders")
		return
	}

	page := parseIntDefault(r.URL.Query().Get("page"), 1)
	limit := parseIntDefault(r.URL.Query().Get("limit"), 20)
	orders, total, err := h.service.ListMyOrders(r.Context(), actor, page, limit)
	if err != nil {
		writeMappedError(r.Context(), w, "list_my_orders", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "list_orders")
		return
	}

	input := application.ListOrdersInput{
		Status:   r.URL.Query().Get("status"),
		Page:     parseIntDefault(r.URL.Query().Get("page"), 1),
		PageSize: parseIntDefault(r.URL.Query().Get("limit"), 20),
	}
	orders, total, err := h.service.ListOrders(r.Context(), actor, input)
	if err != nil {
		writeMappedError(r.Context(), w, "list_orders", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
	})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "update_order_status")
		return
	}
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order_id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_order_status", err)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), actor, application.UpdateOrderStatusInput{
		OrderID: orderID,
		Status:  req.Status,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "update_order_status", err)
		return
	}
	writeSuccess(w, http.StatusOK, order)
}
