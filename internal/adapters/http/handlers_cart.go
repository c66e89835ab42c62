package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/application"
)

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "get_cart")
		return
	}
	cart, err := h.service.GetCart(r.Context(), actor)
	if err != nil {
		writeMappedError(r.Context(), w, "get_cart", err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "add_to_cart")
		return
	}
	var req application.CartAddInput
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "add_to_cart", err)
		return
	}

	cart, err := h.service.AddToCart(r.Context(), actor, req)
	if err != nil {
		writeMappedError(r.Context(), w, "add_to_cart", err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "remove_from_cart")
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product_id")
		return
	}

	cart, err := h.service.RemoveFromCart(r.Context(), actor, productID)
	if err != nil {
		writeMappedError(r.Context(), w, "remove_from_cart", err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

func (h *Handler) listWishlist(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "list_wishlist")
		return
	}
	items, err := h.service.ListWishlist(r.Context(), actor)
	if err != nil {
		writeMappedError(r.Context(), w, "list_wishlist", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) addToWishlist(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "add_to_wishlist")
		return
	}
	var req struct {
		ProductID uuid.UUID `json:"product_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "add_to_wishlist", err)
		return
	}

	if err := h.service.AddToWishlist(r.Context(), actor, req.ProductID); err != nil {
		writeMappedError(r.Context(), w, "add_to_wishlist", err)
		return
	}
	writeMessage(w, http.StatusOK, "Added to wishlist")
}

func (h *Handler) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "remove_from_wishlist")
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product_id")
		return
	}

	if err := h.service.RemoveFromWishlist(r.Context(), actor, productID); err != nil {
		writeMappedError(r.Context(), w, "remove_from_wishlist", err)
		return
	}
	writeMessage(w, http.StatusOK, "Removed from wishlist")
}
