package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/application"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	input := application.ListProductsInput{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
		Page:     parseIntDefault(r.URL.Query().Get("page"), 1),
		PageSize: parseIntDefault(r.URL.Query().Get("limit"), 20),
	}
	products, total, err := h.service.ListProducts(r.Context(), input)
	if err != nil {
		writeMappedError(r.Context(), w, "list_products", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    total,
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeMappedError(r.Context(), w, "get_product", err)
		return
	}
	writeSuccess(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "create_product")
		return
	}
	var req application.CreateProductInput
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_product", err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), actor, req)
	if err != nil {
		writeMappedError(r.Context(), w, "create_product", err)
		return
	}
	writeSuccess(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "update_product")
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product_id")
		return
	}

	var req application.UpdateProductInput
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_product", err)
		return
	}
	req.ProductID = productID

	product, err := h.service.UpdateProduct(r.Context(), actor, req)
	if err != nil {
		writeMappedError(r.Context(), w, "update_product", err)
		return
	}
	writeSuccess(w, http.StatusOK, product)
}
