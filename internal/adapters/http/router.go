package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers the storefront HTTP routes and middleware stack.
// Centralizing routes here keeps auth and error behavior consistent
// across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface: lead capture and catalog browsing.
		r.Post("/leads", handler.submitLead)
		r.Get("/products", handler.listProducts)
		r.Get("/products/{slug}", handler.getProduct)

		// Customer surface; identity resolved from the edge gateway header.
		r.Group(func(r chi.Router) {
			r.Use(handler.customerMiddleware)
			r.Get("/cart", handler.getCart)
			r.Post("/cart/items", handler.addToCart)
			r.Delete("/cart/items/{product_id}", handler.removeFromCart)
			r.Get("/wishlist", handler.listWishlist)
			r.Post("/wishlist", handler.addToWishlist)
			r.Delete("/wishlist/{product_id}", handler.removeFromWishlist)
			r.Post("/orders", handler.placeOrder)
			r.Get("/orders", handler.listMyOrders)
			r.Get("/orders/{order_id}", handler.getOrder)
		})

		// Admin back-office surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(handler.adminMiddleware)
			r.Get("/leads", handler.listLeads)
			r.Get("/leads/{lead_id}", handler.getLead)
			r.Patch("/leads/{lead_id}/status", handler.updateLeadStatus)
			r.Post("/products", handler.createProduct)
			r.Patch("/products/{product_id}", handler.updateProduct)
			r.Get("/orders", handler.listOrders)
			r.Get("/orders/{order_id}", handler.getOrder)
			r.Patch("/orders/{order_id}/status", handler.updateOrderStatus)
			r.Get("/dashboard", handler.dashboard)
		})

		// Delivery partner callbacks.
		r.Route("/partner", func(r chi.Router) {
			r.Use(handler.partnerMiddleware)
			r.Post("/orders/{order_id}/tracking", handler.recordDeliveryEvent)
		})
	})

	return r
}
