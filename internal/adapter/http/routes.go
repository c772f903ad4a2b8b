package http

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router. The
// bearer-token middleware runs above this router; route-level policy is
// enforced in the services.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// Session
		r.Post("/auth/login", h.Login)
		r.Post("/auth/refresh", h.Refresh)
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		// Profiles, addressed by full business name
		r.Post("/profiles", h.RegisterProfile)
		r.Get("/profiles", h.ListProfiles)
		r.Get("/profiles/{fbn}", h.GetProfile)
		r.Put("/profiles/{fbn}", h.UpdateProfile)
		r.Delete("/profiles/{fbn}", h.DeleteProfile)

		// Menu items, addressed by (business key, slug)
		r.Post("/menu_items", h.CreateMenuItem)
		r.Get("/menu_items", h.ListMenuItems)
		r.Get("/profiles/{fbn}/menu_items/{slug}", h.GetMenuItem)
		r.Put("/profiles/{fbn}/menu_items/{slug}", h.UpdateMenuItem)
		r.Delete("/profiles/{fbn}/menu_items/{slug}", h.DeleteMenuItem)

		// Orders, nested under their menu item
		r.Post("/profiles/{fbn}/menu_items/{slug}/orders", h.CreateOrder)
		r.Get("/profiles/{fbn}/menu_items/{slug}/orders/{id}", h.GetOrder)
		r.Put("/profiles/{fbn}/menu_items/{slug}/orders/{id}", h.UpdateOrder)
		r.Delete("/profiles/{fbn}/menu_items/{slug}/orders/{id}", h.DeleteOrder)

		// All orders across one business
		r.Get("/profiles/{fbn}/orders", h.ListOwnerOrders)
	})
}
