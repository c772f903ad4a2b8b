package http

import (
	"net/http"

	"github.com/tindahan/tindahan/internal/domain/order"
	"github.com/tindahan/tindahan/internal/middleware"
)

// CreateOrder handles POST /api/v1/profiles/{fbn}/menu_items/{slug}/orders
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	req, ok := readJSON[order.CreateRequest](w, r)
	if !ok {
		return
	}

	o, err := h.Orders.Create(r.Context(), caller, urlParam(r, "fbn"), urlParam(r, "slug"), req)
	if err != nil {
		writeDomainError(w, err, "menu item not found")
		return
	}

	h.Metrics.OrderRecorded(r.Context(), o.Quantity)
	writeJSON(w, http.StatusCreated, o)
}

// GetOrder handles GET /api/v1/profiles/{fbn}/menu_items/{slug}/orders/{id}
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	o, err := h.Orders.Get(r.Context(), caller, urlParam(r, "fbn"), urlParam(r, "slug"), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// UpdateOrder handles PUT /api/v1/profiles/{fbn}/menu_items/{slug}/orders/{id}
func (h *Handlers) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	req, ok := readJSON[order.UpdateRequest](w, r)
	if !ok {
		return
	}

	o, err := h.Orders.Update(r.Context(), caller, urlParam(r, "fbn"), urlParam(r, "slug"), urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// DeleteOrder handles DELETE /api/v1/profiles/{fbn}/menu_items/{slug}/orders/{id}
func (h *Handlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	if err := h.Orders.Delete(r.Context(), caller, urlParam(r, "fbn"), urlParam(r, "slug"), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOwnerOrders handles GET /api/v1/profiles/{fbn}/orders
func (h *Handlers) ListOwnerOrders(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	orders, err := h.Orders.ListByOwner(r.Context(), caller, urlParam(r, "fbn"))
	if err != nil {
		writeDomainError(w, err, "business not found")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
