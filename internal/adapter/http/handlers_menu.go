package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tindahan/tindahan/internal/domain/menu"
	"github.com/tindahan/tindahan/internal/domain/order"
	"github.com/tindahan/tindahan/internal/middleware"
)

// CreateMenuItem handles POST /api/v1/menu_items
func (h *Handlers) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	req, ok := readJSON[menu.CreateRequest](w, r)
	if !ok {
		return
	}

	item, err := h.Menu.Create(r.Context(), caller, req)
	if err != nil {
		writeDomainError(w, err, "menu item not found")
		return
	}

	h.Metrics.MenuItemCreated(r.Context())
	writeJSON(w, http.StatusCreated, item)
}

// ListMenuItems handles GET /api/v1/menu_items (superuser only)
func (h *Handlers) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	items, err := h.Menu.List(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err, "menu items not found")
		return
	}
	if items == nil {
		items = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// orderFilterFromQuery parses ?date=YYYY-MM-DD, ?page and ?per_page.
func orderFilterFromQuery(r *http.Request) (order.Filter, error) {
	var f order.Filter
	q := r.URL.Query()

	if d := q.Get("date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return f, err
		}
		f.Date = &t
	}
	if p := q.Get("page"); p != "" {
		f.Page, _ = strconv.Atoi(p)
	}
	if pp := q.Get("per_page"); pp != "" {
		f.PerPage, _ = strconv.Atoi(pp)
	}
	return f, nil
}

// GetMenuItem handles GET /api/v1/profiles/{fbn}/menu_items/{slug}
func (h *Handlers) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())

	f, err := orderFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter, expected YYYY-MM-DD")
		return
	}

	detail, err := h.Menu.Get(r.Context(), caller, urlParam(r, "fbn"), urlParam(r, "slug"), f)
	if err != nil {
		writeDomainError(w, err, "menu item not found")
		return
	}
	if detail.Orders == nil {
		detail.Orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateMenuItem handles PUT /api/v1/profiles/{fbn}/menu_items/{slug}
func (h *Handlers) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	req, ok := readJSON[menu.UpdateRequest](w, r)
	if !ok {
		return
	}

	item, err := h.Menu.Update(r.Context(), caller, urlParam(r, "fbn"), urlParam(r, "slug"), req)
	if err != nil {
		writeDomainError(w, err, "menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/v1/profiles/{fbn}/menu_items/{slug}
func (h *Handlers) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	if err := h.Menu.Delete(r.Context(), caller, urlParam(r, "fbn"), urlParam(r, "slug")); err != nil {
		writeDomainError(w, err, "menu item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
