package http

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tindahan/tindahan/internal/adapter/otel"
	"github.com/tindahan/tindahan/internal/service"
)

// Handlers bundles the service dependencies for all HTTP handlers.
type Handlers struct {
	Auth     *service.AuthService
	Profiles *service.ProfileService
	Menu     *service.MenuService
	Orders   *service.OrderService
	Metrics  *otel.Metrics

	pool *pgxpool.Pool
}

// NewHandlers creates the handler set.
func NewHandlers(auth *service.AuthService, profiles *service.ProfileService, menu *service.MenuService, orders *service.OrderService, metrics *otel.Metrics, pool *pgxpool.Pool) *Handlers {
	return &Handlers{
		Auth:     auth,
		Profiles: profiles,
		Menu:     menu,
		Orders:   orders,
		Metrics:  metrics,
		pool:     pool,
	}
}

// Health handles GET /health. Readiness includes a database ping.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "down"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
