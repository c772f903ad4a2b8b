package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tindahan"

// Metrics holds all tindahan metric instruments. Instruments fall back to
// no-ops when no meter provider is installed, so recording is always safe.
type Metrics struct {
	profilesRegistered metric.Int64Counter
	menuItemsCreated   metric.Int64Counter
	ordersRecorded     metric.Int64Counter
	orderQuantity      metric.Int64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.profilesRegistered, err = meter.Int64Counter("tindahan.profiles.registered",
		metric.WithDescription("Number of business profiles registered"))
	if err != nil {
		return nil, err
	}

	m.menuItemsCreated, err = meter.Int64Counter("tindahan.menu_items.created",
		metric.WithDescription("Number of menu items created"))
	if err != nil {
		return nil, err
	}

	m.ordersRecorded, err = meter.Int64Counter("tindahan.orders.recorded",
		metric.WithDescription("Number of orders recorded"))
	if err != nil {
		return nil, err
	}

	m.orderQuantity, err = meter.Int64Histogram("tindahan.orders.quantity",
		metric.WithDescription("Quantity per recorded order"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// ProfileRegistered counts a successful registration.
func (m *Metrics) ProfileRegistered(ctx context.Context) {
	if m == nil {
		return
	}
	m.profilesRegistered.Add(ctx, 1)
}

// MenuItemCreated counts a created menu item.
func (m *Metrics) MenuItemCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.menuItemsCreated.Add(ctx, 1)
}

// OrderRecorded counts an order and records its quantity.
func (m *Metrics) OrderRecorded(ctx context.Context, quantity int) {
	if m == nil {
		return
	}
	m.ordersRecorded.Add(ctx, 1)
	m.orderQuantity.Record(ctx, int64(quantity))
}
