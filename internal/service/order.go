package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tindahan/tindahan/internal/authz"
	"github.com/tindahan/tindahan/internal/domain"
	"github.com/tindahan/tindahan/internal/domain/menu"
	"github.com/tindahan/tindahan/internal/domain/order"
	"github.com/tindahan/tindahan/internal/port/database"
)

// OrderService records and manages sales against menu items. Orders are
// addressed nested under their menu item; an order ID reached through the
// wrong item path resolves to not-found.
type OrderService struct {
	store  database.Store
	menu   *MenuService
	logger *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(store database.Store, menuSvc *MenuService, logger *slog.Logger) *OrderService {
	return &OrderService{store: store, menu: menuSvc, logger: logger}
}

// Create records a sale against the menu item at (full business name,
// slug). Only the item's owner records its sales.
func (s *OrderService) Create(ctx context.Context, caller *authz.Principal, fbn, slug string, req order.CreateRequest) (*order.Order, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.menu.resolve(ctx, fbn, slug)
	if err != nil {
		return nil, err
	}

	if err := authz.CanCreateOrder(caller, item.ProfileID).Err(); err != nil {
		return nil, err
	}

	o := &order.Order{
		ID:              uuid.New().String(),
		Quantity:        req.Quantity,
		OrderedOn:       time.Now(),
		AdditionalNotes: req.AdditionalNotes,
		MenuItemID:      item.ID,
	}

	if err := s.store.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order recorded",
		"order_id", o.ID,
		"menu_item_id", item.ID,
		"quantity", o.Quantity)

	return o, nil
}

// resolve finds the order addressed by (full business name, slug, id) and
// returns it alongside its menu item. An order that belongs to a different
// item than the path names resolves to not-found.
func (s *OrderService) resolve(ctx context.Context, fbn, slug, id string) (*order.Order, *menu.Item, error) {
	item, err := s.menu.resolve(ctx, fbn, slug)
	if err != nil {
		return nil, nil, err
	}

	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get order: %w", err)
	}

	if o.MenuItemID != item.ID {
		return nil, nil, fmt.Errorf("%w: order not found under menu item", domain.ErrNotFound)
	}

	return o, item, nil
}

// Get returns a single order. Visible only to the owner of its menu item
// or a superuser.
func (s *OrderService) Get(ctx context.Context, caller *authz.Principal, fbn, slug, id string) (*order.Order, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	o, item, err := s.resolve(ctx, fbn, slug, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CanAccessOrder(caller, item.ProfileID).Err(); err != nil {
		return nil, err
	}

	return o, nil
}

// Update amends an order's quantity or notes. The menu item reference is
// immutable.
func (s *OrderService) Update(ctx context.Context, caller *authz.Principal, fbn, slug, id string, req order.UpdateRequest) (*order.Order, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o, item, err := s.resolve(ctx, fbn, slug, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CanAccessOrder(caller, item.ProfileID).Err(); err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		o.Quantity = *req.Quantity
	}
	if req.AdditionalNotes != nil {
		o.AdditionalNotes = *req.AdditionalNotes
	}

	if err := s.store.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	return o, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, caller *authz.Principal, fbn, slug, id string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}

	o, item, err := s.resolve(ctx, fbn, slug, id)
	if err != nil {
		return err
	}

	if err := authz.CanAccessOrder(caller, item.ProfileID).Err(); err != nil {
		return err
	}

	if err := s.store.DeleteOrder(ctx, o.ID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.logger.Info("order deleted", "order_id", o.ID, "menu_item_id", item.ID)

	return nil
}

// ListByOwner returns every order across all menu items of the business at
// the given full business name, newest first. Visible only to that profile
// or a superuser.
func (s *OrderService) ListByOwner(ctx context.Context, caller *authz.Principal, fbn string) ([]order.Order, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	owner, err := s.store.GetProfileByFullBusinessName(ctx, fbn)
	if err != nil {
		return nil, fmt.Errorf("resolve business: %w", err)
	}

	if err := authz.CanListOwnOrders(caller, owner.ID).Err(); err != nil {
		return nil, err
	}

	return s.store.ListOrdersByOwner(ctx, owner.ID)
}
