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

// MenuService manages menu items. Items are addressed externally by the
// pair (full business name, slug); an item whose owner does not match the
// path's business is treated as absent, not forbidden.
type MenuService struct {
	store  database.Store
	logger *slog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(store database.Store, logger *slog.Logger) *MenuService {
	return &MenuService{store: store, logger: logger}
}

// ItemDetail is a menu item with one page of its orders attached.
type ItemDetail struct {
	menu.Item
	Orders      []order.Order `json:"item_orders"`
	TotalOrders int           `json:"total_orders"`
	Page        int           `json:"page"`
	PerPage     int           `json:"per_page"`
}

// Create adds a menu item owned by the caller. The slug is derived from
// the name; both name and slug are unique system-wide.
func (s *MenuService) Create(ctx context.Context, caller *authz.Principal, req menu.CreateRequest) (*menu.Item, error) {
	if err := authz.CanCreateMenuItem(caller).Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := &menu.Item{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		AddedOn:     time.Now(),
		ProfileID:   caller.ID,
	}
	item.Normalize()

	if err := s.store.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.logger.Info("menu item created",
		"menu_item_id", item.ID,
		"slug", item.URLParamName,
		"profile_id", item.ProfileID)

	return item, nil
}

// resolve finds the menu item addressed by (full business name, slug) and
// returns it with its owning profile ID. A slug that exists under a
// different business resolves to not-found.
func (s *MenuService) resolve(ctx context.Context, fbn, slug string) (*menu.Item, error) {
	owner, err := s.store.GetProfileByFullBusinessName(ctx, fbn)
	if err != nil {
		return nil, fmt.Errorf("resolve business: %w", err)
	}

	item, err := s.store.GetMenuItemBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve menu item: %w", err)
	}

	if item.ProfileID != owner.ID {
		return nil, fmt.Errorf("%w: menu item not found under business", domain.ErrNotFound)
	}

	return item, nil
}

// Get returns a menu item with one page of its orders, newest first.
// Visible only to the owning profile or a superuser.
func (s *MenuService) Get(ctx context.Context, caller *authz.Principal, fbn, slug string, f order.Filter) (*ItemDetail, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	item, err := s.resolve(ctx, fbn, slug)
	if err != nil {
		return nil, err
	}

	if err := authz.CanAccessMenuItem(caller, item.ProfileID).Err(); err != nil {
		return nil, err
	}

	f.Normalize()
	orders, total, err := s.store.ListOrdersByMenuItem(ctx, item.ID, f)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &ItemDetail{
		Item:        *item,
		Orders:      orders,
		TotalOrders: total,
		Page:        f.Page,
		PerPage:     f.PerPage,
	}, nil
}

// List returns every menu item in the system. Superuser only.
func (s *MenuService) List(ctx context.Context, caller *authz.Principal) ([]menu.Item, error) {
	if err := authz.CanListMenuItems(caller).Err(); err != nil {
		return nil, err
	}
	return s.store.ListMenuItems(ctx)
}

// Update applies a partial update to a menu item. The slug follows the
// name; ownership never changes.
func (s *MenuService) Update(ctx context.Context, caller *authz.Principal, fbn, slug string, req menu.UpdateRequest) (*menu.Item, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.resolve(ctx, fbn, slug)
	if err != nil {
		return nil, err
	}

	if err := authz.CanAccessMenuItem(caller, item.ProfileID).Err(); err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	item.Normalize()

	if err := s.store.UpdateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	return item, nil
}

// Delete removes a menu item. Its orders cascade.
func (s *MenuService) Delete(ctx context.Context, caller *authz.Principal, fbn, slug string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}

	item, err := s.resolve(ctx, fbn, slug)
	if err != nil {
		return err
	}

	if err := authz.CanAccessMenuItem(caller, item.ProfileID).Err(); err != nil {
		return err
	}

	if err := s.store.DeleteMenuItem(ctx, item.ID); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	s.logger.Info("menu item deleted",
		"menu_item_id", item.ID,
		"slug", item.URLParamName)

	return nil
}
