package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tindahan/tindahan/internal/domain"
	"github.com/tindahan/tindahan/internal/domain/menu"
	"github.com/tindahan/tindahan/internal/domain/order"
	"github.com/tindahan/tindahan/internal/domain/profile"
)

// mockStore is an in-memory database.Store for service tests. It enforces
// the same uniqueness constraints and delete cascades as the Postgres
// schema.
type mockStore struct {
	mu            sync.Mutex
	profiles      map[string]profile.Profile
	menuItems     map[string]menu.Item
	orders        map[string]order.Order
	refreshTokens map[string]profile.RefreshToken
}

func newMockStore() *mockStore {
	return &mockStore{
		profiles:      make(map[string]profile.Profile),
		menuItems:     make(map[string]menu.Item),
		orders:        make(map[string]order.Order),
		refreshTokens: make(map[string]profile.RefreshToken),
	}
}

// --- Profiles ---

func (m *mockStore) CreateProfile(_ context.Context, p *profile.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.profiles {
		if existing.Email == p.Email || existing.FullBusinessName == p.FullBusinessName {
			return fmt.Errorf("create profile: %w", domain.ErrDuplicate)
		}
	}
	m.profiles[p.ID] = *p
	return nil
}

func (m *mockStore) GetProfile(_ context.Context, id string) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, fmt.Errorf("get profile: %w", domain.ErrNotFound)
	}
	return &p, nil
}

func (m *mockStore) GetProfileByEmail(_ context.Context, email string) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.Email == email {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get profile by email: %w", domain.ErrNotFound)
}

func (m *mockStore) GetProfileByFullBusinessName(_ context.Context, fbn string) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.FullBusinessName == fbn {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get profile by business name: %w", domain.ErrNotFound)
}

func (m *mockStore) ListProfiles(_ context.Context) ([]profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []profile.Profile
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockStore) UpdateProfile(_ context.Context, p *profile.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.ID]; !ok {
		return fmt.Errorf("update profile: %w", domain.ErrNotFound)
	}
	for id, existing := range m.profiles {
		if id == p.ID {
			continue
		}
		if existing.Email == p.Email || existing.FullBusinessName == p.FullBusinessName {
			return fmt.Errorf("update profile: %w", domain.ErrDuplicate)
		}
	}
	m.profiles[p.ID] = *p
	return nil
}

func (m *mockStore) DeleteProfile(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[id]; !ok {
		return fmt.Errorf("delete profile: %w", domain.ErrNotFound)
	}
	delete(m.profiles, id)
	// Cascade: menu items and their orders.
	for itemID, item := range m.menuItems {
		if item.ProfileID != id {
			continue
		}
		delete(m.menuItems, itemID)
		for orderID, o := range m.orders {
			if o.MenuItemID == itemID {
				delete(m.orders, orderID)
			}
		}
	}
	for tokenID, rt := range m.refreshTokens {
		if rt.ProfileID == id {
			delete(m.refreshTokens, tokenID)
		}
	}
	return nil
}

// --- Menu items ---

func (m *mockStore) CreateMenuItem(_ context.Context, item *menu.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.menuItems {
		if existing.Name == item.Name || existing.URLParamName == item.URLParamName {
			return fmt.Errorf("create menu item: %w", domain.ErrDuplicate)
		}
	}
	m.menuItems[item.ID] = *item
	return nil
}

func (m *mockStore) GetMenuItemBySlug(_ context.Context, slug string) (*menu.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.menuItems {
		if item.URLParamName == slug {
			cp := item
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get menu item by slug: %w", domain.ErrNotFound)
}

func (m *mockStore) ListMenuItems(_ context.Context) ([]menu.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []menu.Item
	for _, item := range m.menuItems {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedOn.After(out[j].AddedOn) })
	return out, nil
}

func (m *mockStore) ListMenuItemsByProfile(_ context.Context, profileID string) ([]menu.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []menu.Item
	for _, item := range m.menuItems {
		if item.ProfileID == profileID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedOn.After(out[j].AddedOn) })
	return out, nil
}

func (m *mockStore) UpdateMenuItem(_ context.Context, item *menu.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menuItems[item.ID]; !ok {
		return fmt.Errorf("update menu item: %w", domain.ErrNotFound)
	}
	for id, existing := range m.menuItems {
		if id == item.ID {
			continue
		}
		if existing.Name == item.Name || existing.URLParamName == item.URLParamName {
			return fmt.Errorf("update menu item: %w", domain.ErrDuplicate)
		}
	}
	m.menuItems[item.ID] = *item
	return nil
}

func (m *mockStore) DeleteMenuItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menuItems[id]; !ok {
		return fmt.Errorf("delete menu item: %w", domain.ErrNotFound)
	}
	delete(m.menuItems, id)
	for orderID, o := range m.orders {
		if o.MenuItemID == id {
			delete(m.orders, orderID)
		}
	}
	return nil
}

// --- Orders ---

func (m *mockStore) CreateOrder(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = *o
	return nil
}

func (m *mockStore) GetOrder(_ context.Context, id string) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("get order: %w", domain.ErrNotFound)
	}
	return &o, nil
}

func (m *mockStore) ListOrdersByMenuItem(_ context.Context, menuItemID string, f order.Filter) ([]order.Order, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []order.Order
	for _, o := range m.orders {
		if o.MenuItemID != menuItemID {
			continue
		}
		if f.Date != nil {
			y1, m1, d1 := o.OrderedOn.UTC().Date()
			y2, m2, d2 := f.Date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderedOn.After(all[j].OrderedOn) })

	total := len(all)
	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.PerPage
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *mockStore) ListOrdersByOwner(_ context.Context, profileID string) ([]order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []order.Order
	for _, o := range m.orders {
		item, ok := m.menuItems[o.MenuItemID]
		if ok && item.ProfileID == profileID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderedOn.After(out[j].OrderedOn) })
	return out, nil
}

func (m *mockStore) UpdateOrder(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; !ok {
		return fmt.Errorf("update order: %w", domain.ErrNotFound)
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *mockStore) DeleteOrder(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return fmt.Errorf("delete order: %w", domain.ErrNotFound)
	}
	delete(m.orders, id)
	return nil
}

// --- Refresh tokens ---

func (m *mockStore) CreateRefreshToken(_ context.Context, rt *profile.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt.CreatedAt = time.Now()
	m.refreshTokens[rt.ID] = *rt
	return nil
}

func (m *mockStore) GetRefreshTokenByHash(_ context.Context, tokenHash string) (*profile.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.refreshTokens {
		if rt.TokenHash == tokenHash {
			cp := rt
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get refresh token: %w", domain.ErrNotFound)
}

func (m *mockStore) RotateRefreshToken(_ context.Context, oldID string, newRT *profile.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.refreshTokens[oldID]; !ok {
		return fmt.Errorf("rotate refresh token: %w", domain.ErrNotFound)
	}
	delete(m.refreshTokens, oldID)
	newRT.CreatedAt = time.Now()
	m.refreshTokens[newRT.ID] = *newRT
	return nil
}

func (m *mockStore) DeleteRefreshToken(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refreshTokens, id)
	return nil
}

func (m *mockStore) DeleteRefreshTokensByProfile(_ context.Context, profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rt := range m.refreshTokens {
		if rt.ProfileID == profileID {
			delete(m.refreshTokens, id)
		}
	}
	return nil
}

func (m *mockStore) PurgeExpiredRefreshTokens(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, rt := range m.refreshTokens {
		if rt.ExpiresAt.Before(now) {
			delete(m.refreshTokens, id)
			n++
		}
	}
	return n, nil
}
