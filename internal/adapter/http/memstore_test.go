package http

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
	"github.com/tindahan/tindahan/internal/port/database"
)

// memStore is a minimal in-memory database.Store for end-to-end handler
// tests. Uniqueness and cascades mirror the Postgres schema.
type memStore struct {
	mu       sync.Mutex
	profiles map[string]profile.Profile
	items    map[string]menu.Item
	orders   map[string]order.Order
	tokens   map[string]profile.RefreshToken
}

var _ database.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		profiles: make(map[string]profile.Profile),
		items:    make(map[string]menu.Item),
		orders:   make(map[string]order.Order),
		tokens:   make(map[string]profile.RefreshToken),
	}
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
}

func (s *memStore) CreateProfile(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.profiles {
		if e.Email == p.Email || e.FullBusinessName == p.FullBusinessName {
			return fmt.Errorf("create profile: %w", domain.ErrDuplicate)
		}
	}
	s.profiles[p.ID] = *p
	return nil
}

func (s *memStore) GetProfile(_ context.Context, id string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, notFound("get profile")
	}
	return &p, nil
}

func (s *memStore) GetProfileByEmail(_ context.Context, email string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Email == email {
			cp := p
			return &cp, nil
		}
	}
	return nil, notFound("get profile by email")
}

func (s *memStore) GetProfileByFullBusinessName(_ context.Context, fbn string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.FullBusinessName == fbn {
			cp := p
			return &cp, nil
		}
	}
	return nil, notFound("get profile by business name")
}

func (s *memStore) ListProfiles(_ context.Context) ([]profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []profile.Profile
	for _, p := range s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (s *memStore) UpdateProfile(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; !ok {
		return notFound("update profile")
	}
	for id, e := range s.profiles {
		if id != p.ID && (e.Email == p.Email || e.FullBusinessName == p.FullBusinessName) {
			return fmt.Errorf("update profile: %w", domain.ErrDuplicate)
		}
	}
	s.profiles[p.ID] = *p
	return nil
}

func (s *memStore) DeleteProfile(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return notFound("delete profile")
	}
	delete(s.profiles, id)
	for itemID, item := range s.items {
		if item.ProfileID != id {
			continue
		}
		delete(s.items, itemID)
		for oid, o := range s.orders {
			if o.MenuItemID == itemID {
				delete(s.orders, oid)
			}
		}
	}
	for tid, rt := range s.tokens {
		if rt.ProfileID == id {
			delete(s.tokens, tid)
		}
	}
	return nil
}

func (s *memStore) CreateMenuItem(_ context.Context, item *menu.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.Name == item.Name || e.URLParamName == item.URLParamName {
			return fmt.Errorf("create menu item: %w", domain.ErrDuplicate)
		}
	}
	s.items[item.ID] = *item
	return nil
}

func (s *memStore) GetMenuItemBySlug(_ context.Context, slug string) (*menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.URLParamName == slug {
			cp := item
			return &cp, nil
		}
	}
	return nil, notFound("get menu item by slug")
}

func (s *memStore) ListMenuItems(_ context.Context) ([]menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []menu.Item
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *memStore) ListMenuItemsByProfile(_ context.Context, profileID string) ([]menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []menu.Item
	for _, item := range s.items {
		if item.ProfileID == profileID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *memStore) UpdateMenuItem(_ context.Context, item *menu.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return notFound("update menu item")
	}
	for id, e := range s.items {
		if id != item.ID && (e.Name == item.Name || e.URLParamName == item.URLParamName) {
			return fmt.Errorf("update menu item: %w", domain.ErrDuplicate)
		}
	}
	s.items[item.ID] = *item
	return nil
}

func (s *memStore) DeleteMenuItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return notFound("delete menu item")
	}
	delete(s.items, id)
	for oid, o := range s.orders {
		if o.MenuItemID == id {
			delete(s.orders, oid)
		}
	}
	return nil
}

func (s *memStore) CreateOrder(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = *o
	return nil
}

func (s *memStore) GetOrder(_ context.Context, id string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, notFound("get order")
	}
	return &o, nil
}

func (s *memStore) ListOrdersByMenuItem(_ context.Context, menuItemID string, f order.Filter) ([]order.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []order.Order
	for _, o := range s.orders {
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

func (s *memStore) ListOrdersByOwner(_ context.Context, profileID string) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []order.Order
	for _, o := range s.orders {
		if item, ok := s.items[o.MenuItemID]; ok && item.ProfileID == profileID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderedOn.After(out[j].OrderedOn) })
	return out, nil
}

func (s *memStore) UpdateOrder(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return notFound("update order")
	}
	s.orders[o.ID] = *o
	return nil
}

func (s *memStore) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return notFound("delete order")
	}
	delete(s.orders, id)
	return nil
}

func (s *memStore) CreateRefreshToken(_ context.Context, rt *profile.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[rt.ID] = *rt
	return nil
}

func (s *memStore) GetRefreshTokenByHash(_ context.Context, tokenHash string) (*profile.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rt := range s.tokens {
		if rt.TokenHash == tokenHash {
			cp := rt
			return &cp, nil
		}
	}
	return nil, notFound("get refresh token")
}

func (s *memStore) RotateRefreshToken(_ context.Context, oldID string, newRT *profile.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[oldID]; !ok {
		return notFound("rotate refresh token")
	}
	delete(s.tokens, oldID)
	s.tokens[newRT.ID] = *newRT
	return nil
}

func (s *memStore) DeleteRefreshToken(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, id)
	return nil
}

func (s *memStore) DeleteRefreshTokensByProfile(_ context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rt := range s.tokens {
		if rt.ProfileID == profileID {
			delete(s.tokens, id)
		}
	}
	return nil
}

func (s *memStore) PurgeExpiredRefreshTokens(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, rt := range s.tokens {
		if rt.ExpiresAt.Before(now) {
			delete(s.tokens, id)
			n++
		}
	}
	return n, nil
}
