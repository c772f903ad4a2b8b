// Package database defines the database store port (interface).
package database

import (
	"context"
	"time"

	"github.com/tindahan/tindahan/internal/domain/menu"
	"github.com/tindahan/tindahan/internal/domain/order"
	"github.com/tindahan/tindahan/internal/domain/profile"
)

// Store is the port interface for database operations.
type Store interface {
	// Profiles
	CreateProfile(ctx context.Context, p *profile.Profile) error
	GetProfile(ctx context.Context, id string) (*profile.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*profile.Profile, error)
	GetProfileByFullBusinessName(ctx context.Context, fullBusinessName string) (*profile.Profile, error)
	ListProfiles(ctx context.Context) ([]profile.Profile, error)
	UpdateProfile(ctx context.Context, p *profile.Profile) error
	DeleteProfile(ctx context.Context, id string) error

	// Menu items
	CreateMenuItem(ctx context.Context, item *menu.Item) error
	GetMenuItemBySlug(ctx context.Context, slug string) (*menu.Item, error)
	ListMenuItems(ctx context.Context) ([]menu.Item, error)
	ListMenuItemsByProfile(ctx context.Context, profileID string) ([]menu.Item, error)
	UpdateMenuItem(ctx context.Context, item *menu.Item) error
	DeleteMenuItem(ctx context.Context, id string) error

	// Orders
	CreateOrder(ctx context.Context, o *order.Order) error
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	ListOrdersByMenuItem(ctx context.Context, menuItemID string, f order.Filter) ([]order.Order, int, error)
	ListOrdersByOwner(ctx context.Context, profileID string) ([]order.Order, error)
	UpdateOrder(ctx context.Context, o *order.Order) error
	DeleteOrder(ctx context.Context, id string) error

	// Refresh tokens
	CreateRefreshToken(ctx context.Context, rt *profile.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*profile.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID string, newRT *profile.RefreshToken) error
	DeleteRefreshToken(ctx context.Context, id string) error
	DeleteRefreshTokensByProfile(ctx context.Context, profileID string) error
	PurgeExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
