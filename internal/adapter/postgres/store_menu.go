package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tindahan/tindahan/internal/domain"
	"github.com/tindahan/tindahan/internal/domain/menu"
)

// Price columns are cast to text so they round-trip through the cents
// representation without float drift.
const menuItemColumns = `id, name, url_param_name, description, price::text, added_on, profile_id`

func (s *Store) CreateMenuItem(ctx context.Context, item *menu.Item) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO menu_items (id, name, url_param_name, description, price, added_on, profile_id)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)`,
		item.ID, item.Name, item.URLParamName, item.Description, item.Price.String(), item.AddedOn, item.ProfileID,
	)
	if err != nil {
		return duplicateWrap(err, "create menu item")
	}
	return nil
}

func (s *Store) GetMenuItemBySlug(ctx context.Context, slug string) (*menu.Item, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE url_param_name = $1`, slug)

	item, err := scanMenuItem(row)
	if err != nil {
		return nil, notFoundWrap(err, "get menu item by slug")
	}
	return item, nil
}

func (s *Store) ListMenuItems(ctx context.Context) ([]menu.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items ORDER BY added_on DESC`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	return collectMenuItems(rows)
}

func (s *Store) ListMenuItemsByProfile(ctx context.Context, profileID string) ([]menu.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE profile_id = $1 ORDER BY added_on DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list menu items by profile: %w", err)
	}
	defer rows.Close()

	return collectMenuItems(rows)
}

func (s *Store) UpdateMenuItem(ctx context.Context, item *menu.Item) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE menu_items SET name = $2, url_param_name = $3, description = $4, price = $5::numeric
		WHERE id = $1`,
		item.ID, item.Name, item.URLParamName, item.Description, item.Price.String(),
	)
	if err != nil {
		return duplicateWrap(err, "update menu item")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update menu item %s: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete menu item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanMenuItem(row scannable) (*menu.Item, error) {
	var item menu.Item
	var priceText string
	err := row.Scan(&item.ID, &item.Name, &item.URLParamName, &item.Description,
		&priceText, &item.AddedOn, &item.ProfileID)
	if err != nil {
		return nil, err
	}
	price, err := menu.ParsePrice(priceText)
	if err != nil {
		return nil, fmt.Errorf("parse stored price: %w", err)
	}
	item.Price = price
	return &item, nil
}

func collectMenuItems(rows pgx.Rows) ([]menu.Item, error) {
	var items []menu.Item
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
