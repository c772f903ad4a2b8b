package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tindahan/tindahan/internal/domain"
	"github.com/tindahan/tindahan/internal/domain/order"
)

const orderColumns = `id, quantity, ordered_on, additional_notes, menu_item_id`

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO item_orders (id, quantity, ordered_on, additional_notes, menu_item_id)
		VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Quantity, o.OrderedOn, o.AdditionalNotes, o.MenuItemID,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM item_orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err != nil {
		return nil, notFoundWrap(err, "get order")
	}
	return o, nil
}

// ListOrdersByMenuItem returns one page of a menu item's orders, newest
// first, plus the total count before paging. The optional date filter
// matches the UTC calendar date the order was placed on.
func (s *Store) ListOrdersByMenuItem(ctx context.Context, menuItemID string, f order.Filter) ([]order.Order, int, error) {
	where := `WHERE menu_item_id = $1`
	args := []any{menuItemID}
	if f.Date != nil {
		where += ` AND (ordered_on AT TIME ZONE 'UTC')::date = $2`
		args = append(args, f.Date.Format("2006-01-02"))
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM item_orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM item_orders ` + where +
		fmt.Sprintf(` ORDER BY ordered_on DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.PerPage, f.Offset())

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders by menu item: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListOrdersByOwner returns every order against any menu item owned by the
// given profile, newest first.
func (s *Store) ListOrdersByOwner(ctx context.Context, profileID string) ([]order.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT o.id, o.quantity, o.ordered_on, o.additional_notes, o.menu_item_id
		FROM item_orders o
		JOIN menu_items m ON m.id = o.menu_item_id
		WHERE m.profile_id = $1
		ORDER BY o.ordered_on DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list orders by owner: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (s *Store) UpdateOrder(ctx context.Context, o *order.Order) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE item_orders SET quantity = $2, additional_notes = $3
		WHERE id = $1`,
		o.ID, o.Quantity, o.AdditionalNotes,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order %s: %w", o.ID, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM item_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete order %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanOrder(row scannable) (*order.Order, error) {
	var o order.Order
	err := row.Scan(&o.ID, &o.Quantity, &o.OrderedOn, &o.AdditionalNotes, &o.MenuItemID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]order.Order, error) {
	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
