package storage

import (
	"context"
	"database/sql"
	"errors"

	"food-delivery/menu-svc/internal/domain"
)

const menuItemColumns = "id, restaurant_id, name, description, category, price, image_url, is_available, created_at"

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Category,
		&item.Price, &item.ImageURL, &item.IsAvailable, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO menu_items (restaurant_id, name, description, category, price, image_url, is_available) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at",
		item.RestaurantID, item.Name, item.Description, item.Category, item.Price, item.ImageURL, item.IsAvailable,
	).Scan(&item.ID, &item.CreatedAt)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error) {
	query := "SELECT " + menuItemColumns + " FROM menu_items WHERE restaurant_id = $1"
	if availableOnly {
		query += " AND is_available"
	}
	query += " ORDER BY category, name"

	rows, err := r.DB.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE id = $1 AND restaurant_id = $2", itemID, restaurantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return item, err
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE menu_items SET name = $1, description = $2, category = $3, price = $4, image_url = $5, is_available = $6 WHERE id = $7 AND restaurant_id = $8",
		item.Name, item.Description, item.Category, item.Price, item.ImageURL, item.IsAvailable, item.ID, item.RestaurantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, restaurantID, itemID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2", itemID, restaurantID)
	if isForeignKeyViolation(err) {
		return 0, domain.ErrInUse
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SetMenuItemAvailability(ctx context.Context, restaurantID, itemID int, available bool) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx,
		"UPDATE menu_items SET is_available = $1 WHERE id = $2 AND restaurant_id = $3 RETURNING "+menuItemColumns,
		available, itemID, restaurantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return item, err
}
