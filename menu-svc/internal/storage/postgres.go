package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"food-delivery/menu-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const restaurantColumns = "id, owner_id, name, address, description, image_url, is_open, avg_rating, rating_count, created_at"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	var ownerID sql.NullInt64
	err := row.Scan(&rest.ID, &ownerID, &rest.Name, &rest.Address, &rest.Description, &rest.ImageURL,
		&rest.IsOpen, &rest.AvgRating, &rest.RatingCount, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	if ownerID.Valid {
		id := int(ownerID.Int64)
		rest.OwnerID = &id
	}
	return &rest, nil
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO restaurants (owner_id, name, address, description, image_url, is_open) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at",
		rest.OwnerID, rest.Name, rest.Address, rest.Description, rest.ImageURL, rest.IsOpen,
	).Scan(&rest.ID, &rest.CreatedAt)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	query := "SELECT " + restaurantColumns + " FROM restaurants"
	var conditions []string
	var args []interface{}
	if filter.IsOpen != nil {
		args = append(args, *filter.IsOpen)
		conditions = append(conditions, fmt.Sprintf("is_open = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY avg_rating DESC, name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.DB.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rest, err
}

func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE restaurants SET name = $1, address = $2, description = $3, image_url = $4, is_open = $5 WHERE id = $6",
		rest.Name, rest.Address, rest.Description, rest.ImageURL, rest.IsOpen, rest.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id = $1", id)
	if isForeignKeyViolation(err) {
		return 0, domain.ErrInUse
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SetRestaurantOpen(ctx context.Context, id int, isOpen bool) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.DB.QueryRowContext(ctx,
		"UPDATE restaurants SET is_open = $1 WHERE id = $2 RETURNING "+restaurantColumns, isOpen, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rest, err
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isForeignKeyViolation reports a write that broke a reference, such as an
// insert for a missing restaurant or a delete of a row orders still point at.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
