package storage

import (
	"context"
	"database/sql"
	"errors"

	"food-delivery/market-svc/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrEmailTaken
	}
	return err
}

// userColumns resolves the restaurant binding from ownership, never from
// anything the user supplied.
const userColumns = `
	u.id, u.name, u.email, u.phone, u.password_hash, u.role,
	(SELECT r.id FROM restaurants r WHERE r.owner_id = u.id ORDER BY r.id LIMIT 1),
	u.created_at`

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, "u.email = $1", email)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, "u.id = $1", userID)
}

func (r *PostgresRepository) getUser(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	var user domain.User
	var restaurantID sql.NullInt64
	err := r.DB.QueryRowContext(ctx, "SELECT"+userColumns+" FROM users u WHERE "+where, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &user.Role, &restaurantID, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if restaurantID.Valid && user.Role == "restaurant" {
		id := int(restaurantID.Int64)
		user.RestaurantID = &id
	}
	return &user, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, restaurantID int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, "SELECT id, name, is_open FROM restaurants WHERE id = $1", restaurantID).
		Scan(&rest.ID, &rest.Name, &rest.IsOpen)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) MenuPrices(ctx context.Context, restaurantID int, menuIDs []int) (map[int]domain.MenuPrice, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, name, price, is_available
		FROM menu_items
		WHERE restaurant_id = $1 AND id = ANY($2)`, restaurantID, pq.Array(menuIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int]domain.MenuPrice, len(menuIDs))
	for rows.Next() {
		var p domain.MenuPrice
		if err := rows.Scan(&p.MenuID, &p.RestaurantID, &p.Name, &p.Price, &p.Available); err != nil {
			return nil, err
		}
		prices[p.MenuID] = p
	}
	return prices, rows.Err()
}
