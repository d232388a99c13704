package storage

import (
	"context"
	"database/sql"
	"errors"

	"food-delivery/orderstatus"
	"food-delivery/rate-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) GetOrderInfo(ctx context.Context, orderID int) (*domain.OrderInfo, error) {
	var order domain.OrderInfo
	var driverID sql.NullInt64
	var status string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, customer_id, restaurant_id, driver_id, status FROM orders WHERE id = $1", orderID).
		Scan(&order.ID, &order.CustomerID, &order.RestaurantID, &driverID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if driverID.Valid {
		id := int(driverID.Int64)
		order.DriverID = &id
	}
	order.Status = orderstatus.Status(status)
	return &order, nil
}

func (r *PostgresRepository) InsertRating(ctx context.Context, rating *domain.Rating) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO ratings (user_id, order_id, target_type, target_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, rating.UserID, rating.OrderID, string(rating.TargetType), rating.TargetID, rating.Rating, rating.Comment).
		Scan(&rating.ID, &rating.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicate
	}
	return err
}

func (r *PostgresRepository) HasRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM ratings
			WHERE user_id = $1 AND target_type = $2 AND order_id = $3
		)
	`, userID, string(kind), orderID).Scan(&exists)
	return exists, err
}

// Distribution counts ratings per star value for one target.
func (r *PostgresRepository) Distribution(ctx context.Context, kind domain.RatingType, targetID int) (map[int]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT rating, COUNT(*) AS count
		FROM ratings
		WHERE target_type = $1 AND target_id = $2
		GROUP BY rating
		ORDER BY rating
	`, string(kind), targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := make(map[int]int)
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		distribution[rating] = count
	}
	return distribution, rows.Err()
}
