package storage

import (
	"context"
	"database/sql"
	"fmt"

	"food-delivery/market-svc/internal/domain"
	"food-delivery/orderstatus"
	"food-delivery/wallet"

	"github.com/lib/pq"
)

const orderColumns = `
	SELECT o.id, o.customer_id, o.restaurant_id, o.driver_id, o.status, o.payment_method, o.payment_status,
		o.total_price, o.delivery_fee, o.commission, o.delivery_address, o.delivery_lat, o.delivery_lng,
		o.delivery_instructions, o.created_at, o.updated_at, o.accepted_at, o.preparing_at, o.ready_at,
		o.picked_up_at, o.delivered_at, o.cancelled_at,
		c.name, c.phone, r.name, COALESCE(d.name, ''), COALESCE(d.phone, '')
	FROM orders o
	JOIN users c ON c.id = o.customer_id
	JOIN restaurants r ON r.id = o.restaurant_id
	LEFT JOIN users d ON d.id = o.driver_id`

// timestampColumns names the column stamped when an order enters a status.
var timestampColumns = map[orderstatus.Status]string{
	orderstatus.Accepted:   "accepted_at",
	orderstatus.Preparing:  "preparing_at",
	orderstatus.Ready:      "ready_at",
	orderstatus.PickedUp:   "picked_up_at",
	orderstatus.Delivered:  "delivered_at",
	orderstatus.Cancelled:  "cancelled_at",
	orderstatus.Delivering: "",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o                                      domain.Order
		customer, restaurant, driver           domain.Party
		customerPhone, driverName, driverPhone string
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.DriverID, &o.Status, &o.PaymentMethod, &o.PaymentStatus,
		&o.TotalPrice, &o.DeliveryFee, &o.Commission, &o.DeliveryAddress, &o.DeliveryLat, &o.DeliveryLng,
		&o.DeliveryInstructions, &o.CreatedAt, &o.UpdatedAt, &o.AcceptedAt, &o.PreparingAt, &o.ReadyAt,
		&o.PickedUpAt, &o.DeliveredAt, &o.CancelledAt,
		&customer.Name, &customerPhone, &restaurant.Name, &driverName, &driverPhone)
	if err != nil {
		return nil, err
	}

	customer.ID, customer.Phone = o.CustomerID, customerPhone
	restaurant.ID = o.RestaurantID
	o.Customer, o.Restaurant = &customer, &restaurant
	if o.DriverID != nil {
		driver = domain.Party{ID: *o.DriverID, Name: driverName, Phone: driverPhone}
		o.Driver = &driver
	}
	o.Items = []domain.OrderItem{}
	return &o, nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balanceAfter float64
	if order.PaymentMethod == wallet.Wallet {
		err := tx.QueryRowContext(ctx, `
			UPDATE wallets SET balance = balance - $1, updated_at = NOW()
			WHERE user_id = $2 AND balance >= $1
			RETURNING balance`, order.TotalPrice, order.CustomerID).Scan(&balanceAfter)
		if err == sql.ErrNoRows {
			return domain.ErrInsufficientBalance
		}
		if err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, restaurant_id, status, payment_method, payment_status, total_price,
			delivery_fee, commission, delivery_address, delivery_lat, delivery_lng, delivery_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		order.CustomerID, order.RestaurantID, order.Status, order.PaymentMethod, order.PaymentStatus, order.TotalPrice,
		order.DeliveryFee, order.Commission, order.DeliveryAddress, order.DeliveryLat, order.DeliveryLng, order.DeliveryInstructions).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menu_id, item_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`, order.ID, item.MenuID, item.ItemName, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", item.MenuID, err)
		}
	}

	if order.PaymentMethod == wallet.Wallet {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wallet_transactions (user_id, order_id, kind, amount, balance_after)
			VALUES ($1, $2, 'DEBIT', $3, $4)`, order.CustomerID, order.ID, order.TotalPrice, balanceAfter); err != nil {
			return fmt.Errorf("record wallet debit: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, orderColumns+" WHERE o.id = $1", orderID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	return r.listOrders(ctx, orderColumns+" WHERE o.customer_id = $1 ORDER BY o.created_at DESC", customerID)
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID int, status orderstatus.Status) ([]domain.Order, error) {
	if status == "" {
		return r.listOrders(ctx, orderColumns+" WHERE o.restaurant_id = $1 ORDER BY o.created_at DESC", restaurantID)
	}
	return r.listOrders(ctx, orderColumns+" WHERE o.restaurant_id = $1 AND o.status = $2 ORDER BY o.created_at DESC", restaurantID, status)
}

// ListForDriver returns READY orders nobody has claimed plus the driver's own
// orders still on the road.
func (r *PostgresRepository) ListForDriver(ctx context.Context, driverID int) ([]domain.Order, error) {
	return r.listOrders(ctx, orderColumns+`
		WHERE (o.status = 'READY' AND o.driver_id IS NULL)
		   OR (o.driver_id = $1 AND o.status IN ('PICKED_UP', 'DELIVERING'))
		ORDER BY o.created_at ASC`, driverID)
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ptrs []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, ptrs); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(ptrs))
	for _, o := range ptrs {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *PostgresRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int]*domain.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, int64(o.ID))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, id, menu_id, item_name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.ID, &item.MenuID, &item.ItemName, &item.Quantity, &item.Price); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

// TransitionStatus moves an order from change.From to change.To only if its
// status is still change.From. Refunds credit the customer's wallet in the
// same transaction.
func (r *PostgresRepository) TransitionStatus(ctx context.Context, change domain.StatusChange) (*domain.Order, error) {
	column, ok := timestampColumns[change.To]
	if !ok {
		return nil, fmt.Errorf("%w: %q", orderstatus.ErrUnknownStatus, change.To)
	}

	set := "status = $1, updated_at = NOW()"
	if column != "" {
		set += ", " + column + " = NOW()"
	}
	if change.Refund {
		set += ", payment_status = '" + string(wallet.PaymentRefunded) + "'"
	}
	args := []any{change.To, change.OrderID, change.From}
	where := "id = $2 AND status = $3"
	if change.DriverID != nil {
		set += ", driver_id = $4"
		where += " AND driver_id IS NULL"
		args = append(args, *change.DriverID)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "UPDATE orders SET "+set+" WHERE "+where, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrStatusConflict
	}

	if change.Refund {
		if err := refund(ctx, tx, change.OrderID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, change.OrderID)
}

func refund(ctx context.Context, tx *sql.Tx, orderID int) error {
	var customerID int
	var amount float64
	if err := tx.QueryRowContext(ctx, "SELECT customer_id, total_price FROM orders WHERE id = $1", orderID).
		Scan(&customerID, &amount); err != nil {
		return fmt.Errorf("load refund amount: %w", err)
	}

	var balance float64
	if err := tx.QueryRowContext(ctx, `
		UPDATE wallets SET balance = balance + $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING balance`, amount, customerID).Scan(&balance); err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (user_id, order_id, kind, amount, balance_after)
		VALUES ($1, $2, 'REFUND', $3, $4)`, customerID, orderID, amount, balance)
	return err
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return qr, err
}
