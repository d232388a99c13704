package storage

import (
	"context"
	"fmt"

	"food-delivery/market-svc/internal/domain"
)

// GetWallet returns the user's wallet, opening an empty one on first use.
func (r *PostgresRepository) GetWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID); err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	var w domain.Wallet
	err := r.DB.QueryRowContext(ctx, "SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1", userID).
		Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *PostgresRepository) TopUp(ctx context.Context, userID int, amount float64) (*domain.Wallet, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var w domain.Wallet
	err = tx.QueryRowContext(ctx, `
		INSERT INTO wallets (user_id, balance) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING user_id, balance, updated_at`, userID, amount).
		Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("credit wallet: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (user_id, kind, amount, balance_after)
		VALUES ($1, 'TOPUP', $2, $3)`, userID, amount, w.Balance); err != nil {
		return nil, fmt.Errorf("record top-up: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID int) ([]domain.WalletTransaction, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, order_id, kind, amount, balance_after, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 100`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []domain.WalletTransaction{}
	for rows.Next() {
		var t domain.WalletTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.OrderID, &t.Kind, &t.Amount, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
