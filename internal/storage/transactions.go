package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finloom/cashflow-copilot/internal/model"
)

// SaveTransactions inserts transactions for a user, skipping duplicates by
// content hash. It returns the number of newly inserted rows.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			user_id, date, amount, merchant, category, hash
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		result, execErr := stmt.ExecContext(ctx,
			txn.UserID,
			txn.Date,
			txn.Amount,
			txn.Merchant,
			string(txn.Category),
			txn.Hash,
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert transaction for %q: %w", txn.Merchant, execErr)
		}

		affected, affErr := result.RowsAffected()
		if affErr != nil {
			return 0, fmt.Errorf("failed to count insert: %w", affErr)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return inserted, nil
}

// GetTransactions retrieves all transactions for a user, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, amount, merchant, category, hash
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var category string
		if err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Date,
			&txn.Amount,
			&txn.Merchant,
			&category,
			&txn.Hash,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Category = model.Category(category)
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// GetTransactionsByDateRange retrieves a user's transactions within [start, end].
func (s *SQLiteStorage) GetTransactionsByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, errors.New("start date must be before end date")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, amount, merchant, category, hash
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC, id DESC
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var category string
		if err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Date,
			&txn.Amount,
			&txn.Merchant,
			&category,
			&txn.Hash,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Category = model.Category(category)
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// GetCategorySummary returns a user's total spending per category.
func (s *SQLiteStorage) GetCategorySummary(ctx context.Context, userID int64) (map[model.Category]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount) as total
		FROM transactions
		WHERE user_id = ?
		GROUP BY category
		ORDER BY total DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[model.Category]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summary[model.Category(category)] = total
	}

	return summary, rows.Err()
}

// GetTransactionCount returns the number of transactions stored for a user.
func (s *SQLiteStorage) GetTransactionCount(ctx context.Context, userID int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateUserID(userID); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions WHERE user_id = ?
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction count: %w", err)
	}

	return count, nil
}
