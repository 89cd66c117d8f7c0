package storage

import (
	"context"
	"fmt"

	"github.com/finloom/cashflow-copilot/internal/model"
)

// AddHolding records a new portfolio holding for a user.
func (s *SQLiteStorage) AddHolding(ctx context.Context, holding *model.Holding) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateHolding(holding); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO portfolio (user_id, ticker, quantity, purchase_price, purchase_date)
		VALUES (?, ?, ?, ?, ?)
	`, holding.UserID, holding.Ticker, holding.Quantity, holding.PurchasePrice, holding.PurchaseDate)
	if err != nil {
		return 0, fmt.Errorf("failed to insert holding: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get holding ID: %w", err)
	}
	return id, nil
}

// GetHoldings retrieves a user's portfolio holdings in insertion order.
func (s *SQLiteStorage) GetHoldings(ctx context.Context, userID int64) ([]model.Holding, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, ticker, quantity, purchase_price, purchase_date
		FROM portfolio
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var holdings []model.Holding
	for rows.Next() {
		var h model.Holding
		if err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.Ticker,
			&h.Quantity,
			&h.PurchasePrice,
			&h.PurchaseDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	return holdings, rows.Err()
}
