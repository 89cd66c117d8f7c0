package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/model"
)

// CreateUser registers a new user. Usernames are unique; a second registration
// under the same name returns common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateUser(ctx context.Context, username string, monthlyIncome float64) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}
	if monthlyIncome < 0 {
		return nil, fmt.Errorf("monthly income cannot be negative")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, monthly_income)
		VALUES (?, ?)
	`, username, monthlyIncome)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", username, common.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by row ID.
func (s *SQLiteStorage) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(id); err != nil {
		return nil, err
	}
	return s.getUser(ctx, "id = ?", id)
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}
	return s.getUser(ctx, "username = ?", username)
}

func (s *SQLiteStorage) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var user model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, monthly_income, created_at
		FROM users
		WHERE `+where, arg).Scan(
		&user.ID,
		&user.Username,
		&user.MonthlyIncome,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateMonthlyIncome sets a user's monthly income.
func (s *SQLiteStorage) UpdateMonthlyIncome(ctx context.Context, userID int64, monthlyIncome float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if monthlyIncome < 0 {
		return fmt.Errorf("monthly income cannot be negative")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET monthly_income = ? WHERE id = ?
	`, monthlyIncome, userID)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
