package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/model"
)

// AssessmentRecord is a stored risk assessment. The table is append-only so
// past assessments remain available as history.
type AssessmentRecord struct {
	AssessedAt    time.Time
	Level         model.RiskLevel
	Reason        string
	ID            int64
	UserID        int64
	SavingsBuffer float64
	ExpenseRatio  float64
}

// SaveAssessment appends a risk assessment for a user.
func (s *SQLiteStorage) SaveAssessment(ctx context.Context, userID int64, assessment model.Assessment) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateUserID(userID); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO risk_assessments (user_id, level, reason, savings_buffer, expense_ratio)
		VALUES (?, ?, ?, ?, ?)
	`, userID, string(assessment.Level), assessment.Reason(), assessment.SavingsBuffer, assessment.ExpenseRatio)
	if err != nil {
		return 0, fmt.Errorf("failed to insert assessment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get assessment ID: %w", err)
	}
	return id, nil
}

// GetLatestAssessment retrieves a user's most recent risk assessment.
func (s *SQLiteStorage) GetLatestAssessment(ctx context.Context, userID int64) (*AssessmentRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	var rec AssessmentRecord
	var level string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, level, reason, savings_buffer, expense_ratio, assessed_at
		FROM risk_assessments
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&level,
		&rec.Reason,
		&rec.SavingsBuffer,
		&rec.ExpenseRatio,
		&rec.AssessedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	rec.Level = model.RiskLevel(level)
	return &rec, nil
}

// GetAssessmentHistory retrieves a user's risk assessments, newest first.
func (s *SQLiteStorage) GetAssessmentHistory(ctx context.Context, userID int64) ([]AssessmentRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, level, reason, savings_buffer, expense_ratio, assessed_at
		FROM risk_assessments
		WHERE user_id = ?
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []AssessmentRecord
	for rows.Next() {
		var rec AssessmentRecord
		var level string
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&level,
			&rec.Reason,
			&rec.SavingsBuffer,
			&rec.ExpenseRatio,
			&rec.AssessedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		rec.Level = model.RiskLevel(level)
		records = append(records, rec)
	}

	return records, rows.Err()
}
