// Package storage provides the data persistence layer for cashflow.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finloom/cashflow-copilot/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidID          = errors.New("id must be positive")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidHolding     = errors.New("invalid holding")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateUserID ensures a user ID is a real row reference.
func validateUserID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: userID", ErrInvalidID)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.UserID <= 0 {
		return fmt.Errorf("%w: missing user ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Merchant == "" {
		return fmt.Errorf("%w: missing merchant", ErrInvalidTransaction)
	}
	if txn.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidTransaction)
	}
	if !model.ValidCategory(string(txn.Category)) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTransaction, txn.Category)
	}
	return nil
}

// validateHolding validates a portfolio holding.
func validateHolding(h *model.Holding) error {
	if h == nil {
		return fmt.Errorf("%w: holding", ErrNilParameter)
	}
	if h.UserID <= 0 {
		return fmt.Errorf("%w: missing user ID", ErrInvalidHolding)
	}
	if strings.TrimSpace(h.Ticker) == "" {
		return fmt.Errorf("%w: missing ticker", ErrInvalidHolding)
	}
	if h.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidHolding)
	}
	if h.PurchasePrice <= 0 {
		return fmt.Errorf("%w: purchase price must be positive", ErrInvalidHolding)
	}
	return nil
}
