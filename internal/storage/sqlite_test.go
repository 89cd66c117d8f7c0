package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create a test user.
func createTestUser(t *testing.T, store *SQLiteStorage) *model.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), "alice", 5000)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// Helper function to create test transactions.
func createTestTransactions(userID int64, count int) []model.Transaction {
	txns := make([]model.Transaction, count)
	baseTime := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		txns[i] = model.Transaction{
			UserID:   userID,
			Date:     baseTime.Add(time.Duration(i) * 24 * time.Hour),
			Merchant: fmt.Sprintf("Merchant #%d", i+1),
			Amount:   float64(i+1) * 10.50,
			Category: model.CategoryFood,
		}
		txns[i].Hash = txns[i].GenerateHash()
	}
	return txns
}

func TestCreateUser(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "alice", 5000)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID <= 0 {
		t.Errorf("Expected positive user ID, got %d", user.ID)
	}
	if user.Username != "alice" {
		t.Errorf("Expected username alice, got %s", user.Username)
	}
	if user.MonthlyIncome != 5000 {
		t.Errorf("Expected income 5000, got %f", user.MonthlyIncome)
	}

	// Duplicate username is rejected.
	_, err = store.CreateUser(ctx, "alice", 6000)
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}

	// Lookup by name round-trips.
	found, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("Expected ID %d, got %d", user.ID, found.ID)
	}

	_, err = store.GetUserByUsername(ctx, "nobody")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMonthlyIncome(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	user := createTestUser(t, store)

	if err := store.UpdateMonthlyIncome(ctx, user.ID, 7500); err != nil {
		t.Fatalf("UpdateMonthlyIncome failed: %v", err)
	}

	updated, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if updated.MonthlyIncome != 7500 {
		t.Errorf("Expected income 7500, got %f", updated.MonthlyIncome)
	}

	if err := store.UpdateMonthlyIncome(ctx, 9999, 100); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing user, got %v", err)
	}
}

func TestSaveTransactions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	user := createTestUser(t, store)

	txns := createTestTransactions(user.ID, 3)

	inserted, err := store.SaveTransactions(ctx, txns)
	if err != nil {
		t.Fatalf("SaveTransactions failed: %v", err)
	}
	if inserted != 3 {
		t.Errorf("Expected 3 inserted, got %d", inserted)
	}

	// Re-saving the same batch inserts nothing.
	inserted, err = store.SaveTransactions(ctx, txns)
	if err != nil {
		t.Fatalf("SaveTransactions failed on duplicate batch: %v", err)
	}
	if inserted != 0 {
		t.Errorf("Expected 0 inserted for duplicates, got %d", inserted)
	}

	got, err := store.GetTransactions(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(got))
	}

	// Newest first.
	if !got[0].Date.After(got[2].Date) {
		t.Errorf("Expected descending date order, got %v then %v", got[0].Date, got[2].Date)
	}
}

func TestSaveTransactionsValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name string
		txns []model.Transaction
	}{
		{name: "nil slice", txns: nil},
		{name: "empty slice", txns: []model.Transaction{}},
		{
			name: "missing user",
			txns: []model.Transaction{{
				Date:     time.Now(),
				Merchant: "Cafe",
				Amount:   10,
				Category: model.CategoryFood,
			}},
		},
		{
			name: "unknown category",
			txns: []model.Transaction{{
				UserID:   1,
				Date:     time.Now(),
				Merchant: "Cafe",
				Amount:   10,
				Category: "Bogus",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveTransactions(ctx, tt.txns); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestGetCategorySummary(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	user := createTestUser(t, store)

	txns := []model.Transaction{
		{UserID: user.ID, Date: time.Now(), Merchant: "Whole Foods", Amount: 100, Category: model.CategoryFood},
		{UserID: user.ID, Date: time.Now(), Merchant: "Trader Joes", Amount: 50, Category: model.CategoryFood},
		{UserID: user.ID, Date: time.Now(), Merchant: "Netflix", Amount: 15.99, Category: model.CategoryEntertainment},
	}
	for i := range txns {
		txns[i].Hash = txns[i].GenerateHash()
	}

	if _, err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("SaveTransactions failed: %v", err)
	}

	summary, err := store.GetCategorySummary(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetCategorySummary failed: %v", err)
	}
	if summary[model.CategoryFood] != 150 {
		t.Errorf("Expected Food total 150, got %f", summary[model.CategoryFood])
	}
	if summary[model.CategoryEntertainment] != 15.99 {
		t.Errorf("Expected Entertainment total 15.99, got %f", summary[model.CategoryEntertainment])
	}

	count, err := store.GetTransactionCount(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetTransactionCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected count 3, got %d", count)
	}
}

func TestGetTransactionsByDateRange(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	user := createTestUser(t, store)

	txns := createTestTransactions(user.ID, 5)
	if _, err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("SaveTransactions failed: %v", err)
	}

	start := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	got, err := store.GetTransactionsByDateRange(ctx, user.ID, start, end)
	if err != nil {
		t.Fatalf("GetTransactionsByDateRange failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 transactions in range, got %d", len(got))
	}

	if _, err := store.GetTransactionsByDateRange(ctx, user.ID, end, start); err == nil {
		t.Error("Expected error for inverted range")
	}
}

func TestPortfolio(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	user := createTestUser(t, store)

	holding := &model.Holding{
		UserID:        user.ID,
		Ticker:        "AAPL",
		Quantity:      10,
		PurchasePrice: 150,
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	id, err := store.AddHolding(ctx, holding)
	if err != nil {
		t.Fatalf("AddHolding failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive holding ID, got %d", id)
	}

	holdings, err := store.GetHoldings(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetHoldings failed: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("Expected 1 holding, got %d", len(holdings))
	}
	if holdings[0].Ticker != "AAPL" || holdings[0].Quantity != 10 {
		t.Errorf("Holding did not round-trip: %+v", holdings[0])
	}

	// Invalid holdings are rejected.
	if _, err := store.AddHolding(ctx, &model.Holding{UserID: user.ID, Ticker: "AAPL"}); err == nil {
		t.Error("Expected error for zero quantity")
	}
}

func TestAssessments(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	user := createTestUser(t, store)

	_, err := store.GetLatestAssessment(ctx, user.ID)
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound with no assessments, got %v", err)
	}

	first := model.Assessment{
		Level:         model.RiskMedium,
		Reasons:       []string{"High expense ratio"},
		SavingsBuffer: 2000,
		ExpenseRatio:  0.75,
	}
	if _, err := store.SaveAssessment(ctx, user.ID, first); err != nil {
		t.Fatalf("SaveAssessment failed: %v", err)
	}

	second := model.Assessment{
		Level:         model.RiskLow,
		SavingsBuffer: 1500,
		ExpenseRatio:  0.40,
	}
	if _, err := store.SaveAssessment(ctx, user.ID, second); err != nil {
		t.Fatalf("SaveAssessment failed: %v", err)
	}

	latest, err := store.GetLatestAssessment(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetLatestAssessment failed: %v", err)
	}
	if latest.Level != model.RiskLow {
		t.Errorf("Expected latest level Low, got %s", latest.Level)
	}
	if latest.Reason != "Good financial health" {
		t.Errorf("Unexpected reason: %s", latest.Reason)
	}

	history, err := store.GetAssessmentHistory(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetAssessmentHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 assessments, got %d", len(history))
	}
	if history[0].Level != model.RiskLow || history[1].Level != model.RiskMedium {
		t.Errorf("Unexpected history order: %+v", history)
	}
}
