package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction from any source.
type Transaction struct {
	Date     time.Time
	Merchant string
	Category Category
	Hash     string
	ID       int64
	UserID   int64
	Amount   float64
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%d:%s:%.2f:%s",
		t.UserID,
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Merchant)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// User is a registered profile that transactions, holdings and risk
// assessments hang off.
type User struct {
	CreatedAt     time.Time
	Username      string
	ID            int64
	MonthlyIncome float64
}
