// Package csvparse reads transaction uploads in CSV format.
package csvparse

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/model"
)

// Required columns. An optional "category" column is honored when it names a
// known category.
var requiredColumns = []string{"date", "amount", "merchant"}

// Date layouts accepted, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

// Parser reads transaction CSV files.
type Parser struct{}

// NewParser creates a new CSV parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a CSV upload into transactions. The first row must be a header
// carrying the required columns; a missing column is a ValidationError and no
// partial result is returned.
func (p *Parser) Parse(reader io.Reader) ([]model.Transaction, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, common.NewValidationError("CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, common.NewValidationError(
				"CSV must contain 'date', 'amount', and 'merchant' columns")
		}
	}

	var transactions []model.Transaction
	line := 1
	for {
		record, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", readErr)
		}
		line++

		txn, parseErr := p.parseRecord(record, columns)
		if parseErr != nil {
			return nil, common.NewValidationError("line %d: %v", line, parseErr)
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

func (p *Parser) parseRecord(record []string, columns map[string]int) (model.Transaction, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(field("date"))
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := parseAmount(field("amount"))
	if err != nil {
		return model.Transaction{}, err
	}

	merchant := field("merchant")
	if merchant == "" {
		return model.Transaction{}, fmt.Errorf("missing merchant")
	}

	txn := model.Transaction{
		Date:     date,
		Amount:   amount,
		Merchant: merchant,
	}

	if category := field("category"); category != "" && model.ValidCategory(category) {
		txn.Category = model.Category(category)
	}

	return txn, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseAmount accepts currency symbols and thousands separators. Bank exports
// use negative amounts for debits, so the absolute value is kept.
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing amount")
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", s)
	}
	return math.Abs(amount), nil
}
