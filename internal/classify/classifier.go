// Package classify maps merchant names to spending categories using an
// ordered rule set with an optional LLM fallback.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/model"
)

// Fallback suggests a category for a merchant the rule set could not match.
type Fallback interface {
	SuggestCategory(ctx context.Context, merchant string) (string, error)
}

type compiledRule struct {
	regex    *regexp.Regexp
	category model.Category
}

// Classifier assigns categories to merchants. It is safe for concurrent use:
// it holds no mutable state after construction.
type Classifier struct {
	fallback   Fallback
	logger     *slog.Logger
	onProgress func(done, total int)
	rules      []compiledRule
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithFallback sets an LLM fallback consulted when no rule matches.
func WithFallback(f Fallback) Option {
	return func(c *Classifier) { c.fallback = f }
}

// WithProgress sets a callback invoked after each transaction in a batch.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Classifier) { c.onProgress = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) { c.logger = logger }
}

// New creates a Classifier from the given rules.
func New(rules []Rule, opts ...Option) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		regex, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %s: %w", r.Category, err)
		}
		compiled = append(compiled, compiledRule{category: r.Category, regex: regex})
	}

	c := &Classifier{
		rules:  compiled,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify maps a merchant name to a category. It is total: every merchant
// maps to exactly one category, falling through to CategoryOther when neither
// the rules nor the fallback produce a known label.
func (c *Classifier) Classify(ctx context.Context, merchant string) model.Category {
	normalized := strings.ToLower(merchant)

	for _, rule := range c.rules {
		if rule.regex.MatchString(normalized) {
			return rule.category
		}
	}

	if c.fallback != nil {
		suggestion, err := c.fallback.SuggestCategory(ctx, merchant)
		if err != nil {
			c.logger.Warn("classification fallback failed",
				"merchant", merchant,
				"error", err)
			return model.CategoryOther
		}
		suggestion = strings.TrimSpace(suggestion)
		if model.ValidCategory(suggestion) {
			return model.Category(suggestion)
		}
		c.logger.Debug("fallback returned unknown category",
			"merchant", merchant,
			"suggestion", suggestion)
	}

	return model.CategoryOther
}

// ProcessTransactions classifies a batch of transactions and returns the
// augmented collection. The input is not mutated; persistence is the caller's
// responsibility.
func (c *Classifier) ProcessTransactions(ctx context.Context, txns []model.Transaction) ([]model.Transaction, error) {
	if err := validateBatch(txns); err != nil {
		return nil, err
	}

	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		txn.Category = c.Classify(ctx, txn.Merchant)
		out[i] = txn
		if c.onProgress != nil {
			c.onProgress(i+1, len(txns))
		}
	}
	return out, nil
}

// validateBatch checks that every transaction carries the required fields.
func validateBatch(txns []model.Transaction) error {
	for i, txn := range txns {
		switch {
		case txn.Date.IsZero():
			return common.NewValidationError("transaction %d: missing date", i)
		case txn.Merchant == "":
			return common.NewValidationError("transaction %d: missing merchant", i)
		case txn.Amount < 0:
			return common.NewValidationError("transaction %d: negative amount %.2f", i, txn.Amount)
		}
	}
	return nil
}
