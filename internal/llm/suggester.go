package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/finloom/cashflow-copilot/internal/model"
)

// CategorySuggester adapts a Client to the classifier's fallback interface.
type CategorySuggester struct {
	client Client
}

// NewCategorySuggester creates a fallback suggester backed by an LLM client.
func NewCategorySuggester(client Client) *CategorySuggester {
	return &CategorySuggester{client: client}
}

// SuggestCategory asks the LLM to pick a category for a merchant the rule set
// could not match.
func (s *CategorySuggester) SuggestCategory(ctx context.Context, merchant string) (string, error) {
	labels := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		labels = append(labels, c.String())
	}

	prompt := fmt.Sprintf(
		"Given the merchant name '%s', classify it into one of these categories: %s. Return only the category name.",
		merchant,
		strings.Join(labels[:len(labels)-1], ", ")+", or "+labels[len(labels)-1],
	)

	reply, err := s.client.Complete(ctx, UserMessage(prompt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
