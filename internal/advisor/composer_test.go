package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finloom/cashflow-copilot/internal/llm"
	"github.com/finloom/cashflow-copilot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(category model.Category, amount float64) model.Transaction {
	return model.Transaction{
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Merchant: "merchant",
		Category: category,
		Amount:   amount,
	}
}

func TestGenerateAdvice(t *testing.T) {
	client := &llm.MockClient{Reply: "Cut back on dining out."}
	composer := New(client, nil)

	txns := []model.Transaction{
		txn(model.CategoryFood, 1200),
		txn(model.CategoryBills, 800),
	}

	advice, err := composer.GenerateAdvice(context.Background(), 5000, txns, model.RiskMedium)
	require.NoError(t, err)
	assert.Equal(t, "Cut back on dining out.", advice)

	call := client.LastCall()
	require.Len(t, call, 1)
	prompt := call[0].Content
	assert.Contains(t, prompt, "Monthly Income: $5000.00")
	assert.Contains(t, prompt, "Total Monthly Expenses: $2000.00")
	assert.Contains(t, prompt, "Food: $1200.00 (60.0%)")
	assert.Contains(t, prompt, "Bills: $800.00 (40.0%)")
	assert.Contains(t, prompt, "Current Risk Level: Medium")
}

func TestGenerateAdviceNoTransactions(t *testing.T) {
	client := &llm.MockClient{Reply: "should not be called"}
	composer := New(client, nil)

	advice, err := composer.GenerateAdvice(context.Background(), 5000, nil, model.RiskMedium)
	require.NoError(t, err)
	assert.Equal(t, NoDataMessage, advice)
	assert.Empty(t, client.Calls())
}

func TestGenerateAdviceFailure(t *testing.T) {
	client := &llm.MockClient{Err: errors.New("provider down")}
	composer := New(client, nil)

	_, err := composer.GenerateAdvice(context.Background(), 5000,
		[]model.Transaction{txn(model.CategoryFood, 100)}, model.RiskLow)
	require.Error(t, err)
}

func TestInsights(t *testing.T) {
	composer := New(&llm.MockClient{}, nil)

	txns := []model.Transaction{
		txn(model.CategoryFood, 50),
		txn(model.CategoryFood, 30),
		txn(model.CategoryFood, 20),
		txn(model.CategoryShopping, 200),
	}

	insights := composer.Insights(txns)
	require.Len(t, insights, 3)
	assert.Equal(t, "Highest spending category: Shopping ($200.00)", insights[0])
	assert.Equal(t, "Most frequent category: Food (3 transactions)", insights[1])
	assert.Equal(t, "Average transaction amount: $75.00", insights[2])
}

func TestInsightsEmpty(t *testing.T) {
	composer := New(&llm.MockClient{}, nil)
	assert.Nil(t, composer.Insights(nil))
}

func TestChatSession(t *testing.T) {
	client := &llm.MockClient{Reply: "Start with a 50/30/20 budget."}
	session := NewChatSession(client)

	reply, err := session.Send(context.Background(), "How should I budget?")
	require.NoError(t, err)
	assert.Equal(t, "Start with a 50/30/20 budget.", reply)

	history := session.History()
	require.Len(t, history, 3)
	assert.Equal(t, llm.RoleSystem, history[0].Role)
	assert.Contains(t, history[0].Content, "CashGPT")
	assert.Equal(t, llm.RoleUser, history[1].Role)
	assert.Equal(t, llm.RoleAssistant, history[2].Role)

	// The full history rides along on the next turn.
	_, err = session.Send(context.Background(), "What about savings?")
	require.NoError(t, err)
	assert.Len(t, client.LastCall(), 4)
}

func TestChatSessionFailureKeepsUserTurn(t *testing.T) {
	client := &llm.MockClient{Err: errors.New("timeout")}
	session := NewChatSession(client)

	_, err := session.Send(context.Background(), "hello")
	require.Error(t, err)

	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[1].Role)
}
