package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finloom/cashflow-copilot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holding(ticker string, quantity, purchasePrice float64) model.Holding {
	return model.Holding{
		Ticker:        ticker,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestValue(t *testing.T) {
	provider := &MockQuoteProvider{
		Quotes: map[string]Quote{
			"AAPL": {Ticker: "AAPL", CurrentPrice: 200},
			"MSFT": {Ticker: "MSFT", CurrentPrice: 80},
		},
	}
	valuator := NewValuator(provider, nil)

	valued := valuator.Value(context.Background(), []model.Holding{
		holding("AAPL", 10, 100),
		holding("MSFT", 5, 100),
	})
	require.Len(t, valued, 2)

	aapl := valued[0]
	assert.InDelta(t, 1000.0, aapl.InitialValue, 0.001)
	assert.InDelta(t, 2000.0, aapl.CurrentValue, 0.001)
	assert.InDelta(t, 1000.0, aapl.GainLoss, 0.001)
	assert.InDelta(t, 100.0, aapl.GainLossPct, 0.001)
	assert.False(t, aapl.PriceUnavailable)

	msft := valued[1]
	assert.InDelta(t, -100.0, msft.GainLoss, 0.001)
	assert.InDelta(t, -20.0, msft.GainLossPct, 0.001)
}

func TestValueQuoteFailureDegradesToSentinel(t *testing.T) {
	provider := &MockQuoteProvider{
		Quotes: map[string]Quote{"AAPL": {Ticker: "AAPL", CurrentPrice: 200}},
		Errors: map[string]error{"GME": errors.New("provider unavailable")},
	}
	valuator := NewValuator(provider, nil)

	valued := valuator.Value(context.Background(), []model.Holding{
		holding("GME", 10, 40),
		holding("AAPL", 1, 100),
	})
	require.Len(t, valued, 2)

	gme := valued[0]
	assert.True(t, gme.PriceUnavailable)
	assert.Zero(t, gme.CurrentPrice)
	assert.InDelta(t, 400.0, gme.InitialValue, 0.001)
	assert.InDelta(t, -400.0, gme.GainLoss, 0.001)

	// The failure does not poison later holdings.
	assert.False(t, valued[1].PriceUnavailable)
}

func TestValueZeroInitialValueGuard(t *testing.T) {
	provider := &MockQuoteProvider{
		Quotes: map[string]Quote{"FREE": {Ticker: "FREE", CurrentPrice: 10}},
	}
	valuator := NewValuator(provider, nil)

	valued := valuator.Value(context.Background(), []model.Holding{
		holding("FREE", 3, 0),
	})
	require.Len(t, valued, 1)
	assert.Zero(t, valued[0].GainLossPct)
	assert.InDelta(t, 30.0, valued[0].GainLoss, 0.001)
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]model.ValuedHolding{
		{InitialValue: 1000, CurrentValue: 1500},
		{InitialValue: 500, CurrentValue: 250},
	})

	assert.InDelta(t, 1500.0, summary.TotalInvestment, 0.001)
	assert.InDelta(t, 1750.0, summary.CurrentValue, 0.001)
	assert.InDelta(t, 250.0, summary.TotalGainLoss, 0.001)
	assert.InDelta(t, 250.0/1500.0*100, summary.TotalGainLossPct, 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.TotalInvestment)
	assert.Zero(t, summary.TotalGainLossPct)
}
