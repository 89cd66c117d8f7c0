// Package portfolio values held positions against an external quote provider.
package portfolio

import (
	"context"
	"log/slog"
	"time"

	"github.com/finloom/cashflow-copilot/internal/model"
)

// Quote is a snapshot from the quote provider. History holds up to one month
// of daily closes, most recent last.
type Quote struct {
	Ticker       string
	History      []PricePoint
	CurrentPrice float64
}

// PricePoint is one day of price history.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// QuoteProvider fetches current market data for a ticker.
type QuoteProvider interface {
	GetQuote(ctx context.Context, ticker string) (Quote, error)
}

// Valuator combines holdings with current prices into valuation summaries.
type Valuator struct {
	quotes QuoteProvider
	logger *slog.Logger
}

// NewValuator creates a Valuator backed by the given quote provider.
func NewValuator(quotes QuoteProvider, logger *slog.Logger) *Valuator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Valuator{quotes: quotes, logger: logger}
}

// Value fetches a quote for each holding and computes its valuation. A failed
// quote degrades to a zero-price sentinel; no provider error escapes this
// boundary.
func (v *Valuator) Value(ctx context.Context, holdings []model.Holding) []model.ValuedHolding {
	valued := make([]model.ValuedHolding, 0, len(holdings))

	for _, h := range holdings {
		quote, err := v.quotes.GetQuote(ctx, h.Ticker)
		if err != nil {
			v.logger.Warn("quote fetch failed, using zero price",
				"ticker", h.Ticker,
				"error", err)
			quote = Quote{Ticker: h.Ticker}
		}

		vh := model.ValuedHolding{
			Holding:          h,
			CurrentPrice:     quote.CurrentPrice,
			PriceUnavailable: err != nil,
		}
		vh.InitialValue = h.PurchasePrice * h.Quantity
		vh.CurrentValue = quote.CurrentPrice * h.Quantity
		vh.GainLoss = vh.CurrentValue - vh.InitialValue
		if vh.InitialValue != 0 {
			vh.GainLossPct = vh.GainLoss / vh.InitialValue * 100
		}

		valued = append(valued, vh)
	}

	return valued
}

// Summarize aggregates valued holdings into portfolio totals.
func Summarize(valued []model.ValuedHolding) model.PortfolioSummary {
	var s model.PortfolioSummary
	for _, vh := range valued {
		s.TotalInvestment += vh.InitialValue
		s.CurrentValue += vh.CurrentValue
	}
	s.TotalGainLoss = s.CurrentValue - s.TotalInvestment
	if s.TotalInvestment > 0 {
		s.TotalGainLossPct = s.TotalGainLoss / s.TotalInvestment * 100
	}
	return s
}
