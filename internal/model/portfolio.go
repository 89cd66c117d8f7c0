package model

import "time"

// Holding is a stock position in a user's portfolio.
type Holding struct {
	PurchaseDate  time.Time
	Ticker        string
	ID            int64
	UserID        int64
	Quantity      float64
	PurchasePrice float64
}

// ValuedHolding is a holding combined with its current market price.
// PriceUnavailable is set when the quote provider failed and the zero-price
// sentinel was used instead.
type ValuedHolding struct {
	Holding
	CurrentPrice     float64
	InitialValue     float64
	CurrentValue     float64
	GainLoss         float64
	GainLossPct      float64
	PriceUnavailable bool
}

// PortfolioSummary aggregates valued holdings.
type PortfolioSummary struct {
	TotalInvestment  float64
	CurrentValue     float64
	TotalGainLoss    float64
	TotalGainLossPct float64
}
