// Package quotes fetches current prices and recent history for stock tickers
// from a JSON quote API.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/portfolio"
)

// DefaultBaseURL is the quote API endpoint used when none is configured.
const DefaultBaseURL = "https://api.stockdata.dev/v1"

// Config holds quote client configuration.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client fetches quotes over HTTP. It implements portfolio.QuoteProvider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// API response types.
type quoteResponse struct {
	Ticker  string       `json:"ticker"`
	Price   float64      `json:"price"`
	History []historyBar `json:"history"`
}

type historyBar struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// NewClient creates a quote client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: quote API key", common.ErrMissingConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// GetQuote fetches the current price and one month of daily history for a
// ticker. Any failure is returned as an ExternalServiceError; the valuator
// absorbs it into a zero-price sentinel.
func (c *Client) GetQuote(ctx context.Context, ticker string) (portfolio.Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&range=1mo&api_key=%s",
		c.baseURL, url.QueryEscape(ticker), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return portfolio.Quote{}, common.NewExternalServiceError("quotes", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return portfolio.Quote{}, common.NewExternalServiceError("quotes", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return portfolio.Quote{}, common.NewExternalServiceError("quotes", err)
	}

	if resp.StatusCode != http.StatusOK {
		return portfolio.Quote{}, common.NewExternalServiceError("quotes",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	var qr quoteResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return portfolio.Quote{}, common.NewExternalServiceError("quotes",
			fmt.Errorf("failed to parse response: %w", err))
	}

	quote := portfolio.Quote{
		Ticker:       ticker,
		CurrentPrice: qr.Price,
	}
	for _, bar := range qr.History {
		date, parseErr := time.Parse("2006-01-02", bar.Date)
		if parseErr != nil {
			continue
		}
		quote.History = append(quote.History, portfolio.PricePoint{
			Date:  date,
			Close: bar.Close,
		})
	}

	return quote, nil
}
