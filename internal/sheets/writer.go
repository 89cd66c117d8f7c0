package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/model"
)

// Report is the data written to a spreadsheet.
type Report struct {
	Username     string
	RiskLevel    model.RiskLevel
	RiskReason   string
	Transactions []model.Transaction
	ByCategory   map[model.Category]float64
	TotalSpend   float64
}

// Writer exports reports to Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, common.NewExternalServiceError("sheets", fmt.Errorf("failed to create sheets service: %w", err))
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write exports a report, replacing any previous contents of the sheet.
func (w *Writer) Write(ctx context.Context, report *Report) error {
	w.logger.Info("starting report export",
		"user", report.Username,
		"transactions", len(report.Transactions))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return common.NewExternalServiceError("sheets", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return common.NewExternalServiceError("sheets", fmt.Errorf("failed to clear sheet: %w", clearErr))
	}

	values := w.prepareReportData(report)

	if writeErr := w.writeData(ctx, spreadsheetID, values); writeErr != nil {
		return common.NewExternalServiceError("sheets", fmt.Errorf("failed to write data: %w", writeErr))
	}

	w.logger.Info("report export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		// Start from the cached access token when one exists, so an
		// unexpired token is reused instead of forcing a refresh.
		if config.TokenFile != "" {
			if cached, err := LoadToken(config.TokenFile); err == nil {
				cached.RefreshToken = config.RefreshToken
				oc := OAuth2Config{
					ClientID:     config.ClientID,
					ClientSecret: config.ClientSecret,
					TokenFile:    config.TokenFile,
				}
				if refreshed, err := RefreshTokenIfNeeded(ctx, oc, cached); err == nil {
					token = refreshed
				}
			}
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Transactions",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData lays out the report rows.
func (w *Writer) prepareReportData(report *Report) [][]any {
	estimatedRows := 10 + len(report.ByCategory) + len(report.Transactions)
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{"Cashflow Report", report.Username},
		[]any{},
		[]any{"Total Spending", report.TotalSpend},
		[]any{"Risk Level", string(report.RiskLevel)},
		[]any{"Risk Reason", report.RiskReason},
		[]any{},
		[]any{"Spending by Category"},
	)

	// Deterministic category order
	categories := make([]model.Category, 0, len(report.ByCategory))
	for category := range report.ByCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	for _, category := range categories {
		values = append(values, []any{string(category), report.ByCategory[category]})
	}

	values = append(values,
		[]any{},
		[]any{"Date", "Merchant", "Category", "Amount"},
	)

	for _, txn := range report.Transactions {
		values = append(values, []any{
			txn.Date.Format("2006-01-02"),
			txn.Merchant,
			string(txn.Category),
			txn.Amount,
		})
	}

	return values
}

// writeData writes rows starting at A1.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	valueRange := &sheets.ValueRange{Values: values}
	_, err := w.service.Spreadsheets.Values.
		Update(spreadsheetID, "A1", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}
