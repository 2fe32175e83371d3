package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// Writer exports match reports to a Google Sheets spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a Google Sheets exporter.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// WriteMatchReport writes a creator's product match list to the configured
// spreadsheet, replacing previous contents.
func (w *Writer) WriteMatchReport(ctx context.Context, creator model.Creator, matches []model.ProductMatch) error {
	if w.config.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id is required")
	}

	values := [][]any{
		{"Match report", creator.Name, time.Now().Format("2006-01-02 15:04")},
		{},
		{"Rank", "Product", "Category", "Price (KRW)", "Match score",
			"Category fit", "Price fit", "Season fit", "Audience fit",
			"Predicted revenue", "Basis"},
	}
	for i, match := range matches {
		values = append(values, []any{
			i + 1,
			match.Product.Name,
			match.Product.Category,
			match.Product.Price,
			match.MatchScore,
			match.ScoreBreakdown.CategoryFit,
			match.ScoreBreakdown.PriceFit,
			match.ScoreBreakdown.SeasonFit,
			match.ScoreBreakdown.AudienceFit,
			match.PredictedRevenue.Expected,
			match.PredictedRevenue.Basis,
		})
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err := common.WithRetry(ctx, func() error {
		clearCall := w.service.Spreadsheets.Values.Clear(w.config.SpreadsheetID, "A:Z", &sheets.ClearValuesRequest{})
		if _, err := clearCall.Context(ctx).Do(); err != nil {
			return classifySheetsError("failed to clear sheet", err)
		}

		valueRange := &sheets.ValueRange{Values: values}
		updateCall := w.service.Spreadsheets.Values.Update(w.config.SpreadsheetID, "A1", valueRange).
			ValueInputOption("RAW")
		if _, err := updateCall.Context(ctx).Do(); err != nil {
			return classifySheetsError("failed to write report", err)
		}
		return nil
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("match report export failed: %w", err)
	}

	w.logger.Info("match report exported",
		"spreadsheet_id", w.config.SpreadsheetID,
		"creator_id", creator.ID,
		"rows", len(values))

	return nil
}

// transientSheetsError marks a Sheets API failure the retry policy should
// back off on.
type transientSheetsError struct {
	op  string
	err error
}

func (e *transientSheetsError) Error() string   { return e.op + ": " + e.err.Error() }
func (e *transientSheetsError) Unwrap() error   { return e.err }
func (e *transientSheetsError) Retryable() bool { return true }

// classifySheetsError wraps an API failure so common.WithRetry can tell
// transient rate limits and server errors apart from permanent ones.
func classifySheetsError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500 {
			return &transientSheetsError{op: op, err: err}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// createSheetsService builds the API client from either a service account
// key or OAuth2 refresh-token credentials.
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
		tokenSource = oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: config.RefreshToken})
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return service, nil
}
