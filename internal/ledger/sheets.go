package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheets appends expense rows to a Google Sheets spreadsheet using a service
// account
type Sheets struct {
	service       *sheets.Service
	spreadsheetID string
	writeRange    string
}

// NewSheets creates a new Sheets appender. credentialsFile is a service
// account JSON key authorized for the spreadsheets scope.
func NewSheets(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Sheets{
		service:       service,
		spreadsheetID: spreadsheetID,
		writeRange:    fmt.Sprintf("%s!A1", sheetName),
	}, nil
}

// AppendRow appends one row to the sheet, retrying rate-limited calls before
// giving up
func (s *Sheets) AppendRow(ctx context.Context, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	err := retry.Do(
		func() error {
			_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.writeRange, vr).
				ValueInputOption("USER_ENTERED").
				InsertDataOption("INSERT_ROWS").
				Context(ctx).
				Do()
			return err
		},
		retry.RetryIf(func(err error) bool {
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) {
				return apiErr.Code == 429
			}
			return false
		}),
		retry.Attempts(3),
		retry.Delay(time.Minute),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("appending row to sheet: %w", err)
	}

	return nil
}

// Close is a no-op for the Sheets appender
func (s *Sheets) Close() error {
	return nil
}
