package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/Veraticus/museum-pulse/internal/common"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// spreadsheetAPI is the subset of the Sheets API an export needs.
type spreadsheetAPI interface {
	// Tabs returns the sheet IDs of an existing spreadsheet by tab title.
	Tabs(ctx context.Context, spreadsheetID string) (map[string]int64, error)
	Create(ctx context.Context, title, timeZone string, tabs []string) (id, url string, err error)
	AddTabs(ctx context.Context, spreadsheetID string, tabs []string) error
	Clear(ctx context.Context, spreadsheetID, rangeStr string) error
	Update(ctx context.Context, spreadsheetID, rangeStr string, values [][]any) error
	FormatHeader(ctx context.Context, spreadsheetID string, sheetID int64, columns int) error
}

type googleAPI struct {
	service *sheets.Service
}

// newGoogleAPI creates a Sheets API client from service account or OAuth2
// refresh token credentials.
func newGoogleAPI(ctx context.Context, config Config) (*googleAPI, error) {
	var tokenSource oauth2.TokenSource

	if config.AuthMethod() == AuthServiceAccount {
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
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return &googleAPI{service: srv}, nil
}

func (g *googleAPI) Tabs(ctx context.Context, spreadsheetID string) (map[string]int64, error) {
	ss, err := g.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}
	tabs := make(map[string]int64, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			tabs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	return tabs, nil
}

func (g *googleAPI) Create(ctx context.Context, title, timeZone string, tabs []string) (string, string, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    title,
			TimeZone: timeZone,
		},
	}
	for _, tab := range tabs {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: tab},
		})
	}

	created, err := g.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", "", classify(err)
	}
	return created.SpreadsheetId, created.SpreadsheetUrl, nil
}

func (g *googleAPI) AddTabs(ctx context.Context, spreadsheetID string, tabs []string) error {
	if len(tabs) == 0 {
		return nil
	}
	requests := make([]*sheets.Request, 0, len(tabs))
	for _, tab := range tabs {
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: tab}},
		})
	}
	_, err := g.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return classify(err)
}

func (g *googleAPI) Clear(ctx context.Context, spreadsheetID, rangeStr string) error {
	_, err := g.service.Spreadsheets.Values.Clear(spreadsheetID, rangeStr, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return classify(err)
}

func (g *googleAPI) Update(ctx context.Context, spreadsheetID, rangeStr string, values [][]any) error {
	_, err := g.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return classify(err)
}

func (g *googleAPI) FormatHeader(ctx context.Context, spreadsheetID string, sheetID int64, columns int) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(columns),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(columns),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	_, err := g.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return classify(err)
}

// classify marks client errors other than rate limiting as permanent so
// WithRetry gives up on them immediately.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}
