// Package sheets stores the question list and the collected answers in a
// Google spreadsheet: questions in column A, one column per completed
// session.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// valuesAPI is the part of the Sheets values service the adapters use.
type valuesAPI interface {
	Get(ctx context.Context, rng string) ([][]interface{}, error)
	BatchUpdate(ctx context.Context, data []*gsheets.ValueRange) error
}

// Client is bound to one worksheet of one spreadsheet.
type Client struct {
	values valuesAPI
	sheet  string
}

// NewClient authenticates with a service account key file.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("GOOGLE_SHEET_ID not set")
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("google credentials file %q: %w", credentialsFile, err)
	}

	srv, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &Client{
		values: &remoteValues{srv: srv, spreadsheetID: spreadsheetID},
		sheet:  sheetName,
	}, nil
}

// rangeOf prefixes an A1 range with the quoted worksheet name.
func (c *Client) rangeOf(a1 string) string {
	name := "'" + strings.ReplaceAll(c.sheet, "'", "''") + "'"
	if a1 == "" {
		return name
	}
	return name + "!" + a1
}

type remoteValues struct {
	srv           *gsheets.Service
	spreadsheetID string
}

func (r *remoteValues) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := r.srv.Spreadsheets.Values.Get(r.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (r *remoteValues) BatchUpdate(ctx context.Context, data []*gsheets.ValueRange) error {
	req := &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := r.srv.Spreadsheets.Values.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets batch update: %w", err)
	}
	return nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}

// hasHeader reports whether the first row is a "Question(s)" header.
func hasHeader(rows [][]interface{}) bool {
	if len(rows) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(cell(rows[0], 0))) {
	case "question", "questions":
		return true
	}
	return false
}
