package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSource reads worksheets from a Google spreadsheet using a service
// account keyfile with readonly scope.
type GoogleSource struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewGoogleSource(ctx context.Context, credentialsPath, spreadsheetID string) (*GoogleSource, error) {
	if strings.TrimSpace(credentialsPath) == "" {
		return nil, errors.New("missing GCP_CREDENTIALS_PATH")
	}
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SHEET_ID")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("build sheets client: %w", err)
	}

	return &GoogleSource{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *GoogleSource) FetchTable(ctx context.Context, name string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, name+"!A:Z").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %q: %w", name, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
