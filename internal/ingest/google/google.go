// Package google reads transaction groups from a Google Sheets
// spreadsheet using service-account credentials. Each sheet in the
// spreadsheet is one category group with the same Date / Amount /
// Expense Head header contract as the excel backend.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"expensecast/internal/core"
	"expensecast/internal/ingest"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ ingest.TransactionSource = (*Client)(nil)

// Config carries what the client needs; exactly one of CredFile or
// CredJSON must be set.
type Config struct {
	SpreadsheetID string
	CredFile      string
	CredJSON      string
}

// New creates a Sheets client from explicit configuration.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	var credentialsJSON []byte
	switch {
	case cfg.CredJSON != "":
		credentialsJSON = []byte(cfg.CredJSON)
	case cfg.CredFile != "":
		data, err := os.ReadFile(cfg.CredFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// sheetFetchConcurrency bounds parallel Values.Get calls so a large
// spreadsheet does not trip the Sheets API rate limits.
const sheetFetchConcurrency = 4

// Load fetches every sheet of the spreadsheet and parses it into
// transaction groups. Sheets are fetched concurrently.
func (c *Client) Load(ctx context.Context) (map[string][]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet metadata: %w", err)
	}

	var mu sync.Mutex
	groups := make(map[string][]core.Transaction)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sheetFetchConcurrency)
	for _, sheet := range meta.Sheets {
		title := sheet.Properties.Title
		g.Go(func() error {
			resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, title).
				Context(gctx).Do()
			if err != nil {
				return fmt.Errorf("read sheet %q: %w", title, err)
			}

			txs, skipped := parseMatrix(resp.Values)
			if skipped {
				slog.WarnContext(gctx, "Sheet skipped: missing Date or Amount column",
					"sheet", title)
				return nil
			}
			if len(txs) > 0 {
				mu.Lock()
				groups[title] = txs
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("spreadsheet has no parseable sheets: %w", core.ErrNoTransactions)
	}
	return groups, nil
}
