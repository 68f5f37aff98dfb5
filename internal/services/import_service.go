package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"changia/internal/core"
	"changia/internal/ledger"
	"changia/internal/statement"
)

// importConcurrency bounds parallel writes during a batch import.
const importConcurrency = 8

// ImportService turns pasted statement text into persisted contributions.
// Each row sinks or swims on its own; a bad row never aborts the batch.
type ImportService struct {
	writer  ledger.ContributionWriter
	mapping statement.ColumnMapping
}

func NewImportService(writer ledger.ContributionWriter, mapping statement.ColumnMapping) *ImportService {
	return &ImportService{writer: writer, mapping: mapping}
}

// ImportText tokenizes raw statement text, maps rows to contribution records
// for the group and persists the accepted ones concurrently. The returned
// Result reports every row's fate, with SubmitError set on accepted rows
// whose write failed.
func (s *ImportService) ImportText(ctx context.Context, group core.Group, text string) (statement.Result, error) {
	grid := statement.Tokenize(text)
	res := statement.MapGrid(grid, group, s.mapping, time.Now())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)

	for i := range res.Outcomes {
		o := &res.Outcomes[i]
		if !o.Accepted {
			continue
		}
		g.Go(func() error {
			if _, err := s.writer.Append(ctx, o.Record); err != nil {
				o.SubmitError = err.Error()
				slog.ErrorContext(ctx, "Failed to save imported contribution",
					"row", o.Row,
					"group", group.Name,
					"error", err)
				// A cancelled batch is an error for the caller; ordinary
				// per-row failures stay in the Result.
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}

	slog.InfoContext(ctx, "Statement import finished",
		"group", group.Name,
		"rows", len(res.Outcomes),
		"accepted", res.Accepted,
		"failed", len(res.FailedRows()))

	return res, nil
}
