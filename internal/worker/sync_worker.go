package worker

import (
	"context"
	"fmt"
	"log/slog"

	"changia/internal/amqp"
	"changia/internal/export"
	"changia/internal/report"
	"changia/internal/storage"
)

// SyncWorker pushes accepted contributions from SQLite to the spreadsheet
// export. AMQP messages drive the hot path; a pending-status sweep covers
// messages lost while the worker was down.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	exporter  export.RowAppender
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, exporter export.RowAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ContributionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	c, err := w.storage.GetContribution(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get contribution from storage: %w", err)
	}

	return w.exportContribution(ctx, c.ID, report.Row(c))
}

// ProcessPending exports contributions that never got a sync message.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	ids, err := w.storage.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending contributions: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending contributions", "count", len(ids))

	for _, id := range ids {
		c, err := w.storage.GetContribution(ctx, id)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get contribution", "id", id, "error", err)
			if err := w.storage.MarkSyncError(ctx, id); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", err)
			}
			continue
		}
		if err := w.exportContribution(ctx, id, report.Row(c)); err != nil {
			slog.ErrorContext(ctx, "Failed to export contribution", "id", id, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck sweeps a larger pending backlog once at worker startup,
// recovering from downtime or missed AMQP messages.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	ids, err := w.storage.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending contributions for startup check: %w", err)
	}
	if len(ids) == 0 {
		slog.InfoContext(ctx, "No pending contributions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending contributions on startup, processing...", "count", len(ids))

	synced := 0
	failed := 0
	for _, id := range ids {
		c, err := w.storage.GetContribution(ctx, id)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get contribution for startup sync", "id", id, "error", err)
			if err := w.storage.MarkSyncError(ctx, id); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", err)
			}
			failed++
			continue
		}
		if err := w.exportContribution(ctx, id, report.Row(c)); err != nil {
			slog.ErrorContext(ctx, "Failed to export contribution during startup", "id", id, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(ids),
		"synced", synced,
		"errors", failed)

	return nil
}

func (w *SyncWorker) exportContribution(ctx context.Context, id int64, row []any) error {
	ref, err := w.exporter.AppendRow(ctx, row)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append export row: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		// The export itself worked; log and move on.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Contribution exported", "id", id, "export_ref", ref)
	return nil
}
