// Package storage is the SQLite implementation of the ledger ports, plus the
// sync bookkeeping the export worker relies on.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"changia/internal/core"

	_ "modernc.org/sqlite"
)

// Sync states tracked per contribution for the Sheets export worker.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.ContributionWriter. Records are immutable once
// written; there is no update path.
func (r *SQLiteRepository) Append(ctx context.Context, c core.Contribution) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("validate contribution: %w", err)
	}

	recordedAt := c.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contributions
		   (group_name, first_name, second_name, amount, transaction_code, firewood, sync_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.GroupName, c.FirstName, c.SecondName, c.Amount, c.TransactionCode,
		boolToInt(c.Firewood), SyncPending, recordedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("create contribution: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("contribution id: %w", err)
	}

	slog.InfoContext(ctx, "Contribution saved",
		"id", id,
		"group", c.GroupName,
		"first_name", c.FirstName,
		"amount", c.Amount,
		"transaction_code", c.TransactionCode)

	return strconv.FormatInt(id, 10), nil
}

// ListContributions implements ledger.ContributionLister, newest first.
func (r *SQLiteRepository) ListContributions(ctx context.Context, groupName string) ([]core.Contribution, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_name, first_name, second_name, amount, transaction_code, firewood, created_at
		   FROM contributions
		  WHERE group_name = ?
		  ORDER BY created_at DESC, id DESC`,
		groupName)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var out []core.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributions: %w", err)
	}
	return out, nil
}

// GetContribution fetches one record by ID, used by the export worker.
func (r *SQLiteRepository) GetContribution(ctx context.Context, id int64) (core.Contribution, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, group_name, first_name, second_name, amount, transaction_code, firewood, created_at
		   FROM contributions WHERE id = ?`, id)
	c, err := scanContribution(row)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("get contribution %d: %w", id, err)
	}
	return c, nil
}

// GetPendingSync returns IDs of contributions not yet exported.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM contributions WHERE sync_status = ? ORDER BY id LIMIT ?`,
		SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkSynced marks a contribution as successfully exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE contributions SET sync_status = ? WHERE id = ?`, SyncDone, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	slog.InfoContext(ctx, "Contribution marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a contribution whose export failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE contributions SET sync_status = ? WHERE id = ?`, SyncError, id); err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}
	slog.WarnContext(ctx, "Contribution marked with sync error", "id", id)
	return nil
}

// CreateGroup implements ledger.GroupStore.
func (r *SQLiteRepository) CreateGroup(ctx context.Context, g core.Group) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("validate group: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (name, event_type, has_firewood) VALUES (?, ?, ?)`,
		g.Name, string(g.Event), boolToInt(g.HasFirewood))
	if err != nil {
		return 0, fmt.Errorf("create group: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("group id: %w", err)
	}
	slog.InfoContext(ctx, "Group created", "id", id, "name", g.Name, "event", g.Event)
	return id, nil
}

func (r *SQLiteRepository) GetGroup(ctx context.Context, name string) (core.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, event_type, has_firewood, created_at FROM groups WHERE name = ? LIMIT 1`, name)
	return scanGroup(row)
}

func (r *SQLiteRepository) ListGroups(ctx context.Context) ([]core.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, event_type, has_firewood, created_at FROM groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var out []core.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContribution(row rowScanner) (core.Contribution, error) {
	var c core.Contribution
	var firewood int
	var recordedAt time.Time
	err := row.Scan(&c.ID, &c.GroupName, &c.FirstName, &c.SecondName,
		&c.Amount, &c.TransactionCode, &firewood, &recordedAt)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("scan contribution: %w", err)
	}
	c.Firewood = firewood != 0
	c.RecordedAt = recordedAt
	return c, nil
}

func scanGroup(row rowScanner) (core.Group, error) {
	var g core.Group
	var firewood int
	var event string
	err := row.Scan(&g.ID, &g.Name, &event, &firewood, &g.CreatedAt)
	if err != nil {
		return core.Group{}, fmt.Errorf("scan group: %w", err)
	}
	g.Event = core.EventType(event)
	g.HasFirewood = firewood != 0
	return g, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
