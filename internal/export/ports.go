package export

import "context"

// Ports for the tabular-export collaborator. The engine hands over rendered
// rows and a target name; the adapter owns the spreadsheet encoding.
type (
	// RowAppender appends one rendered record row, returning an adapter
	// reference. Used by the sync worker.
	RowAppender interface {
		AppendRow(ctx context.Context, row []any) (ref string, err error)
	}

	// TableWriter replaces a whole named table with the rendered row set.
	// Used by the on-demand group export.
	TableWriter interface {
		WriteTable(ctx context.Context, name string, rows [][]any) error
	}
)
