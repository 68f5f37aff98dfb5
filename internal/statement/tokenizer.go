// Package statement turns pasted mobile-money statement exports into
// validated contribution records: a best-effort delimited-text tokenizer and
// a column-mapped row importer.
package statement

// Tokenize scans a raw comma-separated blob into a grid of string cells.
//
// It is deliberately not encoding/csv: pasted exports carry bare quotes,
// unterminated quotes and ragged rows, and the contract is that arbitrary
// input always yields a grid. The scan is a single left-to-right pass with a
// quote-state flag; "" inside quotes emits one literal quote; comma outside
// quotes advances the column; CRLF, LF or CR outside quotes advances the
// row. Cells are created lazily when touched, so short rows stay short
// instead of being padded to a uniform width. An unterminated quote swallows
// the remaining text as cell content.
func Tokenize(text string) [][]string {
	var grid [][]string
	quote := false
	row, col := 0, 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		var next byte
		if i+1 < len(text) {
			next = text[i+1]
		}

		for len(grid) <= row {
			grid = append(grid, nil)
		}
		for len(grid[row]) <= col {
			grid[row] = append(grid[row], "")
		}

		switch {
		case c == '"' && quote && next == '"':
			grid[row][col] += `"`
			i++
		case c == '"':
			quote = !quote
		case c == ',' && !quote:
			col++
		case c == '\r' && next == '\n' && !quote:
			row++
			col = 0
			i++
		case (c == '\n' || c == '\r') && !quote:
			row++
			col = 0
		default:
			// Byte-wise append keeps multi-byte UTF-8 sequences intact.
			grid[row][col] += text[i : i+1]
		}
	}

	return grid
}
