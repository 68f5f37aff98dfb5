package statement

import (
	"testing"
	"time"

	"changia/internal/core"
)

var testGroup = core.Group{Name: "Test", Event: core.Burial}

func TestMapGridAcceptsValidRow(t *testing.T) {
	grid := Tokenize("Receipt No,Completion Time,Details,Status,Paid In\n" +
		"QWE123TY90,2025-08-01,Jane Doe,Completed,\"1,000.00\"")

	now := time.Now()
	res := MapGrid(grid, testGroup, DefaultMapping(), now)

	if res.Accepted != 1 {
		t.Fatalf("accepted = %d, want 1", res.Accepted)
	}
	var rec core.Contribution
	for _, o := range res.Outcomes {
		if o.Accepted {
			rec = o.Record
		}
	}
	if rec.FirstName != "Jane" || rec.SecondName != "Doe" {
		t.Fatalf("name = %q %q", rec.FirstName, rec.SecondName)
	}
	if rec.Amount != 1000 {
		t.Fatalf("amount = %v", rec.Amount)
	}
	if rec.TransactionCode != "QWE123TY90" {
		t.Fatalf("code = %q", rec.TransactionCode)
	}
	if rec.GroupName != "Test" {
		t.Fatalf("group = %q", rec.GroupName)
	}
	if rec.Firewood {
		t.Fatal("imported rows never carry firewood")
	}
	if !rec.RecordedAt.Equal(now) {
		t.Fatalf("recordedAt = %v", rec.RecordedAt)
	}
}

func TestMapGridSkipsHeaderShortAndBadRows(t *testing.T) {
	grid := [][]string{
		{"Receipt No", "Paid In", "Details", "x", "Amount"}, // header
		{"only", "two"},                                  // short row
		{"CODE000001", "", "John Kamau", "", "500.00"},   // valid
		{"CODE000002", "", "Mary Atieno", "", "N/A"},     // bad amount
		{"CODE000003", "", "Peter Otieno", "", "0"},      // zero amount
		{"CODE000004", "abc", "Grace Njeri", "", ""},     // fallback amount not numeric
	}
	res := MapGrid(grid, testGroup, DefaultMapping(), time.Now())

	if res.Accepted != 1 {
		t.Fatalf("accepted = %d, want 1", res.Accepted)
	}
	wantReasons := []string{ReasonHeader, ReasonShortRow, "", ReasonBadAmount, ReasonBadAmount, ReasonBadAmount}
	for i, o := range res.Outcomes {
		if o.Reason != wantReasons[i] {
			t.Fatalf("row %d reason = %q, want %q", i, o.Reason, wantReasons[i])
		}
	}
}

func TestMapGridAcceptedCountOrderIndependent(t *testing.T) {
	valid1 := []string{"C1", "", "A B", "", "100"}
	valid2 := []string{"C2", "", "C D", "", "200"}
	bad := []string{"C3", "", "E F", "", "nope"}
	header := []string{"h", "h", "h", "h", "h"}

	a := MapGrid([][]string{header, valid1, bad, valid2}, testGroup, DefaultMapping(), time.Now())
	b := MapGrid([][]string{header, valid2, valid1, bad}, testGroup, DefaultMapping(), time.Now())
	if a.Accepted != 2 || b.Accepted != 2 {
		t.Fatalf("accepted = %d / %d, want 2 / 2", a.Accepted, b.Accepted)
	}
}

func TestMapGridFallbackColumns(t *testing.T) {
	// Details falls back to column 0, amount falls back to column 1.
	grid := [][]string{
		{"header", "header", "header"},
		{"Wanjiku Kimani", "2,500.00", ""},
	}
	res := MapGrid(grid, testGroup, DefaultMapping(), time.Now())
	if res.Accepted != 1 {
		t.Fatalf("accepted = %d, want 1", res.Accepted)
	}
	rec := res.Outcomes[1].Record
	if rec.FirstName != "Wanjiku" || rec.SecondName != "Kimani" {
		t.Fatalf("name = %q %q", rec.FirstName, rec.SecondName)
	}
	if rec.Amount != 2500 {
		t.Fatalf("amount = %v", rec.Amount)
	}
	// Code column holds the details here; upstream exports never do this, but
	// the mapping is deliberately literal about column positions.
	if rec.TransactionCode != "Wanjiku Kimani" {
		t.Fatalf("code = %q", rec.TransactionCode)
	}
}

func TestMapGridUnknownFirstName(t *testing.T) {
	// Both the details column and its code-column fallback are empty.
	grid := [][]string{
		{"h", "h", "h", "h", "h"},
		{"", "", "", "", "300"},
	}
	res := MapGrid(grid, testGroup, DefaultMapping(), time.Now())
	rec := res.Outcomes[1].Record
	if rec.FirstName != "Unknown" || rec.SecondName != "" {
		t.Fatalf("name = %q %q", rec.FirstName, rec.SecondName)
	}
	if rec.TransactionCode != core.CashCode {
		t.Fatalf("code = %q, want %q", rec.TransactionCode, core.CashCode)
	}
}

func TestMapGridDetailsFallBackToCodeColumn(t *testing.T) {
	grid := [][]string{
		{"h", "h", "h", "h", "h"},
		{"CODE000005", "", "", "", "300"},
	}
	res := MapGrid(grid, testGroup, DefaultMapping(), time.Now())
	rec := res.Outcomes[1].Record
	if rec.FirstName != "CODE000005" || rec.SecondName != "" {
		t.Fatalf("name = %q %q", rec.FirstName, rec.SecondName)
	}
}

func TestMapGridEmptyCodeBecomesCash(t *testing.T) {
	grid := [][]string{
		{"h", "h", "h", "h", "h"},
		{"", "", "Jane Doe", "", "150"},
	}
	res := MapGrid(grid, testGroup, DefaultMapping(), time.Now())
	if got := res.Outcomes[1].Record.TransactionCode; got != core.CashCode {
		t.Fatalf("code = %q, want %q", got, core.CashCode)
	}
}

func TestFailedRows(t *testing.T) {
	res := Result{Outcomes: []Outcome{
		{Row: 1, Accepted: true},
		{Row: 2, Accepted: true, SubmitError: "store unavailable"},
		{Row: 3, Reason: ReasonBadAmount},
	}}
	failed := res.FailedRows()
	if len(failed) != 1 || failed[0] != 2 {
		t.Fatalf("failed = %v", failed)
	}
}
