package report

import (
	"strings"
	"testing"
	"time"

	"changia/internal/core"
)

var reportTime = time.Date(2025, time.August, 30, 12, 0, 0, 0, time.UTC)

func TestRenderTextLayout(t *testing.T) {
	group := core.Group{Name: "Test", Event: core.Burial}
	records := []core.Contribution{
		{FirstName: "A", SecondName: "B", TransactionCode: "X", Amount: 100, RecordedAt: reportTime},
	}

	txt := RenderText(group, records, reportTime)

	for _, want := range []string{
		"*TEST*\n",
		"Events: Burial\n",
		"📅 30/08/2025\n",
		"*CONTRIBUTIONS LIST:*\n",
		"1. A B (X): KES 100\n",
		"💰 *TOTAL: KES 100*",
		"💎 *System by Digital Treasurer*",
	} {
		if !strings.Contains(txt, want) {
			t.Fatalf("report missing %q:\n%s", want, txt)
		}
	}
}

func TestRenderTextFirewoodAndTotal(t *testing.T) {
	group := core.Group{Name: "Njeri Wedding", Event: core.Wedding, HasFirewood: true}
	records := []core.Contribution{
		{FirstName: "Jane", SecondName: "Doe", TransactionCode: "QWE123TY90", Amount: 1000, Firewood: true, RecordedAt: reportTime},
		{FirstName: "John", SecondName: "Kamau", TransactionCode: core.CashCode, Amount: 250.5, RecordedAt: reportTime},
	}

	txt := RenderText(group, records, reportTime)

	if !strings.Contains(txt, "1. Jane Doe (QWE123TY90): KES 1000 (+🪵 Firewood)\n") {
		t.Fatalf("firewood line wrong:\n%s", txt)
	}
	if !strings.Contains(txt, "2. John Kamau (CASH): KES 250.5\n") {
		t.Fatalf("cash line wrong:\n%s", txt)
	}
	if !strings.Contains(txt, "💰 *TOTAL: KES 1,250.5*") {
		t.Fatalf("total line wrong:\n%s", txt)
	}
}

func TestRenderTextIdempotent(t *testing.T) {
	group := core.Group{Name: "G", Event: core.OtherEvent}
	records := []core.Contribution{{FirstName: "A", TransactionCode: "C", Amount: 5, RecordedAt: reportTime}}
	if RenderText(group, records, reportTime) != RenderText(group, records, reportTime) {
		t.Fatal("render not deterministic")
	}
}

func TestRenderTable(t *testing.T) {
	records := []core.Contribution{
		{FirstName: "Jane", SecondName: "Doe", TransactionCode: "X1", Amount: 100, Firewood: true, RecordedAt: reportTime},
		{FirstName: "John", SecondName: "", TransactionCode: core.CashCode, Amount: 50, RecordedAt: reportTime},
	}

	rows := RenderTable(records)

	// header + 2 data rows + blank separator + attribution
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][5] != "Firewood" {
		t.Fatalf("header wrong: %v", rows[0])
	}
	if rows[1][0] != "30/08/2025" || rows[1][1] != "Jane" || rows[1][5] != "Yes" {
		t.Fatalf("data row wrong: %v", rows[1])
	}
	if rows[2][3] != "CASH" || rows[2][5] != "No" {
		t.Fatalf("cash row wrong: %v", rows[2])
	}
	for _, cellValue := range rows[3] {
		if cellValue != "" {
			t.Fatalf("separator row not blank: %v", rows[3])
		}
	}
	if rows[4][1] != "System Developed By:" || rows[4][2] != Attribution {
		t.Fatalf("attribution row wrong: %v", rows[4])
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(core.Group{Name: "Njeri Wedding"}); got != "Njeri Wedding_Data" {
		t.Fatalf("got %q", got)
	}
}
