// Package report renders a group's contribution set into the two user-facing
// shapes: the WhatsApp summary text and the spreadsheet row set.
package report

import (
	"fmt"
	"strings"
	"time"

	"changia/internal/core"
)

// Attribution is the fixed label appended to every report and export.
const Attribution = "Digital Treasurer"

const firewoodSuffix = " (+🪵 Firewood)"

// dateLayout matches the dd/mm/yyyy format members expect.
const dateLayout = "02/01/2006"

// RenderText builds the plain-text summary shared verbatim in chat apps.
// The line layout is a user-facing contract; do not reorder or relabel.
func RenderText(group core.Group, records []core.Contribution, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n", strings.ToUpper(group.Name))
	fmt.Fprintf(&b, "Events: %s\n", group.Event)
	fmt.Fprintf(&b, "📅 %s\n\n", now.Format(dateLayout))
	b.WriteString("*CONTRIBUTIONS LIST:*\n")

	for i, r := range records {
		fw := ""
		if r.Firewood {
			fw = firewoodSuffix
		}
		fmt.Fprintf(&b, "%d. %s %s (%s): KES %s%s\n",
			i+1, r.FirstName, r.SecondName, r.TransactionCode, core.FormatAmount(r.Amount), fw)
	}

	fmt.Fprintf(&b, "\n💰 *TOTAL: KES %s*\n", core.FormatGrouped(core.Total(records)))
	fmt.Fprintf(&b, "\n💎 *System by %s*", Attribution)

	return b.String()
}

// TableHeader is the fixed column set handed to the tabular exporter.
var TableHeader = []string{"Date", "First Name", "Second Name", "M-Pesa Code", "Amount", "Firewood"}

// RenderTable builds the export row set: header, one row per record, a blank
// separator row and the attribution trailer. Firewood is rendered as the
// strings "Yes"/"No" for spreadsheet consumers.
func RenderTable(records []core.Contribution) [][]any {
	rows := make([][]any, 0, len(records)+3)

	header := make([]any, len(TableHeader))
	for i, h := range TableHeader {
		header[i] = h
	}
	rows = append(rows, header)

	for _, r := range records {
		rows = append(rows, Row(r))
	}

	rows = append(rows, []any{"", "", "", "", "", ""})
	rows = append(rows, []any{"", "System Developed By:", Attribution, "", "", ""})

	return rows
}

// Row renders a single record in the table column order. The worker uses it
// to append one export row per synced contribution.
func Row(r core.Contribution) []any {
	firewood := "No"
	if r.Firewood {
		firewood = "Yes"
	}
	return []any{
		r.RecordedAt.Format(dateLayout),
		r.FirstName,
		r.SecondName,
		r.TransactionCode,
		r.Amount,
		firewood,
	}
}

// FileName is the target name handed to the export collaborator.
func FileName(group core.Group) string {
	return group.Name + "_Data"
}
