package statement

import (
	"strings"
	"time"

	"changia/internal/core"
)

// ColumnMapping pins which grid columns feed each record field. The default
// matches the M-Pesa statement export layout and must stay compatible with
// it; deployments importing other layouts override via configuration.
type ColumnMapping struct {
	HeaderRows      int // leading rows skipped as headers
	Code            int // transaction code column
	Details         int // free-text payer details column
	DetailsFallback int // used when the details cell is empty
	Amount          int // amount column
	AmountFallback  int // used when the amount cell is empty
}

// DefaultMapping is the upstream M-Pesa export layout: code in column 0,
// details in column 2 falling back to 0, amount in column 4 falling back to 1.
func DefaultMapping() ColumnMapping {
	return ColumnMapping{
		HeaderRows:      1,
		Code:            0,
		Details:         2,
		DetailsFallback: 0,
		Amount:          4,
		AmountFallback:  1,
	}
}

// Rejection reasons surfaced per row. Rejected rows are an expected part of
// statement input, not errors.
const (
	ReasonHeader    = "header row"
	ReasonShortRow  = "fewer than 3 cells"
	ReasonBadAmount = "amount missing or not numeric"
)

// Outcome is the fate of one grid row. SubmitError is filled in later by the
// import service when persistence of an accepted row fails, so callers can
// retry exactly the rows that need it.
type Outcome struct {
	Row         int               `json:"row"`
	Accepted    bool              `json:"accepted"`
	Reason      string            `json:"reason,omitempty"`
	Record      core.Contribution `json:"-"`
	SubmitError string            `json:"submit_error,omitempty"`
}

// Result carries every row's outcome plus the accepted count. Accepted
// reflects validation only; submission failures do not retract it.
type Result struct {
	Outcomes []Outcome `json:"outcomes"`
	Accepted int       `json:"accepted"`
}

// FailedRows returns the indexes of accepted rows whose submission failed.
func (r *Result) FailedRows() []int {
	var failed []int
	for _, o := range r.Outcomes {
		if o.Accepted && o.SubmitError != "" {
			failed = append(failed, o.Row)
		}
	}
	return failed
}

// MapGrid maps a tokenized grid onto candidate contribution records for the
// given group. Invalid rows are rejected with a reason, never raised as
// errors. Firewood is always false here: the statement export carries no
// firewood information, so only manual entry can set it.
func MapGrid(grid [][]string, group core.Group, m ColumnMapping, now time.Time) Result {
	res := Result{Outcomes: make([]Outcome, 0, len(grid))}

	for i, row := range grid {
		if i < m.HeaderRows {
			res.Outcomes = append(res.Outcomes, Outcome{Row: i, Reason: ReasonHeader})
			continue
		}
		if len(row) < 3 {
			res.Outcomes = append(res.Outcomes, Outcome{Row: i, Reason: ReasonShortRow})
			continue
		}

		code := cell(row, m.Code)
		details := cell(row, m.Details)
		if details == "" {
			details = cell(row, m.DetailsFallback)
		}
		rawAmount := cell(row, m.Amount)
		if rawAmount == "" {
			rawAmount = cell(row, m.AmountFallback)
		}

		amount, err := core.ParseAmount(rawAmount)
		if err != nil || amount == 0 {
			res.Outcomes = append(res.Outcomes, Outcome{Row: i, Reason: ReasonBadAmount})
			continue
		}

		first, second := splitName(details)
		if code == "" {
			code = core.CashCode
		}

		res.Outcomes = append(res.Outcomes, Outcome{
			Row:      i,
			Accepted: true,
			Record: core.Contribution{
				GroupName:       group.Name,
				FirstName:       first,
				SecondName:      second,
				Amount:          amount,
				TransactionCode: code,
				Firewood:        false,
				RecordedAt:      now,
			},
		})
		res.Accepted++
	}

	return res
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// splitName takes the first whitespace token as the first name and the
// second token as the second name; remaining tokens are dropped, matching
// the statement export's two-part payer names.
func splitName(details string) (first, second string) {
	fields := strings.Fields(details)
	first = "Unknown"
	if len(fields) > 0 {
		first = fields[0]
	}
	if len(fields) > 1 {
		second = fields[1]
	}
	return first, second
}
