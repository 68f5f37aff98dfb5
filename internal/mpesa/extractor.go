// Package mpesa extracts contribution fields from pasted mobile-money
// confirmation messages. Safaricom messages follow a near-fixed template, so
// independent regex rules pull out what they can and leave the rest empty;
// the manual-entry form lets the user correct any field before saving.
package mpesa

import (
	"regexp"
	"strings"
)

// Notification holds the fields recovered from one message. Amount stays in
// string form; parsing happens at record-acceptance time. Missing fields are
// empty strings, never an error.
type Notification struct {
	TransactionCode string `json:"transaction_code"`
	Amount          string `json:"amount"`
	FirstName       string `json:"first_name"`
	SecondName      string `json:"second_name"`
}

// Recognizer matches one provider's message template. Confidence is the
// fraction of fields the template recovered, so additional provider formats
// can be registered without touching calling code.
type Recognizer interface {
	Name() string
	Recognize(message string) (Notification, float64)
}

// Safaricom confirmation template, e.g.
//
//	QWE123TY90 Confirmed. You have received Ksh1,500.00 from JANE DOE 0722123456 on ...
//
// The three rules are independent: a template drift that breaks one field
// still lets the others through.
var (
	codeRe   = regexp.MustCompile(`^([A-Z0-9]{10})\s`)
	amountRe = regexp.MustCompile(`Ksh([\d,]+\.\d{2})`)
	nameRe   = regexp.MustCompile(`from\s(.*?)\s\d{10}`)
)

type safaricom struct{}

func (safaricom) Name() string { return "safaricom" }

func (safaricom) Recognize(message string) (Notification, float64) {
	var n Notification
	matched := 0

	if m := codeRe.FindStringSubmatch(message); m != nil {
		n.TransactionCode = m[1]
		matched++
	}
	if m := amountRe.FindStringSubmatch(message); m != nil {
		n.Amount = strings.ReplaceAll(m[1], ",", "")
		matched++
	}
	if m := nameRe.FindStringSubmatch(message); m != nil {
		fields := strings.Fields(m[1])
		if len(fields) > 0 {
			n.FirstName = fields[0]
			n.SecondName = strings.Join(fields[1:], " ")
			matched++
		}
	}

	return n, float64(matched) / 3
}

// DefaultRecognizers is the registered template set, one per provider format.
var DefaultRecognizers = []Recognizer{safaricom{}}

// Extract runs every registered recognizer over the message and returns the
// highest-confidence result. It never fails; a message nothing matches comes
// back as an all-empty Notification.
func Extract(message string) Notification {
	n, _, _ := Best(message)
	return n
}

// Best is Extract plus provenance: which recognizer won and the fraction of
// fields it recovered.
func Best(message string) (Notification, string, float64) {
	best := Notification{}
	bestName := ""
	bestScore := -1.0
	for _, r := range DefaultRecognizers {
		n, score := r.Recognize(message)
		if score > bestScore {
			best, bestName, bestScore = n, r.Name(), score
		}
	}
	return best, bestName, bestScore
}
