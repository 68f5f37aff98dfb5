package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Burial          EventType = "Burial"
	Wedding         EventType = "Wedding"
	VisitingParents EventType = "Visiting Parents"
	OtherEvent      EventType = "Other"
)

// CashCode is the transaction code recorded when no mobile-money code exists.
const CashCode = "CASH"

type (
	EventType string

	// Group is the read-only context a contribution belongs to. Creation and
	// editing happen through an administrative surface; the engine only needs
	// the name (filter key), the event category and the firewood flag.
	Group struct {
		ID          int64
		Name        string
		Event       EventType
		HasFirewood bool
		CreatedAt   time.Time
	}

	// Contribution is one accepted contribution. Records are immutable once
	// created; corrections go through delete and re-entry.
	Contribution struct {
		ID              int64
		GroupName       string
		FirstName       string
		SecondName      string
		Amount          float64
		TransactionCode string
		Firewood        bool
		RecordedAt      time.Time
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyFirstName = errors.New("empty first name")
	ErrEmptyGroupName = errors.New("empty group name")
	ErrInvalidEvent   = errors.New("invalid event type")
)

// ParseEventType maps free-form input onto the fixed event enumeration,
// defaulting unknown values to Other.
func ParseEventType(s string) EventType {
	switch strings.TrimSpace(s) {
	case string(Burial):
		return Burial
	case string(Wedding):
		return Wedding
	case string(VisitingParents):
		return VisitingParents
	default:
		return OtherEvent
	}
}

func (e EventType) Validate() error {
	switch e {
	case Burial, Wedding, VisitingParents, OtherEvent:
		return nil
	}
	return ErrInvalidEvent
}

func (g Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGroupName
	}
	if len(g.Name) > 200 {
		return errors.New("group name too long (max 200 characters)")
	}
	return g.Event.Validate()
}

// Validate checks the invariants a record must hold before acceptance.
// Amount zero is allowed here: the manual-entry path records firewood-only
// members with a zero amount. The import pipeline applies its own stricter
// non-zero rule before building a Contribution.
func (c Contribution) Validate() error {
	if strings.TrimSpace(c.GroupName) == "" {
		return ErrEmptyGroupName
	}
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) || c.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(c.TransactionCode) == "" {
		return errors.New("empty transaction code (use CASH for cash entries)")
	}
	return nil
}

// DisplayName joins the split name parts for rendering.
func (c Contribution) DisplayName() string {
	if c.SecondName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.SecondName
}
