package core

import (
	"math"
	"testing"
	"time"
)

func TestParseEventType(t *testing.T) {
	cases := []struct {
		in   string
		want EventType
	}{
		{"Burial", Burial},
		{"Wedding", Wedding},
		{"Visiting Parents", VisitingParents},
		{"Other", OtherEvent},
		{"  Wedding ", Wedding},
		{"fundraiser", OtherEvent},
		{"", OtherEvent},
	}
	for _, tc := range cases {
		if got := ParseEventType(tc.in); got != tc.want {
			t.Fatalf("ParseEventType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGroupValidate(t *testing.T) {
	good := Group{Name: "Njeri Wedding", Event: Wedding, HasFirewood: true}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Group{Name: "", Event: Burial}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := (Group{Name: "x", Event: EventType("Party")}).Validate(); err == nil {
		t.Fatal("expected error for unknown event type")
	}
}

func TestContributionValidate(t *testing.T) {
	good := Contribution{
		GroupName:       "Test",
		FirstName:       "Jane",
		SecondName:      "Doe",
		Amount:          1000,
		TransactionCode: "QWE123TY90",
		RecordedAt:      time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amount is valid on the manual path (firewood-only members).
	zero := good
	zero.Amount = 0
	zero.TransactionCode = CashCode
	if err := zero.Validate(); err != nil {
		t.Fatalf("expected zero amount ok, got %v", err)
	}

	bads := []Contribution{
		{GroupName: "", FirstName: "A", Amount: 1, TransactionCode: CashCode},
		{GroupName: "g", FirstName: "", Amount: 1, TransactionCode: CashCode},
		{GroupName: "g", FirstName: "A", Amount: -5, TransactionCode: CashCode},
		{GroupName: "g", FirstName: "A", Amount: math.NaN(), TransactionCode: CashCode},
		{GroupName: "g", FirstName: "A", Amount: math.Inf(1), TransactionCode: CashCode},
		{GroupName: "g", FirstName: "A", Amount: 1, TransactionCode: ""},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Contribution{FirstName: "Jane", SecondName: "Doe"}).DisplayName(); got != "Jane Doe" {
		t.Fatalf("got %q", got)
	}
	if got := (Contribution{FirstName: "Jane"}).DisplayName(); got != "Jane" {
		t.Fatalf("got %q", got)
	}
}
