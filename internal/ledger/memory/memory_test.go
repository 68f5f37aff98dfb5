package memory

import (
	"context"
	"testing"
	"time"

	"changia/internal/core"
)

func TestAppendAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	older := core.Contribution{
		GroupName: "G", FirstName: "A", Amount: 100,
		TransactionCode: core.CashCode, RecordedAt: time.Now().Add(-time.Hour),
	}
	newer := older
	newer.FirstName = "B"
	newer.RecordedAt = time.Now()

	if _, err := s.Append(ctx, older); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.Append(ctx, newer); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.ListContributions(ctx, "G")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].FirstName != "B" {
		t.Fatalf("expected newest first, got %q", got[0].FirstName)
	}

	other, err := s.ListContributions(ctx, "other")
	if err != nil || len(other) != 0 {
		t.Fatalf("expected empty set for other group, got %v, %v", other, err)
	}
}

func TestAppendValidates(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), core.Contribution{GroupName: "G"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGroups(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateGroup(ctx, core.Group{Name: "Njeri Wedding", Event: core.Wedding, HasFirewood: true})
	if err != nil || id == 0 {
		t.Fatalf("create: %v, %d", err, id)
	}

	g, err := s.GetGroup(ctx, "Njeri Wedding")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !g.HasFirewood || g.Event != core.Wedding {
		t.Fatalf("group = %+v", g)
	}

	if _, err := s.GetGroup(ctx, "missing"); err == nil {
		t.Fatal("expected not-found error")
	}

	all, err := s.ListGroups(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("list: %v, %d", err, len(all))
	}
}
