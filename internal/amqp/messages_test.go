package amqp

import (
	"testing"
	"time"
)

func TestContributionSyncMessageRoundTrip(t *testing.T) {
	msg := NewContributionSyncMessage(42)
	if msg.ID != 42 {
		t.Fatalf("id = %d", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ContributionSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("round-trip id = %d", got.ID)
	}
	if !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) && got.Timestamp.Unix() != msg.Timestamp.Unix() {
		t.Fatalf("timestamp changed: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestContributionSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ContributionSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}
