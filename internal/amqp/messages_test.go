package amqp

import (
	"testing"
	"time"
)

func TestAccountSyncMessageRoundTrip(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	msg := NewAccountSyncMessage(7, 42, start, end)
	if msg.JobID == "" {
		t.Fatal("job id not assigned")
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not assigned")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := AccountSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.JobID != msg.JobID || got.UserID != 7 || got.AccountID != 42 {
		t.Errorf("got %+v", got)
	}
	if !got.StartDate.Equal(start) || !got.EndDate.Equal(end) {
		t.Errorf("dates = %v / %v", got.StartDate, got.EndDate)
	}
}

func TestAccountSyncMessageUniqueJobIDs(t *testing.T) {
	a := NewAccountSyncMessage(1, 1, time.Now(), time.Now())
	b := NewAccountSyncMessage(1, 1, time.Now(), time.Now())
	if a.JobID == b.JobID {
		t.Error("job ids must be unique per message")
	}
}

func TestAccountSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := AccountSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
