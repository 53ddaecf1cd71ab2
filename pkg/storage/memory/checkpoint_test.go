package memory

import (
	"testing"
	"time"

	"github.com/toddkasper/outage-query/pkg/storage"
)

func TestCheckpointReadNotFound(t *testing.T) {
	s := NewStore()

	if _, err := s.Checkpoints().Read("last_alert_sent"); err != storage.ErrNotFound {
		t.Errorf("expected ErrNotFound for unwritten checkpoint, got %v", err)
	}
}

func TestCheckpointWriteRead(t *testing.T) {
	s := NewStore()

	value := time.Unix(1700000000, 0)
	if err := s.Checkpoints().Write("last_alert_sent", value); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := s.Checkpoints().Read("last_alert_sent")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !got.Equal(value) {
		t.Errorf("read %v, want %v", got, value)
	}
}

func TestCheckpointCompareAndWrite(t *testing.T) {
	s := NewStore()

	first := time.Unix(1700000000, 0)
	second := time.Unix(1700003600, 0)

	// Zero expected creates the missing checkpoint.
	ok, err := s.Checkpoints().CompareAndWrite("last_alert_sent", time.Time{}, first)
	if err != nil {
		t.Fatalf("compare-and-write failed: %v", err)
	}
	if !ok {
		t.Fatal("expected create of missing checkpoint to succeed")
	}

	// A stale expected value must lose.
	ok, err = s.Checkpoints().CompareAndWrite("last_alert_sent", time.Time{}, second)
	if err != nil {
		t.Fatalf("compare-and-write failed: %v", err)
	}
	if ok {
		t.Fatal("expected stale compare-and-write to fail")
	}

	// The current value wins.
	ok, err = s.Checkpoints().CompareAndWrite("last_alert_sent", first, second)
	if err != nil {
		t.Fatalf("compare-and-write failed: %v", err)
	}
	if !ok {
		t.Fatal("expected matching compare-and-write to succeed")
	}

	got, err := s.Checkpoints().Read("last_alert_sent")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !got.Equal(second) {
		t.Errorf("read %v, want %v", got, second)
	}
}
