package analyzer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/toddkasper/outage-query/pkg/model"
	"github.com/toddkasper/outage-query/pkg/notify"
	"github.com/toddkasper/outage-query/pkg/storage"
	"github.com/toddkasper/outage-query/pkg/storage/memory"
)

type fakeNotifier struct {
	published []*notify.Alert
	err       error
}

func (n *fakeNotifier) Publish(alert *notify.Alert) error {
	if n.err != nil {
		return n.err
	}
	n.published = append(n.published, alert)
	return nil
}

func testConfig() Config {
	return Config{
		Keyword:   "awsoutage",
		Window:    6 * time.Hour,
		BinWidth:  time.Hour,
		Threshold: 100,
		Cooldown:  5 * time.Hour,
	}
}

// seedBins inserts counts[k] mentions into the k-th one hour bin of the scan
// window ending at now. Timestamps sit mid-bin so no mention lands on a
// shared bin edge.
func seedBins(t *testing.T, store storage.MentionStore, now time.Time, counts []int) {
	t.Helper()

	start := now.Add(-time.Duration(len(counts)) * time.Hour)
	for k, n := range counts {
		for j := 0; j < n; j++ {
			m := &model.Mention{
				ID:        fmt.Sprintf("bin%d-%d", k, j),
				CreatedAt: start.Add(time.Duration(k)*time.Hour + time.Duration(j+1)*time.Second),
			}
			if err := store.Upsert(m); err != nil {
				t.Fatalf("seed upsert failed: %v", err)
			}
		}
	}
}

func TestRunQuietWindowDoesNotNotify(t *testing.T) {
	store := memory.NewStore()
	notifier := &fakeNotifier{}
	now := time.Unix(1700000000, 0).UTC()

	d := New(store, notifier, testConfig())
	d.now = func() time.Time { return now }

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Outcome != OutcomeNoAnomaly {
		t.Errorf("outcome = %s, want %s", report.Outcome, OutcomeNoAnomaly)
	}
	if len(report.Distribution) != 6 {
		t.Errorf("expected 6 bins, got %d", len(report.Distribution))
	}
	if report.Stdev != 0 {
		t.Errorf("expected zero deviation for empty window, got %f", report.Stdev)
	}
	if len(notifier.published) != 0 {
		t.Errorf("expected no publish, got %d", len(notifier.published))
	}
}

func TestRunSpikeNotifiesAndAdvancesCheckpoint(t *testing.T) {
	store := memory.NewStore()
	notifier := &fakeNotifier{}
	now := time.Unix(1700000000, 0).UTC()

	seedBins(t, store.Mentions(), now, []int{5, 6, 4, 5, 600, 5})

	d := New(store, notifier, testConfig())
	d.now = func() time.Time { return now }

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Outcome != OutcomeNotified {
		t.Fatalf("outcome = %s, want %s", report.Outcome, OutcomeNotified)
	}
	if len(notifier.published) != 1 {
		t.Fatalf("expected exactly one publish, got %d", len(notifier.published))
	}

	alert := notifier.published[0]
	if alert.Stdev <= 100 {
		t.Errorf("alert deviation = %f, want > 100", alert.Stdev)
	}
	if len(alert.Distribution) != 6 {
		t.Errorf("alert distribution has %d bins, want 6", len(alert.Distribution))
	}
	if alert.Keyword != "awsoutage" {
		t.Errorf("alert keyword = %q, want %q", alert.Keyword, "awsoutage")
	}

	sent, err := store.Checkpoints().Read(CheckpointLastAlert)
	if err != nil {
		t.Fatalf("checkpoint read failed: %v", err)
	}
	if !sent.Equal(now) {
		t.Errorf("checkpoint = %v, want %v", sent, now)
	}
}

func TestRunSpikeWithinCooldownDoesNotNotify(t *testing.T) {
	store := memory.NewStore()
	notifier := &fakeNotifier{}
	now := time.Unix(1700000000, 0).UTC()

	seedBins(t, store.Mentions(), now, []int{5, 6, 4, 5, 600, 5})

	lastSent := now.Add(-time.Hour)
	if err := store.Checkpoints().Write(CheckpointLastAlert, lastSent); err != nil {
		t.Fatalf("checkpoint write failed: %v", err)
	}

	d := New(store, notifier, testConfig())
	d.now = func() time.Time { return now }

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Outcome != OutcomeCoolingDown {
		t.Errorf("outcome = %s, want %s", report.Outcome, OutcomeCoolingDown)
	}
	if len(notifier.published) != 0 {
		t.Errorf("expected no publish within cooldown, got %d", len(notifier.published))
	}

	sent, err := store.Checkpoints().Read(CheckpointLastAlert)
	if err != nil {
		t.Fatalf("checkpoint read failed: %v", err)
	}
	if !sent.Equal(lastSent) {
		t.Errorf("checkpoint moved to %v, want unchanged %v", sent, lastSent)
	}
}

func TestRunSpikeAfterCooldownNotifiesAgain(t *testing.T) {
	store := memory.NewStore()
	notifier := &fakeNotifier{}
	now := time.Unix(1700000000, 0).UTC()

	seedBins(t, store.Mentions(), now, []int{5, 6, 4, 5, 600, 5})

	if err := store.Checkpoints().Write(CheckpointLastAlert, now.Add(-6*time.Hour)); err != nil {
		t.Fatalf("checkpoint write failed: %v", err)
	}

	d := New(store, notifier, testConfig())
	d.now = func() time.Time { return now }

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Outcome != OutcomeNotified {
		t.Errorf("outcome = %s, want %s", report.Outcome, OutcomeNotified)
	}
	if len(notifier.published) != 1 {
		t.Errorf("expected one publish, got %d", len(notifier.published))
	}
}

func TestRunShortWindowIsNoAnomaly(t *testing.T) {
	store := memory.NewStore()
	notifier := &fakeNotifier{}
	now := time.Unix(1700000000, 0).UTC()

	// Plenty of mentions, but the window is shorter than one bin so the
	// deviation is undefined.
	seedBins(t, store.Mentions(), now, []int{500})

	cfg := testConfig()
	cfg.Window = 30 * time.Minute

	d := New(store, notifier, cfg)
	d.now = func() time.Time { return now }

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Outcome != OutcomeNoAnomaly {
		t.Errorf("outcome = %s, want %s", report.Outcome, OutcomeNoAnomaly)
	}
	if len(notifier.published) != 0 {
		t.Errorf("expected no publish, got %d", len(notifier.published))
	}
}

// lostRaceStore wraps a storage.Interface with a checkpoint store whose
// conditional write always loses.
type lostRaceStore struct {
	storage.Interface
}

func (s *lostRaceStore) Checkpoints() storage.CheckpointStore {
	return &lostRaceCheckpoints{inner: s.Interface.Checkpoints()}
}

type lostRaceCheckpoints struct {
	inner storage.CheckpointStore
}

func (c *lostRaceCheckpoints) Read(name string) (time.Time, error) {
	return c.inner.Read(name)
}

func (c *lostRaceCheckpoints) Write(name string, value time.Time) error {
	return c.inner.Write(name, value)
}

func (c *lostRaceCheckpoints) CompareAndWrite(name string, expected, value time.Time) (bool, error) {
	return false, nil
}

func TestRunLostCheckpointRaceDoesNotNotify(t *testing.T) {
	store := memory.NewStore()
	notifier := &fakeNotifier{}
	now := time.Unix(1700000000, 0).UTC()

	seedBins(t, store.Mentions(), now, []int{5, 6, 4, 5, 600, 5})

	d := New(&lostRaceStore{Interface: store}, notifier, testConfig())
	d.now = func() time.Time { return now }

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Outcome != OutcomeCoolingDown {
		t.Errorf("outcome = %s, want %s", report.Outcome, OutcomeCoolingDown)
	}
	if len(notifier.published) != 0 {
		t.Errorf("expected no publish after losing the checkpoint race, got %d", len(notifier.published))
	}
}
