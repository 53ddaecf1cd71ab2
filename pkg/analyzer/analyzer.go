package analyzer

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/toddkasper/outage-query/pkg/notify"
	"github.com/toddkasper/outage-query/pkg/storage"
)

// CheckpointLastAlert is the checkpoint the detector uses to remember when
// the last notification went out.
const CheckpointLastAlert = "last_alert_sent"

// Outcome tells what a detector run decided.
type Outcome string

const (
	// OutcomeNoAnomaly means the deviation stayed below the threshold.
	OutcomeNoAnomaly = Outcome("no_anomaly")
	// OutcomeCoolingDown means the deviation crossed the threshold but a
	// notification went out too recently, or a concurrent run won the
	// checkpoint race.
	OutcomeCoolingDown = Outcome("cooling_down")
	// OutcomeNotified means an alert was published.
	OutcomeNotified = Outcome("notified")
)

// Config contains the detection tunables.
type Config struct {
	// Keyword is only carried into the alert message.
	Keyword string
	// Window is the trailing scan window.
	Window time.Duration
	// BinWidth is the width of one counting bin.
	BinWidth time.Duration
	// Threshold is the standard deviation above which activity is anomalous.
	Threshold float64
	// Cooldown is the minimum time between two notifications.
	Cooldown time.Duration
}

// Report describes a single detector run.
type Report struct {
	Outcome      Outcome
	Distribution []int
	Stdev        float64
}

// Detector scans the mention store over a trailing window, bins the mentions,
// and publishes an alert when the spread of bin counts crosses the threshold.
//
// The "last alert" checkpoint is advanced with an atomic compare-and-write
// before publishing, so concurrent runs notify at most once per cooldown. The
// trade-off: if the publish itself fails after the checkpoint moved, that
// notification is lost until the next spike past the cooldown.
type Detector struct {
	store    storage.Interface
	notifier notify.Notifier
	cfg      Config

	now func() time.Time
}

// New creates a Detector on top of the given store and notifier.
func New(store storage.Interface, notifier notify.Notifier, cfg Config) *Detector {
	return &Detector{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Config returns the detection tunables the detector was created with.
func (d *Detector) Config() Config {
	return d.cfg
}

// Snapshot computes the current distribution and deviation without touching
// the checkpoint or the notifier.
func (d *Detector) Snapshot() (*Report, error) {
	endTime := d.now()
	startTime := endTime.Add(-d.cfg.Window)

	mentions, err := d.store.Mentions().ScanRange(startTime, endTime)
	if err != nil {
		return nil, err
	}

	ts := make([]int64, 0, len(mentions))
	for _, m := range mentions {
		ts = append(ts, m.CreatedAt.Unix())
	}

	distribution := distribute(ts, startTime.Unix(), endTime.Unix(), int64(d.cfg.BinWidth.Seconds()))

	return &Report{
		Outcome:      OutcomeNoAnomaly,
		Distribution: distribution,
		Stdev:        stdev(distribution),
	}, nil
}

// Run performs one detection pass.
func (d *Detector) Run(ctx context.Context) (*Report, error) {
	report, err := d.Snapshot()
	if err != nil {
		return nil, err
	}

	// A window producing fewer than two bins has no defined deviation.
	if len(report.Distribution) < 2 {
		log.WithField("bins", len(report.Distribution)).Debug("Window too short for deviation")
		return report, nil
	}

	log.WithFields(log.Fields{
		"distribution": report.Distribution,
		"stdev":        fmt.Sprintf("%.2f", report.Stdev),
	}).Info("Computed mention distribution")

	if report.Stdev < d.cfg.Threshold {
		log.Info("Standard deviation within boundaries")
		return report, nil
	}

	now := d.now()

	lastSent, err := d.store.Checkpoints().Read(CheckpointLastAlert)
	if err != nil && err != storage.ErrNotFound {
		return nil, err
	}

	if lastSent.After(now.Add(-d.cfg.Cooldown)) {
		log.WithField("last_sent", lastSent).Info("Too soon to send another notification")
		report.Outcome = OutcomeCoolingDown
		return report, nil
	}

	// Advance the checkpoint first. Losing the race means another run is
	// already notifying.
	ok, err := d.store.Checkpoints().CompareAndWrite(CheckpointLastAlert, lastSent, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Info("Another run won the notification checkpoint")
		report.Outcome = OutcomeCoolingDown
		return report, nil
	}

	alert := &notify.Alert{
		Keyword:      d.cfg.Keyword,
		Distribution: report.Distribution,
		Stdev:        report.Stdev,
		WindowHours:  d.cfg.Window.Hours(),
		SentAt:       now,
	}
	if err := d.notifier.Publish(alert); err != nil {
		return nil, err
	}

	report.Outcome = OutcomeNotified
	return report, nil
}
