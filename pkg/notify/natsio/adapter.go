package natsio

import (
	"encoding/json"

	nats "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/toddkasper/outage-query/pkg/notify"
)

type natsAdapter struct {
	nc      *nats.Conn
	subject string
}

// NewNotifier creates a notify.Notifier that publishes JSON-encoded alerts
// to the given NATS subject.
func NewNotifier(nc *nats.Conn, subject string) notify.Notifier {
	return &natsAdapter{
		nc:      nc,
		subject: subject,
	}
}

func (a *natsAdapter) Publish(alert *notify.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return errors.Wrap(err, "failed to marshal alert")
	}

	if err := a.nc.Publish(a.subject, data); err != nil {
		return errors.Wrap(err, "failed to publish alert")
	}

	log.WithFields(log.Fields{
		"subject": a.subject,
		"keyword": alert.Keyword,
	}).Info("Published alert")

	return nil
}
