package notify

import "time"

// Alert is the message published when elevated activity is detected.
type Alert struct {
	Keyword      string    `json:"keyword"`
	Distribution []int     `json:"distribution"`
	Stdev        float64   `json:"stdev"`
	WindowHours  float64   `json:"windowHours"`
	SentAt       time.Time `json:"sentAt"`
}

// Notifier publishes alerts to zero or more subscribers. Delivery is
// fire-and-forget best-effort; who gets notified is decided by whatever
// subscribes to the channel, not by the caller.
type Notifier interface {
	Publish(alert *Alert) error
}
