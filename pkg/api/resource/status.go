package resource

import "time"

type StatusResource struct {
	Keyword       string     `json:"keyword"`
	StoredCount   int        `json:"storedCount"`
	LastAlertSent *time.Time `json:"lastAlertSent,omitempty"`
}

type DistributionResource struct {
	Distribution []int   `json:"distribution"`
	Stdev        float64 `json:"stdev"`
	WindowHours  float64 `json:"windowHours"`
	Threshold    float64 `json:"threshold"`
}
