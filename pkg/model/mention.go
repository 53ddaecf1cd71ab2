package model

import "time"

// Mention is a single keyword match returned by the search API. The ID is
// the upstream tweet ID and acts as the unique storage key.
type Mention struct {
	ID        string
	CreatedAt time.Time
}
