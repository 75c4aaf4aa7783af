package persistence

import "time"

// StorageEntry is a single key/value pair held for one browser storage profile.
type StorageEntry struct {
	ProfileID string
	Key       string
	Value     string
	UpdatedAt time.Time
}
