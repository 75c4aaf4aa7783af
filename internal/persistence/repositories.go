package persistence

import (
	"context"
	"time"
)

// StorageRepository persists the key/value entries that make up a browser
// storage profile. Profiles are created implicitly by their first write.
type StorageRepository interface {
	GetEntry(ctx context.Context, profileID, key string) (StorageEntry, error)
	PutEntry(ctx context.Context, entry StorageEntry) error
	DeleteEntry(ctx context.Context, profileID, key string) error
	ClearProfile(ctx context.Context, profileID string) error
	TouchProfile(ctx context.Context, profileID string) error
	DeleteStaleProfiles(ctx context.Context, before time.Time) (int64, error)
}
