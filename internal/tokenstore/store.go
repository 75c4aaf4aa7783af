// Package tokenstore keeps the signed-in credential and user snapshot of a
// browser storage profile.
//
// Every operation degrades to a no-op when the profile has no backing storage:
// reads report an absent value and writes are skipped silently.
package tokenstore

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/example/hotel-console/internal/logging"
	"github.com/example/hotel-console/internal/persistence"
)

const (
	// AdminTokenKey is the storage key used by the admin credential helper.
	AdminTokenKey = "hotel_admin_token"
	// AuthTokenKey is the storage key used by the login flows and every page fetch.
	AuthTokenKey = "authToken"
	// UserKey holds the serialized user snapshot written at login.
	UserKey = "user"
)

// Backend is the persistent key/value storage behind one browser profile.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}

// ProfileBackend adapts a storage repository to a single profile.
type ProfileBackend struct {
	repo      persistence.StorageRepository
	profileID string
	logger    *slog.Logger
}

// NewProfileBackend binds repo to profileID. It returns nil when either is
// missing, which callers treat as unavailable storage.
func NewProfileBackend(repo persistence.StorageRepository, profileID string, logger *slog.Logger) *ProfileBackend {
	if repo == nil || strings.TrimSpace(profileID) == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileBackend{repo: repo, profileID: profileID, logger: logger}
}

func (b *ProfileBackend) log(ctx context.Context) *slog.Logger {
	return logging.Or(ctx, b.logger).With("component", "tokenstore", "profile_id", b.profileID)
}

// Get returns the stored value for key.
func (b *ProfileBackend) Get(ctx context.Context, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	entry, err := b.repo.GetEntry(ctx, b.profileID, key)
	if err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			b.log(ctx).WarnContext(ctx, "storage read failed", "key", key, "error", err)
		}
		return "", false
	}
	return entry.Value, true
}

// Set stores value under key.
func (b *ProfileBackend) Set(ctx context.Context, key, value string) {
	if b == nil {
		return
	}
	if err := b.repo.PutEntry(ctx, persistence.StorageEntry{ProfileID: b.profileID, Key: key, Value: value}); err != nil {
		b.log(ctx).WarnContext(ctx, "storage write skipped", "key", key, "error", err)
	}
}

// Remove deletes key.
func (b *ProfileBackend) Remove(ctx context.Context, key string) {
	if b == nil {
		return
	}
	if err := b.repo.DeleteEntry(ctx, b.profileID, key); err != nil {
		b.log(ctx).WarnContext(ctx, "storage delete skipped", "key", key, "error", err)
	}
}

// Store saves, retrieves and clears one bearer credential under a fixed key.
type Store struct {
	backend Backend
	key     string
}

// New returns a Store keeping its credential under key.
func New(backend Backend, key string) *Store {
	return &Store{backend: backend, key: key}
}

// NewAdmin returns the admin credential store.
func NewAdmin(backend Backend) *Store {
	return New(backend, AdminTokenKey)
}

func (s *Store) available() bool {
	return s != nil && s.backend != nil
}

// Set persists token.
func (s *Store) Set(ctx context.Context, token string) {
	if !s.available() {
		return
	}
	s.backend.Set(ctx, s.key, token)
}

// Get returns the stored token and whether one was present.
func (s *Store) Get(ctx context.Context) (string, bool) {
	if !s.available() {
		return "", false
	}
	return s.backend.Get(ctx, s.key)
}

// Remove clears the stored token.
func (s *Store) Remove(ctx context.Context) {
	if !s.available() {
		return
	}
	s.backend.Remove(ctx, s.key)
}

// IsAuthenticated reports whether a non-empty token is stored. The token is
// neither validated nor checked for expiry.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	token, ok := s.Get(ctx)
	return ok && token != ""
}
