package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/hotel-console/internal/persistence/sqlite"
	"github.com/example/hotel-console/internal/tokenstore"
)

// SQLiteHarness provides migrated profile storage in a temporary directory.
type SQLiteHarness struct {
	Storage *sqlite.Storage
	Clock   *Clock
}

// NewSQLiteHarness opens and migrates a fresh database that is closed when
// the test ends.
func NewSQLiteHarness(t testing.TB) *SQLiteHarness {
	t.Helper()

	clock := NewClock(ReferenceTime())
	storage, err := sqlite.OpenWithClock(filepath.Join(t.TempDir(), "console.db"), clock.NowFunc())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return &SQLiteHarness{Storage: storage, Clock: clock}
}

// Seed writes key/value pairs into profileID.
func (h *SQLiteHarness) Seed(t testing.TB, profileID string, values map[string]string) {
	t.Helper()
	backend := h.Backend(profileID)
	for key, value := range values {
		backend.Set(context.Background(), key, value)
	}
}

// Backend returns the token store backend for profileID.
func (h *SQLiteHarness) Backend(profileID string) *tokenstore.ProfileBackend {
	return tokenstore.NewProfileBackend(h.Storage, profileID, nil)
}

// Value reads key from profileID.
func (h *SQLiteHarness) Value(profileID, key string) (string, bool) {
	return h.Backend(profileID).Get(context.Background(), key)
}
