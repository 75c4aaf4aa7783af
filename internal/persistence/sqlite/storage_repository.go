package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/hotel-console/internal/persistence"
)

var _ persistence.StorageRepository = (*Storage)(nil)

// GetEntry retrieves a single key of a storage profile.
func (s *Storage) GetEntry(ctx context.Context, profileID, key string) (persistence.StorageEntry, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" || key == "" {
		return persistence.StorageEntry{}, persistence.ErrNotFound
	}

	query := `
		SELECT profile_id, key, value, updated_at
		FROM storage_entries
		WHERE profile_id = ? AND key = ?
	`

	var entry persistence.StorageEntry
	var updatedAt string
	err := s.helper.QueryRow(ctx, query, profileID, key).Scan(
		&entry.ProfileID,
		&entry.Key,
		&entry.Value,
		&updatedAt,
	)
	if err != nil {
		return persistence.StorageEntry{}, s.mapper.MapError(err)
	}

	if entry.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.StorageEntry{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return entry, nil
}

// PutEntry inserts or replaces a key of a storage profile.
func (s *Storage) PutEntry(ctx context.Context, entry persistence.StorageEntry) error {
	entry.ProfileID = strings.TrimSpace(entry.ProfileID)
	if entry.ProfileID == "" || entry.Key == "" {
		return persistence.ErrConstraintViolation
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = s.now()
	}

	query := `
		INSERT INTO storage_entries (profile_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (profile_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := s.helper.Exec(ctx, query, entry.ProfileID, entry.Key, entry.Value, formatTimestamp(entry.UpdatedAt)); err != nil {
		return s.mapper.MapError(err)
	}
	return nil
}

// DeleteEntry removes a key from a storage profile. Missing keys are not an error.
func (s *Storage) DeleteEntry(ctx context.Context, profileID, key string) error {
	if _, err := s.helper.Exec(ctx, `DELETE FROM storage_entries WHERE profile_id = ? AND key = ?`, strings.TrimSpace(profileID), key); err != nil {
		return s.mapper.MapError(err)
	}
	return nil
}

// ClearProfile removes every key held by a storage profile.
func (s *Storage) ClearProfile(ctx context.Context, profileID string) error {
	if _, err := s.helper.Exec(ctx, `DELETE FROM storage_entries WHERE profile_id = ?`, strings.TrimSpace(profileID)); err != nil {
		return s.mapper.MapError(err)
	}
	return nil
}

// TouchProfile marks every entry of a profile as used now so that reads keep
// the profile away from the stale sweep. Unknown profiles are ignored.
func (s *Storage) TouchProfile(ctx context.Context, profileID string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil
	}
	if _, err := s.helper.Exec(ctx, `UPDATE storage_entries SET updated_at = ? WHERE profile_id = ?`, formatTimestamp(s.now()), profileID); err != nil {
		return s.mapper.MapError(err)
	}
	return nil
}

// DeleteStaleProfiles removes profiles whose newest entry is older than before
// and reports how many entries were dropped.
func (s *Storage) DeleteStaleProfiles(ctx context.Context, before time.Time) (int64, error) {
	var removed int64
	err := s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			DELETE FROM storage_entries
			WHERE profile_id IN (
				SELECT profile_id
				FROM storage_entries
				GROUP BY profile_id
				HAVING MAX(updated_at) < ?
			)
		`, formatTimestamp(before))
		if err != nil {
			return s.mapper.MapError(err)
		}
		removed, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
