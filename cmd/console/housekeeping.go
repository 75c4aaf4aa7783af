package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/hotel-console/internal/persistence"
)

// runHousekeeping drops storage profiles idle for longer than ttl, once at
// start and then every interval until ctx ends.
func runHousekeeping(ctx context.Context, repo persistence.StorageRepository, ttl, interval time.Duration, now func() time.Time, logger *slog.Logger) {
	if repo == nil || ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		sweepProfiles(ctx, repo, ttl, now, logger)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func sweepProfiles(ctx context.Context, repo persistence.StorageRepository, ttl time.Duration, now func() time.Time, logger *slog.Logger) {
	cutoff := now().Add(-ttl)
	removed, err := repo.DeleteStaleProfiles(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			logger.ErrorContext(ctx, "failed to remove stale profiles", "error", err)
		}
		return
	}
	if removed > 0 {
		logger.InfoContext(ctx, "removed stale profiles", "count", removed, "cutoff", cutoff)
	}
}
