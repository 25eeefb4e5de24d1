package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/devicesync"
)

// NewSyncScheduler wires the device sync pass as the recurring job.
func NewSyncScheduler(syncService devicesync.SyncService, interval time.Duration) *Scheduler {
	return NewScheduler("device_attendance_sync", interval, func(ctx context.Context) error {
		return runSyncPass(ctx, syncService)
	})
}

// runSyncPass triggers one pass. A manual trigger racing the timer is
// normal operation: the pass gate rejects the loser and the timer just
// waits for its next tick.
func runSyncPass(ctx context.Context, syncService devicesync.SyncService) error {
	result, err := syncService.Run(ctx)
	if err != nil {
		if errors.Is(err, devicesync.ErrSyncInProgress) {
			slog.Info("Scheduled sync skipped, another pass is in flight")
			return nil
		}
		return err
	}

	if !result.Success {
		slog.Warn("Scheduled sync pass failed", "message", result.Message)
		return nil
	}

	slog.Info("Scheduled sync pass completed",
		"records", result.RecordCount,
		"added", result.AddedCount)
	return nil
}
