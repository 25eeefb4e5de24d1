package devicesync

import (
	"context"
)

// SyncService coordinates sync passes and exposes the ledger.
type SyncService interface {
	// Run executes one full pass and returns its outcome. A device or
	// persistence failure yields a Result with Success=false, not an error;
	// ErrSyncInProgress is returned when another pass holds the gate.
	Run(ctx context.Context) (Result, error)

	// LatestStatus returns the most recent ledger row.
	LatestStatus(ctx context.Context) (SyncStatus, error)

	// StatusHistory returns up to limit ledger rows, newest first.
	StatusHistory(ctx context.Context, limit int) ([]SyncStatus, error)
}
