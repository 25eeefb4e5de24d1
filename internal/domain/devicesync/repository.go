package devicesync

import (
	"context"
)

// LedgerRepository is the durable sync status ledger.
type LedgerRepository interface {
	// Record appends one pass outcome and returns the stored row.
	Record(ctx context.Context, status SyncStatus) (SyncStatus, error)

	// Latest returns the most recent row, or ErrNoSyncYet.
	Latest(ctx context.Context) (SyncStatus, error)

	// History returns up to limit rows, newest first.
	History(ctx context.Context, limit int) ([]SyncStatus, error)
}
