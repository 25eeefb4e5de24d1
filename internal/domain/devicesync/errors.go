package devicesync

import "errors"

var (
	// ErrSyncInProgress rejects a trigger while another pass is in flight.
	// Manual re-trigger is the retry mechanism; nothing is queued.
	ErrSyncInProgress = errors.New("a sync pass is already in progress")

	// ErrPersistenceWrite wraps failures in the Persisting stage.
	ErrPersistenceWrite = errors.New("failed to persist attendance entries")

	// ErrNoSyncYet means the ledger has no rows, i.e. no pass ever ran.
	ErrNoSyncYet = errors.New("no sync has been recorded yet")
)
