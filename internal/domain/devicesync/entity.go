package devicesync

import (
	"time"
)

// SyncStatus is one row of the sync ledger: the single source of truth for
// "when did we last talk to the device and how did it go". Written
// unconditionally at the end of every pass, failed ones included.
type SyncStatus struct {
	ID             string
	SyncedAt       time.Time
	Success        bool
	RecordCount    int
	AddedCount     int
	Message        string
	DeviceEndpoint string
}
