package attendance

import (
	"context"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/identity"
)

// EntryRepository defines data access for attendance entries.
type EntryRepository interface {
	// InsertNew writes entries, skipping any whose (date, device_user_id,
	// time_in) identity already exists, and returns how many were added.
	// Safe to re-run over the same device window.
	InsertNew(ctx context.Context, entries []Entry) (int, error)

	// ListByDate returns every entry for one local calendar day.
	ListByDate(ctx context.Context, date time.Time) ([]Entry, error)

	// ListByDates returns every entry for the given days, for the sync diff.
	ListByDates(ctx context.Context, dates []time.Time) ([]Entry, error)

	// AttachEmployee links a late-resolved employee to an existing entry.
	// The only mutation entries ever receive.
	AttachEmployee(ctx context.Context, entryID string, employeeID string, method identity.Method) error
}
