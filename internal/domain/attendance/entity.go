package attendance

import (
	"fmt"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/identity"
)

// DedupPolicy is the rule for collapsing repeated same-day punches.
type DedupPolicy string

const (
	// PolicyFirstPerDay keeps the earliest punch per employee per day.
	PolicyFirstPerDay DedupPolicy = "one-per-employee-per-day"
	// PolicyAllPunches keeps every punch unmerged.
	PolicyAllPunches DedupPolicy = "all-punches"
)

// ParsePolicy accepts the canonical policy names plus the short aliases the
// dashboard sends as query parameters.
func ParsePolicy(s string) (DedupPolicy, error) {
	switch s {
	case "", "first", string(PolicyFirstPerDay):
		return PolicyFirstPerDay, nil
	case "all", string(PolicyAllPunches):
		return PolicyAllPunches, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Status is the derived display status of an entry.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	// StatusEarlyMorning marks punches in the configured very-early window.
	// A hint for operators auditing device clock rollovers, not an error.
	StatusEarlyMorning Status = "early-morning"
)

// Entry is one persisted daily attendance record. Entries are created by a
// sync pass and never mutated afterwards, except to attach a late-resolved
// employee reference.
type Entry struct {
	ID             string
	Date           time.Time // local calendar day, midnight in deployment tz
	DeviceUserID   string
	EmployeeNumber string
	TimeIn         time.Time
	Status         Status
	// ResolvedEmployeeID stays nil until some resolution pass succeeds.
	// MethodNone implies nil and vice versa.
	ResolvedEmployeeID *string
	ResolutionMethod   identity.Method
	CreatedAt          time.Time

	// Joined for display
	EmployeeName *string
}

// Key identifies an entry for the sync diff.
func (e Entry) Key() string {
	return fmt.Sprintf("%s|%s|%d", e.Date.Format("2006-01-02"), e.DeviceUserID, e.TimeIn.Unix())
}
