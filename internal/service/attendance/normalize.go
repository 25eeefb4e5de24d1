package attendance

import (
	"sort"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/attendance"
	"github.com/presensi-hr/hris-backend-go/internal/domain/device"
	"github.com/presensi-hr/hris-backend-go/internal/domain/identity"
)

// Normalizer converts raw device punches into calendar-day attendance
// entries under a dedup policy. Normalize is a pure function: same punches
// and policy in, identical entries out, which is what cache correctness and
// idempotent re-sync rest on.
type Normalizer struct {
	loc               *time.Location
	earlyBoundaryHour int
	lateAfter         time.Duration
}

// NewNormalizer builds a normalizer for the deployment's local day boundary.
// earlyBoundaryHour is the exclusive end of the very-early-morning window
// (punches with local hour in [0, boundary) are flagged); lateAfter is the
// clock offset from local midnight at or past which a punch counts as late.
func NewNormalizer(loc *time.Location, earlyBoundaryHour int, lateAfter time.Duration) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{
		loc:               loc,
		earlyBoundaryHour: earlyBoundaryHour,
		lateAfter:         lateAfter,
	}
}

// Normalize groups punches by local calendar day and device user and applies
// the policy. The second return value is how many punches the policy
// discarded, retained for pass diagnostics. Exact duplicate punches (same
// user, same instant) collapse under either policy.
func (n *Normalizer) Normalize(punches []device.RawPunch, policy attendance.DedupPolicy) ([]attendance.Entry, int) {
	type groupKey struct {
		day  string
		user string
	}

	sorted := make([]device.RawPunch, len(punches))
	copy(sorted, punches)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].DeviceUserID < sorted[j].DeviceUserID
	})

	entries := make([]attendance.Entry, 0, len(sorted))
	discarded := 0
	firstOfGroup := make(map[groupKey]bool)
	seen := make(map[groupKey]map[int64]bool)

	for _, punch := range sorted {
		local := punch.Timestamp.In(n.loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, n.loc)
		key := groupKey{day: day.Format("2006-01-02"), user: punch.DeviceUserID}

		if seen[key] == nil {
			seen[key] = make(map[int64]bool)
		}
		if seen[key][punch.Timestamp.Unix()] {
			discarded++
			continue
		}
		seen[key][punch.Timestamp.Unix()] = true

		if policy == attendance.PolicyFirstPerDay && firstOfGroup[key] {
			// The slice is time-sorted, so the entry already emitted for
			// this group holds the earliest punch.
			discarded++
			continue
		}
		firstOfGroup[key] = true

		entries = append(entries, attendance.Entry{
			Date:             day,
			DeviceUserID:     punch.DeviceUserID,
			EmployeeNumber:   punch.EmployeeNumber,
			TimeIn:           punch.Timestamp,
			Status:           n.deriveStatus(local),
			ResolutionMethod: identity.MethodNone,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		if entries[i].DeviceUserID != entries[j].DeviceUserID {
			return entries[i].DeviceUserID < entries[j].DeviceUserID
		}
		return entries[i].TimeIn.Before(entries[j].TimeIn)
	})

	return entries, discarded
}

// deriveStatus classifies a punch by its local wall-clock time. The
// early-morning window exists because device clocks occasionally roll over
// at day boundaries; operators audit those entries instead of losing them.
func (n *Normalizer) deriveStatus(local time.Time) attendance.Status {
	if local.Hour() < n.earlyBoundaryHour {
		return attendance.StatusEarlyMorning
	}

	sinceMidnight := time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second
	if n.lateAfter > 0 && sinceMidnight >= n.lateAfter {
		return attendance.StatusLate
	}

	return attendance.StatusPresent
}

// Location exposes the deployment timezone for callers parsing day strings.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}
