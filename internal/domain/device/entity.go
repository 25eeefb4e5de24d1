package device

import (
	"time"
)

// RawPunch is a single clock event as reported by the terminal.
// Produced only by the gateway; immutable after that.
type RawPunch struct {
	// DeviceUserID is the identifier the terminal assigned to the person.
	// Always in canonical string form, even when the device reports a number.
	DeviceUserID string

	// EmployeeNumber is the secondary identifier some devices report with a
	// punch (often a contact number, sometimes the employee code). Empty
	// when the device or its client exposes nothing in that slot.
	EmployeeNumber string

	// Timestamp is the device-local instant of the punch.
	Timestamp time.Time
}

// DeviceUser is one person known to the terminal. Name and Number are
// filled only when the client surfaces enrollment metadata; id alone is
// guaranteed.
type DeviceUser struct {
	ID     string
	Name   string
	Number string
}

// Info is a point-in-time snapshot of the terminal, used for diagnostics.
type Info struct {
	Endpoint   string
	DeviceTime time.Time
	UserCount  int
}

// Window bounds a punch fetch. A zero Start or End leaves that side open;
// the zero Window fetches everything the device still holds.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}
