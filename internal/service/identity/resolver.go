package identity

import (
	"github.com/presensi-hr/hris-backend-go/internal/domain/employee"
	"github.com/presensi-hr/hris-backend-go/internal/domain/identity"
)

// Batch resolves device identifiers against one immutable registry snapshot
// and tallies which strategy matched, for the operational diagnostics that
// accompany every sync pass. A Batch is not safe for concurrent use; the
// orchestrator runs resolution as a single sequential stage.
type Batch struct {
	idx   *employee.Index
	stats identity.Stats
}

func NewBatch(idx *employee.Index) *Batch {
	return &Batch{
		idx:   idx,
		stats: make(identity.Stats),
	}
}

// Resolve matches one punch to an employee. Strategies run in priority
// order and the first match wins; cheap exact-map lookups dominate, the
// linear scans are the thorough slow path. Ambiguity never fails a
// resolution, it is settled by the ordering.
func (b *Batch) Resolve(deviceUserID, employeeNumber string) identity.Resolution {
	res := b.resolve(deviceUserID, employeeNumber)
	b.stats[res.Method]++
	return res
}

func (b *Batch) resolve(deviceUserID, employeeNumber string) identity.Resolution {
	id := employee.Canonical(deviceUserID)
	number := employee.Canonical(employeeNumber)

	// 1. Device id against the primary-identifier map.
	if id != "" {
		if emp, ok := b.idx.ByCode(id); ok {
			return identity.Resolution{Employee: emp, Method: identity.MethodDirectIDMap}
		}
	}

	// 2. Some firmwares put the primary identifier in the "number" field.
	if number != "" {
		if emp, ok := b.idx.ByCode(number); ok {
			return identity.Resolution{Employee: emp, Method: identity.MethodNumberIDMap}
		}
	}

	// 3. The "number" field as a contact number.
	if number != "" {
		if emp, ok := b.idx.ByContact(number); ok {
			return identity.Resolution{Employee: emp, Method: identity.MethodNumberContactMap}
		}
	}

	// 4. Slow path: primary identifier against either input.
	for i := range b.idx.All() {
		emp := &b.idx.All()[i]
		code := employee.Canonical(emp.EmployeeCode)
		if code == "" {
			continue
		}
		if code == id || code == number {
			return identity.Resolution{Employee: emp, Method: identity.MethodIDScan}
		}
	}

	// 5. Slow path: contact number against either input.
	for i := range b.idx.All() {
		emp := &b.idx.All()[i]
		contact := employee.Canonical(emp.ContactNumber)
		if contact == "" {
			continue
		}
		if contact == id || contact == number {
			return identity.Resolution{Employee: emp, Method: identity.MethodContactScan}
		}
	}

	return identity.Resolution{Employee: nil, Method: identity.MethodNone}
}

// Stats returns the per-method tally accumulated so far.
func (b *Batch) Stats() identity.Stats {
	return b.stats
}
