package employee

import (
	"strings"
)

// Canonical normalizes an identifier for comparison: trimmed, lower-cased.
// Device firmwares report ids as numbers or strings interchangeably; every
// identifier is coerced to this form before any map lookup or scan.
func Canonical(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Index is an immutable multi-key snapshot of the registry, rebuilt from a
// fresh listing and swapped in whole. Readers never see a partially built
// index and builders never mutate a published one.
type Index struct {
	byCode    map[string]*Employee
	byContact map[string]*Employee
	byEmail   map[string]*Employee
	all       []Employee
}

// BuildIndex constructs a snapshot from a registry listing. On duplicate
// keys the first employee wins, keeping lookups deterministic.
func BuildIndex(employees []Employee) *Index {
	idx := &Index{
		byCode:    make(map[string]*Employee, len(employees)),
		byContact: make(map[string]*Employee, len(employees)),
		byEmail:   make(map[string]*Employee, len(employees)),
		all:       make([]Employee, len(employees)),
	}
	copy(idx.all, employees)

	for i := range idx.all {
		emp := &idx.all[i]
		if key := Canonical(emp.EmployeeCode); key != "" {
			if _, exists := idx.byCode[key]; !exists {
				idx.byCode[key] = emp
			}
		}
		if key := Canonical(emp.ContactNumber); key != "" {
			if _, exists := idx.byContact[key]; !exists {
				idx.byContact[key] = emp
			}
		}
		if key := Canonical(emp.Email); key != "" {
			if _, exists := idx.byEmail[key]; !exists {
				idx.byEmail[key] = emp
			}
		}
	}

	return idx
}

// ByCode looks up an employee by canonical primary identifier.
func (idx *Index) ByCode(id string) (*Employee, bool) {
	emp, ok := idx.byCode[Canonical(id)]
	return emp, ok
}

// ByContact looks up an employee by canonical contact number.
func (idx *Index) ByContact(number string) (*Employee, bool) {
	emp, ok := idx.byContact[Canonical(number)]
	return emp, ok
}

// ByEmail looks up an employee by canonical email.
func (idx *Index) ByEmail(email string) (*Employee, bool) {
	emp, ok := idx.byEmail[Canonical(email)]
	return emp, ok
}

// All returns the snapshot listing for slow-path scans. Callers must treat
// it as read-only.
func (idx *Index) All() []Employee {
	return idx.all
}

// Len reports the number of employees in the snapshot.
func (idx *Index) Len() int {
	return len(idx.all)
}
