package identity

import (
	"github.com/presensi-hr/hris-backend-go/internal/domain/employee"
)

// Method names the strategy that matched a punch to an employee. The set is
// closed; "none" is the only method that may accompany a nil employee.
type Method string

const (
	// MethodDirectIDMap: device user id found in the primary-identifier map.
	MethodDirectIDMap Method = "direct-id-map"
	// MethodNumberIDMap: the device "number" field held the primary
	// identifier instead of the device id.
	MethodNumberIDMap Method = "number-id-map"
	// MethodNumberContactMap: the device "number" field held a contact number.
	MethodNumberContactMap Method = "number-contact-map"
	// MethodIDScan: slow-path scan matched a primary identifier against
	// either input.
	MethodIDScan Method = "id-scan"
	// MethodContactScan: slow-path scan matched a contact number against
	// either input.
	MethodContactScan Method = "contact-scan"
	// MethodNone: no strategy matched.
	MethodNone Method = "none"
)

// Methods lists every method in strategy-priority order, MethodNone last.
var Methods = []Method{
	MethodDirectIDMap,
	MethodNumberIDMap,
	MethodNumberContactMap,
	MethodIDScan,
	MethodContactScan,
	MethodNone,
}

// Valid reports whether m belongs to the closed method set.
func (m Method) Valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// Resolution is the outcome of matching one punch. Employee is nil exactly
// when Method is MethodNone.
type Resolution struct {
	Employee *employee.Employee
	Method   Method
}

// Stats counts resolutions per method across one pass.
type Stats map[Method]int

// Hits sums every successful resolution in the tally.
func (s Stats) Hits() int {
	total := 0
	for method, count := range s {
		if method != MethodNone {
			total += count
		}
	}
	return total
}

// Misses returns the MethodNone count.
func (s Stats) Misses() int {
	return s[MethodNone]
}
