package employee

import (
	"time"
)

// Employee is one row of the registry feed the sync core consumes. The core
// never writes employees; the CRUD screens that own them live elsewhere.
type Employee struct {
	ID            string
	EmployeeCode  string
	FullName      string
	ContactNumber string
	Email         string
	Department    string
	Branch        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
