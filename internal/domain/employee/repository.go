package employee

import (
	"context"
)

// EmployeeRepository is the read-only registry feed.
type EmployeeRepository interface {
	// ListActive returns every non-deleted employee. The result is used to
	// rebuild the lookup index; callers must not mutate it.
	ListActive(ctx context.Context) ([]Employee, error)
}
