package attendance

import (
	"context"
)

// AttendanceService is the read path: cache first, persistence on miss,
// with a late identity-resolution pass over still-unresolved entries.
type AttendanceService interface {
	Query(ctx context.Context, req QueryRequest) (ListEntriesResponse, error)
}
