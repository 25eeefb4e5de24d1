package devicesync

import (
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/identity"
)

// Result is what a trigger returns synchronously once the pass reaches Done.
type Result struct {
	Success     bool           `json:"success"`
	RecordCount int            `json:"record_count"`
	AddedCount  int            `json:"added_count"`
	Message     string         `json:"message"`
	Resolution  map[string]int `json:"resolution,omitempty"`
}

// NewResult builds a Result embedding the per-method resolution tally.
func NewResult(success bool, recordCount, addedCount int, message string, stats identity.Stats) Result {
	res := Result{
		Success:     success,
		RecordCount: recordCount,
		AddedCount:  addedCount,
		Message:     message,
	}
	if len(stats) > 0 {
		res.Resolution = make(map[string]int, len(stats))
		for method, count := range stats {
			res.Resolution[string(method)] = count
		}
	}
	return res
}

type StatusResponse struct {
	SyncedAt       string `json:"synced_at"`
	Success        bool   `json:"success"`
	RecordCount    int    `json:"record_count"`
	AddedCount     int    `json:"added_count"`
	Message        string `json:"message"`
	DeviceEndpoint string `json:"device_endpoint"`
}

// MapStatusToResponse converts a ledger row for the polling endpoint.
func MapStatusToResponse(status SyncStatus) StatusResponse {
	return StatusResponse{
		SyncedAt:       status.SyncedAt.Format(time.RFC3339),
		Success:        status.Success,
		RecordCount:    status.RecordCount,
		AddedCount:     status.AddedCount,
		Message:        status.Message,
		DeviceEndpoint: status.DeviceEndpoint,
	}
}
