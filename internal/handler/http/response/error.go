package response

import (
	"errors"
	"net/http"

	"github.com/presensi-hr/hris-backend-go/internal/domain/attendance"
	"github.com/presensi-hr/hris-backend-go/internal/domain/device"
	"github.com/presensi-hr/hris-backend-go/internal/domain/devicesync"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Device gateway errors
	case errors.Is(err, device.ErrTimeout):
		GatewayTimeout(w, err.Error())
	case errors.Is(err, device.ErrConnectionFailed),
		errors.Is(err, device.ErrProtocol):
		BadGateway(w, err.Error())

	// Sync domain errors
	case errors.Is(err, devicesync.ErrSyncInProgress):
		Conflict(w, err.Error())
	case errors.Is(err, devicesync.ErrNoSyncYet):
		NotFound(w, "No sync has run yet")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrUnknownPolicy):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEntryNotFound):
		NotFound(w, "Attendance entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
