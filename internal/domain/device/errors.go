package device

import "errors"

// Gateway failure taxonomy. Any of these means "zero punches obtained";
// callers must not treat previously persisted data as stale.
var (
	ErrConnectionFailed = errors.New("could not connect to the attendance device")
	ErrTimeout          = errors.New("attendance device operation timed out")
	ErrProtocol         = errors.New("attendance device returned an invalid response")
)
