package device

import (
	"context"
)

// Gateway owns the lifecycle of a single terminal connection. Every call is
// one connect→operate→disconnect sequence bounded by the gateway's timeout;
// no call blocks past it. Failures are one of the sentinel errors in this
// package (possibly wrapped) and never carry partial data.
type Gateway interface {
	// FetchPunches pulls the punch log, filtered to the given window.
	FetchPunches(ctx context.Context, window Window) ([]RawPunch, error)

	// FetchUsers pulls the user listing, or as much of one as the client
	// can surface.
	FetchUsers(ctx context.Context) ([]DeviceUser, error)

	// Info queries device time and user count for diagnostics.
	Info(ctx context.Context) (Info, error)

	// Endpoint returns the configured "host:port" of the terminal.
	Endpoint() string
}
