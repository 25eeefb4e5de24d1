package zkdevice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/device"
)

// Session is one stateful connection to the terminal, matching the surface
// the vendor client actually exposes: connect, disconnect, the scan-event
// log, and the device clock. Implementations are not safe for concurrent
// use; the gateway serializes access by dialing a fresh session per call.
type Session interface {
	Connect() error
	Disconnect() error
	ScanEvents() ([]device.RawPunch, error)
	Time() (time.Time, error)
}

// DialFunc opens an unconnected session against host:port.
type DialFunc func(host string, port int) Session

// Gateway implements device.Gateway over a ZKTeco-compatible terminal.
// Terminals are slow over LAN/WAN links, so the default timeout is generous.
type Gateway struct {
	host    string
	port    int
	timeout time.Duration
	dial    DialFunc
}

const DefaultTimeout = 20 * time.Second

func NewGateway(host string, port int, timeout time.Duration, dial DialFunc) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		host:    host,
		port:    port,
		timeout: timeout,
		dial:    dial,
	}
}

// Endpoint implements device.Gateway.
func (g *Gateway) Endpoint() string {
	return fmt.Sprintf("%s:%d", g.host, g.port)
}

// FetchPunches implements device.Gateway.
func (g *Gateway) FetchPunches(ctx context.Context, window device.Window) ([]device.RawPunch, error) {
	var punches []device.RawPunch

	err := g.withSession(ctx, func(s Session) error {
		records, err := s.ScanEvents()
		if err != nil {
			return fmt.Errorf("%w: reading scan log: %v", device.ErrProtocol, err)
		}

		punches = make([]device.RawPunch, 0, len(records))
		for _, rec := range records {
			if !window.Contains(rec.Timestamp) {
				continue
			}
			punches = append(punches, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Device punches fetched", "endpoint", g.Endpoint(), "count", len(punches))
	return punches, nil
}

// FetchUsers implements device.Gateway. The client exposes no enrollment
// listing, so the user set is the distinct ids observed in the scan log;
// Name and Number stay empty.
func (g *Gateway) FetchUsers(ctx context.Context) ([]device.DeviceUser, error) {
	var users []device.DeviceUser

	err := g.withSession(ctx, func(s Session) error {
		records, err := s.ScanEvents()
		if err != nil {
			return fmt.Errorf("%w: reading scan log: %v", device.ErrProtocol, err)
		}
		users = distinctUsers(records)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Info implements device.Gateway.
func (g *Gateway) Info(ctx context.Context) (device.Info, error) {
	info := device.Info{Endpoint: g.Endpoint()}

	err := g.withSession(ctx, func(s Session) error {
		deviceTime, err := s.Time()
		if err != nil {
			return fmt.Errorf("%w: reading device time: %v", device.ErrProtocol, err)
		}
		records, err := s.ScanEvents()
		if err != nil {
			return fmt.Errorf("%w: reading scan log: %v", device.ErrProtocol, err)
		}
		info.DeviceTime = deviceTime
		info.UserCount = len(distinctUsers(records))
		return nil
	})
	if err != nil {
		return device.Info{}, err
	}

	return info, nil
}

func distinctUsers(records []device.RawPunch) []device.DeviceUser {
	seen := make(map[string]bool, len(records))
	var users []device.DeviceUser
	for _, rec := range records {
		if seen[rec.DeviceUserID] {
			continue
		}
		seen[rec.DeviceUserID] = true
		users = append(users, device.DeviceUser{ID: rec.DeviceUserID})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// withSession runs fn inside one connect→operate→disconnect sequence bounded
// by the gateway timeout. On expiry the session is force-disconnected so the
// in-flight vendor call unwinds, and device.ErrTimeout is returned. A caller
// that cancelled gets its own cancellation back, not a timeout.
func (g *Gateway) withSession(ctx context.Context, fn func(s Session) error) error {
	s := g.dial(g.host, g.port)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		if err := s.Connect(); err != nil {
			done <- fmt.Errorf("%w: %v", device.ErrConnectionFailed, err)
			return
		}
		defer func() {
			if err := s.Disconnect(); err != nil {
				slog.Warn("Device disconnect failed", "endpoint", g.Endpoint(), "error", err)
			}
		}()
		done <- fn(s)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// Session is wedged mid-operation; close the socket underneath it.
		_ = s.Disconnect()
		if errors.Is(ctx.Err(), context.Canceled) {
			slog.Warn("Device operation aborted by caller", "endpoint", g.Endpoint())
			return ctx.Err()
		}
		slog.Warn("Device operation timed out", "endpoint", g.Endpoint(), "timeout", g.timeout)
		return device.ErrTimeout
	}
}
