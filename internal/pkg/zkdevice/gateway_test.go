package zkdevice

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensi-hr/hris-backend-go/internal/domain/device"
)

type fakeSession struct {
	connectErr  error
	events      []device.RawPunch
	eventsErr   error
	deviceTime  time.Time
	blockEvents chan struct{}
	disconnects int32
}

func (s *fakeSession) Connect() error {
	return s.connectErr
}

func (s *fakeSession) Disconnect() error {
	atomic.AddInt32(&s.disconnects, 1)
	return nil
}

func (s *fakeSession) ScanEvents() ([]device.RawPunch, error) {
	if s.blockEvents != nil {
		<-s.blockEvents
	}
	if s.eventsErr != nil {
		return nil, s.eventsErr
	}
	return s.events, nil
}

func (s *fakeSession) Time() (time.Time, error) {
	return s.deviceTime, nil
}

func dialTo(s *fakeSession) DialFunc {
	return func(host string, port int) Session { return s }
}

func TestGateway_Endpoint(t *testing.T) {
	g := NewGateway("192.0.2.10", 4370, time.Second, dialTo(&fakeSession{}))
	assert.Equal(t, "192.0.2.10:4370", g.Endpoint())
}

func TestFetchPunches_ReturnsScanLog(t *testing.T) {
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	session := &fakeSession{
		events: []device.RawPunch{
			{DeviceUserID: "7", Timestamp: at},
			{DeviceUserID: "9", Timestamp: at.Add(time.Minute)},
		},
	}
	g := NewGateway("192.0.2.10", 4370, time.Second, dialTo(session))

	punches, err := g.FetchPunches(context.Background(), device.Window{})

	require.NoError(t, err)
	require.Len(t, punches, 2)
	assert.Equal(t, "7", punches[0].DeviceUserID)
	assert.Equal(t, "9", punches[1].DeviceUserID)
}

func TestFetchPunches_FiltersWindow(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	session := &fakeSession{
		events: []device.RawPunch{
			{DeviceUserID: "7", Timestamp: base.Add(-time.Hour)},
			{DeviceUserID: "7", Timestamp: base},
			{DeviceUserID: "7", Timestamp: base.Add(2 * time.Hour)},
		},
	}
	g := NewGateway("192.0.2.10", 4370, time.Second, dialTo(session))

	punches, err := g.FetchPunches(context.Background(), device.Window{
		Start: base,
		End:   base.Add(time.Hour),
	})

	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.True(t, punches[0].Timestamp.Equal(base))
}

func TestFetchPunches_ConnectionFailure(t *testing.T) {
	session := &fakeSession{connectErr: errors.New("connection refused")}
	g := NewGateway("192.0.2.10", 4370, time.Second, dialTo(session))

	_, err := g.FetchPunches(context.Background(), device.Window{})

	assert.ErrorIs(t, err, device.ErrConnectionFailed)
}

func TestFetchPunches_ProtocolFailure(t *testing.T) {
	session := &fakeSession{eventsErr: errors.New("short read")}
	g := NewGateway("192.0.2.10", 4370, time.Second, dialTo(session))

	_, err := g.FetchPunches(context.Background(), device.Window{})

	assert.ErrorIs(t, err, device.ErrProtocol)
}

func TestFetchPunches_TimeoutForcesDisconnect(t *testing.T) {
	session := &fakeSession{blockEvents: make(chan struct{})}
	defer close(session.blockEvents)
	g := NewGateway("192.0.2.10", 4370, 50*time.Millisecond, dialTo(session))

	start := time.Now()
	_, err := g.FetchPunches(context.Background(), device.Window{})

	assert.ErrorIs(t, err, device.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&session.disconnects), int32(1))
}

func TestFetchPunches_CancelledContextIsNotATimeout(t *testing.T) {
	session := &fakeSession{blockEvents: make(chan struct{})}
	defer close(session.blockEvents)
	g := NewGateway("192.0.2.10", 4370, time.Minute, dialTo(session))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.FetchPunches(ctx, device.Window{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, device.ErrTimeout)
}

func TestFetchUsers_DistinctIDsFromScanLog(t *testing.T) {
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	session := &fakeSession{
		events: []device.RawPunch{
			{DeviceUserID: "9", Timestamp: at},
			{DeviceUserID: "7", Timestamp: at.Add(time.Minute)},
			{DeviceUserID: "7", Timestamp: at.Add(2 * time.Minute)},
		},
	}
	g := NewGateway("192.0.2.10", 4370, time.Second, dialTo(session))

	users, err := g.FetchUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "7", users[0].ID)
	assert.Equal(t, "9", users[1].ID)
}

func TestInfo_ReportsTimeAndUserCount(t *testing.T) {
	deviceTime := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	session := &fakeSession{
		deviceTime: deviceTime,
		events: []device.RawPunch{
			{DeviceUserID: "7", Timestamp: deviceTime},
			{DeviceUserID: "9", Timestamp: deviceTime},
			{DeviceUserID: "7", Timestamp: deviceTime.Add(time.Minute)},
		},
	}
	g := NewGateway("192.0.2.10", 4370, time.Second, dialTo(session))

	info, err := g.Info(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10:4370", info.Endpoint)
	assert.True(t, info.DeviceTime.Equal(deviceTime))
	assert.Equal(t, 2, info.UserCount)
}

func TestNewGateway_DefaultTimeout(t *testing.T) {
	g := NewGateway("192.0.2.10", 4370, 0, dialTo(&fakeSession{}))
	assert.Equal(t, DefaultTimeout, g.timeout)
}
