package zkdevice

import (
	"strconv"
	"time"

	"github.com/canhlinh/gozk"
	"github.com/presensi-hr/hris-backend-go/internal/domain/device"
)

// gozkSession adapts the vendor ZKTeco client to Session. This file is the
// only place the vendor API is touched; everything else depends on
// device.Gateway.
type gozkSession struct {
	zk *gozk.ZK
}

// Dial returns a Session backed by the vendor client.
func Dial(host string, port int) Session {
	return &gozkSession{
		zk: gozk.NewZK(host, gozk.WithPort(port), gozk.WithTimezone(gozk.DefaultTimezone)),
	}
}

func (s *gozkSession) Connect() error {
	return s.zk.Connect()
}

func (s *gozkSession) Disconnect() error {
	return s.zk.Disconnect()
}

func (s *gozkSession) ScanEvents() ([]device.RawPunch, error) {
	events, err := s.zk.GetAllScannedEvents()
	if err != nil {
		return nil, err
	}

	punches := make([]device.RawPunch, 0, len(events))
	for _, ev := range events {
		if ev == nil {
			continue
		}
		punches = append(punches, device.RawPunch{
			// The device reports ids numerically; canonicalize to string
			// here, at the boundary.
			DeviceUserID: strconv.FormatInt(ev.UserID, 10),
			Timestamp:    ev.Timestamp,
		})
	}
	return punches, nil
}

func (s *gozkSession) Time() (time.Time, error) {
	return s.zk.GetTime()
}
