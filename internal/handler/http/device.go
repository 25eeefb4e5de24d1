package http

import (
	"net/http"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/device"
	"github.com/presensi-hr/hris-backend-go/internal/handler/http/response"
)

type DeviceHandler interface {
	Info(w http.ResponseWriter, r *http.Request)
}

type deviceHandlerImpl struct {
	gateway device.Gateway
}

func NewDeviceHandler(gateway device.Gateway) DeviceHandler {
	return &deviceHandlerImpl{gateway: gateway}
}

type deviceInfoResponse struct {
	Endpoint   string `json:"endpoint"`
	DeviceTime string `json:"device_time"`
	UserCount  int    `json:"user_count"`
	ClockDrift string `json:"clock_drift"`
}

// Info queries the terminal. Useful to check reachability and clock drift
// before blaming a sync failure on the network.
func (h *deviceHandlerImpl) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.gateway.Info(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, deviceInfoResponse{
		Endpoint:   info.Endpoint,
		DeviceTime: info.DeviceTime.Format(time.RFC3339),
		UserCount:  info.UserCount,
		ClockDrift: time.Since(info.DeviceTime).Round(time.Second).String(),
	})
}
