package http

import (
	"net/http"
	"strconv"

	"github.com/presensi-hr/hris-backend-go/internal/domain/devicesync"
	"github.com/presensi-hr/hris-backend-go/internal/handler/http/response"
)

type SyncHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	syncService devicesync.SyncService
}

func NewSyncHandler(syncService devicesync.SyncService) SyncHandler {
	return &syncHandlerImpl{syncService: syncService}
}

// Trigger runs a sync pass inline and returns its outcome. A pass that
// reaches the device and fails is still a 200: the result carries
// success=false and the failure message, mirroring what the ledger records.
func (h *syncHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncService.Run(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

func (h *syncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.syncService.LatestStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, devicesync.MapStatusToResponse(status))
}

func (h *syncHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "limit must be a number", nil)
			return
		}
		limit = parsed
	}

	statuses, err := h.syncService.StatusHistory(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]devicesync.StatusResponse, 0, len(statuses))
	for _, s := range statuses {
		items = append(items, devicesync.MapStatusToResponse(s))
	}

	response.Success(w, items)
}
