package devicesync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/attendance"
	"github.com/presensi-hr/hris-backend-go/internal/domain/device"
	"github.com/presensi-hr/hris-backend-go/internal/domain/devicesync"
	"github.com/presensi-hr/hris-backend-go/internal/domain/employee"
	identitydomain "github.com/presensi-hr/hris-backend-go/internal/domain/identity"
	attendanceservice "github.com/presensi-hr/hris-backend-go/internal/service/attendance"
	identityservice "github.com/presensi-hr/hris-backend-go/internal/service/identity"
)

// Pass stages, in execution order. One pass is strictly sequential; no
// stage starts before the previous one finished.
const (
	stageConnecting  = "connecting"
	stageFetching    = "fetching"
	stageNormalizing = "normalizing"
	stageResolving   = "resolving"
	stageDiffing     = "diffing"
	stagePersisting  = "persisting"
	stageDone        = "done"
)

type SyncServiceImpl struct {
	gateway      device.Gateway
	employeeRepo employee.EmployeeRepository
	entryRepo    attendance.EntryRepository
	ledger       devicesync.LedgerRepository
	normalizer   *attendanceservice.Normalizer
	cache        *attendanceservice.Cache
	policy       attendance.DedupPolicy

	// gate keeps at most one pass in flight system-wide. A second trigger
	// is rejected, never queued; the diff stage is only race-free because
	// of this.
	gate sync.Mutex
}

func NewSyncService(
	gateway device.Gateway,
	employeeRepo employee.EmployeeRepository,
	entryRepo attendance.EntryRepository,
	ledger devicesync.LedgerRepository,
	normalizer *attendanceservice.Normalizer,
	cache *attendanceservice.Cache,
	policy attendance.DedupPolicy,
) devicesync.SyncService {
	return &SyncServiceImpl{
		gateway:      gateway,
		employeeRepo: employeeRepo,
		entryRepo:    entryRepo,
		ledger:       ledger,
		normalizer:   normalizer,
		cache:        cache,
		policy:       policy,
	}
}

// Run implements devicesync.SyncService. Gateway and persistence failures
// end the pass with Success=false and the cause recorded verbatim in the
// ledger; nothing already persisted is touched and nothing is retried
// inside the pass.
func (s *SyncServiceImpl) Run(ctx context.Context) (devicesync.Result, error) {
	if !s.gate.TryLock() {
		return devicesync.Result{}, devicesync.ErrSyncInProgress
	}
	defer s.gate.Unlock()

	started := time.Now()
	slog.Info("Sync pass started", "endpoint", s.gateway.Endpoint(), "policy", s.policy)

	slog.Debug("Sync stage", "stage", stageConnecting)
	punches, err := s.gateway.FetchPunches(ctx, device.Window{})
	if err != nil {
		return s.fail(ctx, err.Error(), nil), nil
	}
	slog.Debug("Sync stage", "stage", stageFetching, "punches", len(punches))

	slog.Debug("Sync stage", "stage", stageNormalizing)
	entries, discarded := s.normalizer.Normalize(punches, s.policy)

	slog.Debug("Sync stage", "stage", stageResolving, "entries", len(entries))
	registry, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return s.fail(ctx, fmt.Sprintf("failed to load employee registry: %v", err), nil), nil
	}

	batch := identityservice.NewBatch(employee.BuildIndex(registry))
	for i := range entries {
		res := batch.Resolve(entries[i].DeviceUserID, entries[i].EmployeeNumber)
		entries[i].ResolutionMethod = res.Method
		if res.Employee != nil {
			entries[i].ResolvedEmployeeID = &res.Employee.ID
			name := res.Employee.FullName
			entries[i].EmployeeName = &name
		}
	}
	stats := batch.Stats()

	slog.Debug("Sync stage", "stage", stageDiffing)
	dates := touchedDates(entries)
	existing, err := s.entryRepo.ListByDates(ctx, dates)
	if err != nil {
		return s.fail(ctx, fmt.Sprintf("failed to read persisted entries for diff: %v", err), stats), nil
	}

	known := make(map[string]bool, len(existing))
	for _, entry := range existing {
		known[entry.Key()] = true
	}
	fresh := make([]attendance.Entry, 0, len(entries))
	for _, entry := range entries {
		if !known[entry.Key()] {
			fresh = append(fresh, entry)
		}
	}

	slog.Debug("Sync stage", "stage", stagePersisting, "new_entries", len(fresh))
	added, err := s.entryRepo.InsertNew(ctx, fresh)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", devicesync.ErrPersistenceWrite, err)
		return s.fail(ctx, wrapped.Error(), stats), nil
	}

	s.cache.InvalidateAll()

	message := fmt.Sprintf("synced %d entries, %d new, %d punches discarded by policy; resolution: %s",
		len(entries), added, discarded, formatStats(stats))
	status := devicesync.SyncStatus{
		SyncedAt:       time.Now(),
		Success:        true,
		RecordCount:    len(entries),
		AddedCount:     added,
		Message:        message,
		DeviceEndpoint: s.gateway.Endpoint(),
	}
	s.record(ctx, status)

	slog.Info("Sync pass finished",
		"stage", stageDone,
		"records", len(entries),
		"added", added,
		"duration", time.Since(started))

	return devicesync.NewResult(true, len(entries), added, message, stats), nil
}

// LatestStatus implements devicesync.SyncService.
func (s *SyncServiceImpl) LatestStatus(ctx context.Context) (devicesync.SyncStatus, error) {
	return s.ledger.Latest(ctx)
}

// StatusHistory implements devicesync.SyncService.
func (s *SyncServiceImpl) StatusHistory(ctx context.Context, limit int) ([]devicesync.SyncStatus, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.ledger.History(ctx, limit)
}

// fail records a failed pass with the cause preserved verbatim and returns
// the result the trigger hands back. Previously persisted attendance stays
// untouched.
func (s *SyncServiceImpl) fail(ctx context.Context, message string, stats identitydomain.Stats) devicesync.Result {
	slog.Error("Sync pass failed", "endpoint", s.gateway.Endpoint(), "cause", message)

	s.record(ctx, devicesync.SyncStatus{
		SyncedAt:       time.Now(),
		Success:        false,
		RecordCount:    0,
		AddedCount:     0,
		Message:        message,
		DeviceEndpoint: s.gateway.Endpoint(),
	})

	return devicesync.NewResult(false, 0, 0, message, stats)
}

// record writes the ledger row for Done. Ledger write failures are logged,
// not propagated: the pass outcome already happened and attendance data is
// not made less correct by a missing status row.
func (s *SyncServiceImpl) record(ctx context.Context, status devicesync.SyncStatus) {
	if _, err := s.ledger.Record(ctx, status); err != nil {
		slog.Error("Failed to record sync status", "error", err)
	}
}

func touchedDates(entries []attendance.Entry) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time
	for _, entry := range entries {
		key := entry.Date.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			dates = append(dates, entry.Date)
		}
	}
	return dates
}

func formatStats(stats identitydomain.Stats) string {
	if len(stats) == 0 {
		return "no entries"
	}
	var parts []string
	for _, method := range identitydomain.Methods {
		if count, ok := stats[method]; ok && count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", method, count))
		}
	}
	if len(parts) == 0 {
		return "no entries"
	}
	return strings.Join(parts, " ")
}
