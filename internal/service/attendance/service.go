package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/attendance"
	"github.com/presensi-hr/hris-backend-go/internal/domain/employee"
	identitydomain "github.com/presensi-hr/hris-backend-go/internal/domain/identity"
	identityservice "github.com/presensi-hr/hris-backend-go/internal/service/identity"
)

type AttendanceServiceImpl struct {
	entryRepo    attendance.EntryRepository
	employeeRepo employee.EmployeeRepository
	cache        *Cache
	normalizer   *Normalizer
}

func NewAttendanceService(
	entryRepo attendance.EntryRepository,
	employeeRepo employee.EmployeeRepository,
	cache *Cache,
	normalizer *Normalizer,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		cache:        cache,
		normalizer:   normalizer,
	}
}

// Query implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Query(ctx context.Context, req attendance.QueryRequest) (attendance.ListEntriesResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ListEntriesResponse{}, err
	}

	policy, err := attendance.ParsePolicy(req.Policy)
	if err != nil {
		return attendance.ListEntriesResponse{}, err
	}

	date, parseErr := time.ParseInLocation("2006-01-02", req.Date, a.normalizer.Location())
	if parseErr != nil {
		return attendance.ListEntriesResponse{}, fmt.Errorf("failed to parse date: %w", parseErr)
	}

	if entries, ok := a.cache.Get(date, policy); ok {
		return a.buildResponse(req.Date, policy, entries), nil
	}

	entries, err := a.entryRepo.ListByDate(ctx, date)
	if err != nil {
		return attendance.ListEntriesResponse{}, fmt.Errorf("failed to list attendance entries: %w", err)
	}

	entries = a.resolveLate(ctx, entries)

	if policy == attendance.PolicyFirstPerDay {
		entries = collapseToEarliest(entries)
	}

	a.cache.Put(date, policy, entries)

	return a.buildResponse(req.Date, policy, entries), nil
}

// resolveLate re-runs identity resolution over entries that persisted
// without a match, against the current registry snapshot. Unresolved
// entries keep serving; losing attendance rows is worse than showing them
// unmatched.
func (a *AttendanceServiceImpl) resolveLate(ctx context.Context, entries []attendance.Entry) []attendance.Entry {
	hasUnresolved := false
	for i := range entries {
		if entries[i].ResolvedEmployeeID == nil {
			hasUnresolved = true
			break
		}
	}
	if !hasUnresolved {
		return entries
	}

	registry, err := a.employeeRepo.ListActive(ctx)
	if err != nil {
		slog.Warn("Late resolution skipped: registry read failed", "error", err)
		return entries
	}

	batch := identityservice.NewBatch(employee.BuildIndex(registry))
	for i := range entries {
		if entries[i].ResolvedEmployeeID != nil {
			continue
		}
		res := batch.Resolve(entries[i].DeviceUserID, entries[i].EmployeeNumber)
		if res.Method == identitydomain.MethodNone {
			continue
		}

		if err := a.entryRepo.AttachEmployee(ctx, entries[i].ID, res.Employee.ID, res.Method); err != nil {
			slog.Warn("Failed to attach late-resolved employee",
				"entry_id", entries[i].ID,
				"employee_id", res.Employee.ID,
				"error", err)
			continue
		}

		entries[i].ResolvedEmployeeID = &res.Employee.ID
		entries[i].ResolutionMethod = res.Method
		name := res.Employee.FullName
		entries[i].EmployeeName = &name
	}

	return entries
}

// collapseToEarliest reduces a day's rows to one per device user. Needed
// when rows were persisted under the all-punches policy and the caller asks
// for the deduplicated view.
func collapseToEarliest(entries []attendance.Entry) []attendance.Entry {
	earliest := make(map[string]attendance.Entry, len(entries))
	for _, entry := range entries {
		current, ok := earliest[entry.DeviceUserID]
		if !ok || entry.TimeIn.Before(current.TimeIn) {
			earliest[entry.DeviceUserID] = entry
		}
	}

	out := make([]attendance.Entry, 0, len(earliest))
	for _, entry := range earliest {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TimeIn.Equal(out[j].TimeIn) {
			return out[i].TimeIn.Before(out[j].TimeIn)
		}
		return out[i].DeviceUserID < out[j].DeviceUserID
	})
	return out
}

func (a *AttendanceServiceImpl) buildResponse(date string, policy attendance.DedupPolicy, entries []attendance.Entry) attendance.ListEntriesResponse {
	responses := make([]attendance.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapEntryToResponse(entry, a.normalizer.Location()))
	}

	return attendance.ListEntriesResponse{
		Date:    date,
		Policy:  string(policy),
		Total:   len(responses),
		Entries: responses,
	}
}

// mapEntryToResponse converts an Entry to its API shape.
func mapEntryToResponse(entry attendance.Entry, loc *time.Location) attendance.EntryResponse {
	return attendance.EntryResponse{
		ID:               entry.ID,
		Date:             entry.Date.Format("2006-01-02"),
		DeviceUserID:     entry.DeviceUserID,
		EmployeeNumber:   entry.EmployeeNumber,
		TimeIn:           entry.TimeIn.In(loc).Format("2006-01-02 15:04:05"),
		Status:           string(entry.Status),
		EmployeeID:       entry.ResolvedEmployeeID,
		EmployeeName:     entry.EmployeeName,
		ResolutionMethod: string(entry.ResolutionMethod),
	}
}
