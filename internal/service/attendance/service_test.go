package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensi-hr/hris-backend-go/internal/domain/attendance"
	"github.com/presensi-hr/hris-backend-go/internal/domain/employee"
	"github.com/presensi-hr/hris-backend-go/internal/domain/identity"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/validator"
)

type fakeEntryRepo struct {
	entries     []attendance.Entry
	listCalls   int
	attachCalls []string
	attachErr   error
}

func (r *fakeEntryRepo) InsertNew(ctx context.Context, entries []attendance.Entry) (int, error) {
	return 0, nil
}

func (r *fakeEntryRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Entry, error) {
	r.listCalls++
	var out []attendance.Entry
	for _, entry := range r.entries {
		if entry.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) ListByDates(ctx context.Context, dates []time.Time) ([]attendance.Entry, error) {
	return r.entries, nil
}

func (r *fakeEntryRepo) AttachEmployee(ctx context.Context, entryID string, employeeID string, method identity.Method) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	r.attachCalls = append(r.attachCalls, entryID)
	return nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.employees, nil
}

func resolvedEntry(id, user string, timeIn time.Time, employeeID string) attendance.Entry {
	day := time.Date(timeIn.Year(), timeIn.Month(), timeIn.Day(), 0, 0, 0, 0, timeIn.Location())
	entry := attendance.Entry{
		ID:           id,
		Date:         day,
		DeviceUserID: user,
		TimeIn:       timeIn,
		Status:       attendance.StatusPresent,
	}
	if employeeID != "" {
		entry.ResolvedEmployeeID = &employeeID
		entry.ResolutionMethod = identity.MethodDirectIDMap
	} else {
		entry.ResolutionMethod = identity.MethodNone
	}
	return entry
}

func newQueryHarness(repo *fakeEntryRepo, employees *fakeEmployeeRepo) (attendance.AttendanceService, *Cache) {
	cache := NewCache()
	normalizer := NewNormalizer(jakarta, 6, 9*time.Hour)
	return NewAttendanceService(repo, employees, cache, normalizer), cache
}

func TestQuery_ValidationFailures(t *testing.T) {
	service, _ := newQueryHarness(&fakeEntryRepo{}, &fakeEmployeeRepo{})

	_, err := service.Query(context.Background(), attendance.QueryRequest{Date: ""})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	_, err = service.Query(context.Background(), attendance.QueryRequest{Date: "02-03-2026"})
	require.ErrorAs(t, err, &validationErrs)

	_, err = service.Query(context.Background(), attendance.QueryRequest{Date: "2026-03-02", Policy: "bogus"})
	require.ErrorAs(t, err, &validationErrs)
}

func TestQuery_ReturnsPersistedEntries(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)
	repo := &fakeEntryRepo{entries: []attendance.Entry{
		resolvedEntry("e1", "7", day.Add(8*time.Hour+59*time.Minute), "emp-1"),
	}}
	service, _ := newQueryHarness(repo, &fakeEmployeeRepo{})

	result, err := service.Query(context.Background(), attendance.QueryRequest{Date: "2026-03-02", Policy: "first"})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", result.Date)
	assert.Equal(t, string(attendance.PolicyFirstPerDay), result.Policy)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "7", result.Entries[0].DeviceUserID)
	assert.Equal(t, "2026-03-02 08:59:00", result.Entries[0].TimeIn)
	require.NotNil(t, result.Entries[0].EmployeeID)
	assert.Equal(t, "emp-1", *result.Entries[0].EmployeeID)
}

func TestQuery_CacheHitSkipsRepository(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)
	repo := &fakeEntryRepo{entries: []attendance.Entry{
		resolvedEntry("e1", "7", day.Add(8*time.Hour), "emp-1"),
	}}
	service, _ := newQueryHarness(repo, &fakeEmployeeRepo{})
	req := attendance.QueryRequest{Date: "2026-03-02", Policy: "first"}

	_, err := service.Query(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = service.Query(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestQuery_PolicyKeysCacheSeparately(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)
	repo := &fakeEntryRepo{entries: []attendance.Entry{
		resolvedEntry("e1", "7", day.Add(8*time.Hour), "emp-1"),
	}}
	service, _ := newQueryHarness(repo, &fakeEmployeeRepo{})

	_, err := service.Query(context.Background(), attendance.QueryRequest{Date: "2026-03-02", Policy: "first"})
	require.NoError(t, err)

	_, err = service.Query(context.Background(), attendance.QueryRequest{Date: "2026-03-02", Policy: "all"})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls)
}

func TestQuery_FirstPolicyCollapsesAllPunchesRows(t *testing.T) {
	// Rows persisted under the all-punches policy, queried deduplicated.
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)
	repo := &fakeEntryRepo{entries: []attendance.Entry{
		resolvedEntry("e1", "7", day.Add(9*time.Hour+15*time.Minute), "emp-1"),
		resolvedEntry("e2", "7", day.Add(8*time.Hour+59*time.Minute), "emp-1"),
		resolvedEntry("e3", "9", day.Add(10*time.Hour), "emp-2"),
	}}
	service, _ := newQueryHarness(repo, &fakeEmployeeRepo{})

	result, err := service.Query(context.Background(), attendance.QueryRequest{Date: "2026-03-02", Policy: "first"})

	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	assert.Equal(t, "7", result.Entries[0].DeviceUserID)
	assert.Equal(t, "2026-03-02 08:59:00", result.Entries[0].TimeIn)
	assert.Equal(t, "9", result.Entries[1].DeviceUserID)
}

func TestQuery_LateResolutionAttachesEmployee(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)
	repo := &fakeEntryRepo{entries: []attendance.Entry{
		resolvedEntry("e1", "7", day.Add(8*time.Hour), ""),
	}}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", EmployeeCode: "7", FullName: "Budi Santoso"},
	}}
	service, _ := newQueryHarness(repo, employees)

	result, err := service.Query(context.Background(), attendance.QueryRequest{Date: "2026-03-02", Policy: "first"})

	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.NotNil(t, result.Entries[0].EmployeeID)
	assert.Equal(t, "emp-1", *result.Entries[0].EmployeeID)
	assert.Equal(t, string(identity.MethodDirectIDMap), result.Entries[0].ResolutionMethod)
	assert.Equal(t, []string{"e1"}, repo.attachCalls)
}

func TestQuery_LateResolutionFailureKeepsEntryServing(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)
	repo := &fakeEntryRepo{
		entries: []attendance.Entry{
			resolvedEntry("e1", "7", day.Add(8*time.Hour), ""),
		},
		attachErr: attendance.ErrEntryNotFound,
	}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", EmployeeCode: "7", FullName: "Budi Santoso"},
	}}
	service, _ := newQueryHarness(repo, employees)

	result, err := service.Query(context.Background(), attendance.QueryRequest{Date: "2026-03-02", Policy: "first"})

	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Nil(t, result.Entries[0].EmployeeID)
	assert.Equal(t, string(identity.MethodNone), result.Entries[0].ResolutionMethod)
}

func TestQuery_EmptyDay(t *testing.T) {
	service, _ := newQueryHarness(&fakeEntryRepo{}, &fakeEmployeeRepo{})

	result, err := service.Query(context.Background(), attendance.QueryRequest{Date: "2026-03-02", Policy: "all"})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Entries)
}
