package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/presensi-hr/hris-backend-go/internal/domain/attendance"
	"github.com/presensi-hr/hris-backend-go/internal/domain/identity"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/database"
)

type attendanceEntryRepository struct {
	db *database.DB
}

func NewAttendanceEntryRepository(db *database.DB) attendance.EntryRepository {
	return &attendanceEntryRepository{db: db}
}

// InsertNew implements attendance.EntryRepository. The unique index on
// (date, device_user_id, time_in) backs ON CONFLICT DO NOTHING, so re-running
// a pass over the same device window never duplicates rows. All entries go
// in one transaction: a pass persists completely or not at all.
func (r *attendanceEntryRepository) InsertNew(ctx context.Context, entries []attendance.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO attendance_entries (
			id, date, device_user_id, employee_number, time_in,
			status, resolved_employee_id, resolution_method
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (date, device_user_id, time_in) DO NOTHING
	`

	added := 0
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		for _, entry := range entries {
			id := entry.ID
			if id == "" {
				id = uuid.Must(uuid.NewV7()).String()
			}
			tag, err := q.Exec(txCtx, query,
				id,
				entry.Date,
				entry.DeviceUserID,
				entry.EmployeeNumber,
				entry.TimeIn,
				entry.Status,
				entry.ResolvedEmployeeID,
				entry.ResolutionMethod,
			)
			if err != nil {
				return fmt.Errorf("failed to insert attendance entry: %w", err)
			}
			added += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return added, nil
}

// ListByDate implements attendance.EntryRepository.
func (r *attendanceEntryRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Entry, error) {
	return r.list(ctx, []time.Time{date})
}

// ListByDates implements attendance.EntryRepository.
func (r *attendanceEntryRepository) ListByDates(ctx context.Context, dates []time.Time) ([]attendance.Entry, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	return r.list(ctx, dates)
}

func (r *attendanceEntryRepository) list(ctx context.Context, dates []time.Time) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.date, a.device_user_id, COALESCE(a.employee_number, ''),
			   a.time_in, a.status, a.resolved_employee_id, a.resolution_method,
			   a.created_at, e.full_name
		FROM attendance_entries a
		LEFT JOIN employees e ON e.id = a.resolved_employee_id
		WHERE a.date = ANY($1)
		ORDER BY a.date, a.time_in, a.device_user_id
	`

	rows, err := q.Query(ctx, query, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.Entry
	for rows.Next() {
		var entry attendance.Entry
		if err := rows.Scan(
			&entry.ID, &entry.Date, &entry.DeviceUserID, &entry.EmployeeNumber,
			&entry.TimeIn, &entry.Status, &entry.ResolvedEmployeeID, &entry.ResolutionMethod,
			&entry.CreatedAt, &entry.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance entry rows: %w", err)
	}

	return entries, nil
}

// AttachEmployee implements attendance.EntryRepository. Only ever moves an
// entry from unresolved to resolved; a resolved entry is never re-linked.
func (r *attendanceEntryRepository) AttachEmployee(ctx context.Context, entryID string, employeeID string, method identity.Method) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_entries
		SET resolved_employee_id = $2, resolution_method = $3
		WHERE id = $1 AND resolved_employee_id IS NULL
	`

	tag, err := q.Exec(ctx, query, entryID, employeeID, method)
	if err != nil {
		return fmt.Errorf("failed to attach employee to entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrEntryNotFound
	}

	return nil
}
