package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presensi-hr/hris-backend-go/internal/domain/devicesync"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/database"
)

type syncStatusRepository struct {
	db *database.DB
}

func NewSyncStatusRepository(db *database.DB) devicesync.LedgerRepository {
	return &syncStatusRepository{db: db}
}

// Record implements devicesync.LedgerRepository.
func (r *syncStatusRepository) Record(ctx context.Context, status devicesync.SyncStatus) (devicesync.SyncStatus, error) {
	q := GetQuerier(ctx, r.db)

	if status.ID == "" {
		status.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO sync_statuses (
			id, synced_at, success, record_count, added_count, message, device_endpoint
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := q.Exec(ctx, query,
		status.ID,
		status.SyncedAt,
		status.Success,
		status.RecordCount,
		status.AddedCount,
		status.Message,
		status.DeviceEndpoint,
	)
	if err != nil {
		return devicesync.SyncStatus{}, fmt.Errorf("failed to record sync status: %w", err)
	}

	return status, nil
}

// Latest implements devicesync.LedgerRepository.
func (r *syncStatusRepository) Latest(ctx context.Context) (devicesync.SyncStatus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, synced_at, success, record_count, added_count, message, device_endpoint
		FROM sync_statuses
		ORDER BY synced_at DESC
		LIMIT 1
	`

	var status devicesync.SyncStatus
	err := q.QueryRow(ctx, query).Scan(
		&status.ID,
		&status.SyncedAt,
		&status.Success,
		&status.RecordCount,
		&status.AddedCount,
		&status.Message,
		&status.DeviceEndpoint,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return devicesync.SyncStatus{}, devicesync.ErrNoSyncYet
		}
		return devicesync.SyncStatus{}, fmt.Errorf("failed to get latest sync status: %w", err)
	}

	return status, nil
}

// History implements devicesync.LedgerRepository.
func (r *syncStatusRepository) History(ctx context.Context, limit int) ([]devicesync.SyncStatus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, synced_at, success, record_count, added_count, message, device_endpoint
		FROM sync_statuses
		ORDER BY synced_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync statuses: %w", err)
	}
	defer rows.Close()

	var statuses []devicesync.SyncStatus
	for rows.Next() {
		var status devicesync.SyncStatus
		if err := rows.Scan(
			&status.ID,
			&status.SyncedAt,
			&status.Success,
			&status.RecordCount,
			&status.AddedCount,
			&status.Message,
			&status.DeviceEndpoint,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sync status: %w", err)
		}
		statuses = append(statuses, status)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sync status rows: %w", err)
	}

	return statuses, nil
}
