package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensi-hr/hris-backend-go/internal/domain/devicesync"
)

type fakeSyncService struct {
	result devicesync.Result
	err    error
	calls  atomic.Int32
}

func (f *fakeSyncService) Run(ctx context.Context) (devicesync.Result, error) {
	f.calls.Add(1)
	return f.result, f.err
}

func (f *fakeSyncService) LatestStatus(ctx context.Context) (devicesync.SyncStatus, error) {
	return devicesync.SyncStatus{}, nil
}

func (f *fakeSyncService) StatusHistory(ctx context.Context, limit int) ([]devicesync.SyncStatus, error) {
	return nil, nil
}

func TestRunSyncPass_InFlightPassIsNotAnError(t *testing.T) {
	svc := &fakeSyncService{err: devicesync.ErrSyncInProgress}

	err := runSyncPass(context.Background(), svc)

	require.NoError(t, err)
}

func TestRunSyncPass_FailedPassIsReportedNotReturned(t *testing.T) {
	svc := &fakeSyncService{result: devicesync.Result{Success: false, Message: "device unreachable"}}

	err := runSyncPass(context.Background(), svc)

	require.NoError(t, err)
}

func TestRunSyncPass_PropagatesUnexpectedErrors(t *testing.T) {
	svc := &fakeSyncService{err: errors.New("ledger write failed")}

	err := runSyncPass(context.Background(), svc)

	require.Error(t, err)
}

func TestScheduler_RunsImmediatelyAndOnTicks(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler("test_job", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	s.Start()
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	got := calls.Load()
	assert.GreaterOrEqual(t, got, int32(2), "job should run on start and at least once per tick")
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler("test_job", time.Minute, func(ctx context.Context) error {
		return nil
	})

	s.Stop()
}

func TestScheduler_StopWaitsForLoop(t *testing.T) {
	s := NewScheduler("test_job", time.Minute, func(ctx context.Context) error {
		return nil
	})

	s.Start()
	s.Stop()

	select {
	case <-s.done:
	default:
		t.Fatal("loop still running after Stop")
	}
}

func TestNewSyncScheduler_RunOnceDelegatesToService(t *testing.T) {
	svc := &fakeSyncService{result: devicesync.Result{Success: true, RecordCount: 3, AddedCount: 1}}
	s := NewSyncScheduler(svc, time.Minute)

	err := s.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(1), svc.calls.Load())
}
