package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mrlokans/bookapi/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"0 3 * * *", false},
		{"*/15 * * * *", false},
		{"0 */6 * * 1-5", false},
		{"", true},
		{"not a schedule", true},
		{"0 0 3 * * *", true}, // seconds field not supported
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetNextRunTime(t *testing.T) {
	next, err := GetNextRunTime("0 3 * * *")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	_, err = GetNextRunTime("bogus")
	assert.Error(t, err)
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	s := NewAuditCleanupScheduler(nil, AuditCleanupConfig{Schedule: "0 3 * * *", RetentionDays: 30}, nil)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	// Starting twice is a no-op
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	// Stopping twice is a no-op
	s.Stop()
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(nil, AuditCleanupConfig{Schedule: "every day"}, nil)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestAuditCleanupScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewAuditCleanupScheduler(nil, AuditCleanupConfig{Schedule: "0 3 * * *"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestAuditCleanupScheduler_RunNow(t *testing.T) {
	s := NewAuditCleanupScheduler(nil, AuditCleanupConfig{Schedule: "0 3 * * *", RetentionDays: 14}, nil)

	var mu sync.Mutex
	var got []tasks.CleanupAuditEventsTask
	s.enqueue = func(_ context.Context, task tasks.CleanupAuditEventsTask) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, task)
		return nil
	}

	require.NoError(t, s.RunNow(context.Background()))
	require.Len(t, got, 1)
	assert.Equal(t, 14, got[0].RetentionDays)
}

func TestAuditCleanupScheduler_RunNowWithoutQueue(t *testing.T) {
	s := NewAuditCleanupScheduler(nil, AuditCleanupConfig{Schedule: "0 3 * * *"}, nil)
	assert.Error(t, s.RunNow(context.Background()))
}

func TestAuditCleanupScheduler_RunCleanupLogsEnqueueFailure(t *testing.T) {
	s := NewAuditCleanupScheduler(nil, AuditCleanupConfig{Schedule: "0 3 * * *"}, nil)
	calls := 0
	s.enqueue = func(context.Context, tasks.CleanupAuditEventsTask) error {
		calls++
		return errors.New("queue closed")
	}

	s.runCleanup()
	assert.Equal(t, 1, calls)
}

func TestAuditCleanupScheduler_EnqueuesIntoTaskQueue(t *testing.T) {
	client, err := tasks.NewClient(filepath.Join(t.TempDir(), "test.db"), tasks.DefaultConfig(), nil)
	require.NoError(t, err)
	defer client.Close()

	done := make(chan time.Duration, 1)
	client.Register(tasks.NewAuditCleanup(cleanerFunc(func(retention time.Duration) (int64, error) {
		done <- retention
		return 0, nil
	}), 30, nil).Queue())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	s := NewAuditCleanupScheduler(client, AuditCleanupConfig{Schedule: "0 3 * * *", RetentionDays: 2}, nil)
	require.NoError(t, s.RunNow(context.Background()))

	select {
	case retention := <-done:
		assert.Equal(t, 48*time.Hour, retention)
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup task was not executed within timeout")
	}
}

type cleanerFunc func(time.Duration) (int64, error)

func (f cleanerFunc) DeleteOldEvents(retention time.Duration) (int64, error) {
	return f(retention)
}
