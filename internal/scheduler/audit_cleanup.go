package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/mrlokans/bookapi/internal/tasks"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TaskEnqueuer adds tasks to the background queue.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
}

// enqueueTimeout bounds a scheduled enqueue.
const enqueueTimeout = 30 * time.Second

// AuditCleanupConfig controls the audit cleanup schedule.
type AuditCleanupConfig struct {
	Schedule      string
	RetentionDays int
}

// AuditCleanupScheduler periodically enqueues audit event cleanup tasks.
type AuditCleanupScheduler struct {
	config AuditCleanupConfig
	log    *zap.Logger

	// enqueue is swapped in tests to avoid a real queue.
	enqueue func(ctx context.Context, task tasks.CleanupAuditEventsTask) error

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler instance
func NewAuditCleanupScheduler(queue TaskEnqueuer, cfg AuditCleanupConfig, log *zap.Logger) *AuditCleanupScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &AuditCleanupScheduler{
		config: cfg,
		log:    log.Named("scheduler"),
		cron:   cron.New(cron.WithParser(newParser())),
	}
	s.enqueue = func(ctx context.Context, task tasks.CleanupAuditEventsTask) error {
		if queue == nil {
			return fmt.Errorf("task queue not configured")
		}
		_, err := queue.Enqueue(ctx, task)
		return err
	}
	return s
}

// Start begins the scheduler. The scheduler stops when ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.config.Schedule)
	s.log.Info("audit cleanup scheduler started",
		zap.String("schedule", s.config.Schedule),
		zap.Int("retention_days", s.config.RetentionDays),
		zap.Timep("next_run", nextRun))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	s.log.Info("audit cleanup scheduler stopped")
}

// RunNow enqueues a cleanup task immediately.
func (s *AuditCleanupScheduler) RunNow(ctx context.Context) error {
	return s.enqueue(ctx, tasks.CleanupAuditEventsTask{RetentionDays: s.config.RetentionDays})
}

// IsRunning returns whether the scheduler is active
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will occur
func (s *AuditCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *AuditCleanupScheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	if err := s.RunNow(ctx); err != nil {
		s.log.Error("failed to enqueue audit cleanup", zap.Error(err))
		return
	}
	s.log.Info("audit cleanup enqueued", zap.Int("retention_days", s.config.RetentionDays))
}

func newParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateCronSchedule checks if a cron expression is valid
func ValidateCronSchedule(schedule string) error {
	_, err := newParser().Parse(schedule)
	return err
}

// GetNextRunTime calculates the next run time for a cron schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := newParser().Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
