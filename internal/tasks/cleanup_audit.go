package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// DefaultAuditRetentionDays is used when neither the task nor the processor
// specify a retention.
const DefaultAuditRetentionDays = 30

// CleanupAuditEventsQueueName names the backlite queue for audit cleanup.
const CleanupAuditEventsQueueName = "cleanup_audit_events"

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// CleanupAuditEventsTask removes audit events older than RetentionDays.
// Zero means the processor's default.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit cleanup tasks.
func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        CleanupAuditEventsQueueName,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// AuditCleanup processes CleanupAuditEventsTask.
type AuditCleanup struct {
	cleaner              AuditEventCleaner
	defaultRetentionDays int
	log                  *zap.Logger
}

// NewAuditCleanup creates the processor. A non-positive defaultRetentionDays
// falls back to DefaultAuditRetentionDays.
func NewAuditCleanup(cleaner AuditEventCleaner, defaultRetentionDays int, log *zap.Logger) *AuditCleanup {
	if defaultRetentionDays <= 0 {
		defaultRetentionDays = DefaultAuditRetentionDays
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditCleanup{
		cleaner:              cleaner,
		defaultRetentionDays: defaultRetentionDays,
		log:                  log.Named("audit_cleanup"),
	}
}

// Retention resolves the retention window of a task.
func (a *AuditCleanup) Retention(task CleanupAuditEventsTask) time.Duration {
	days := task.RetentionDays
	if days <= 0 {
		days = a.defaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// Process deletes the expired events. It is the queue's processor.
func (a *AuditCleanup) Process(ctx context.Context, task CleanupAuditEventsTask) error {
	if a.cleaner == nil {
		return errors.New("audit event cleaner not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	retention := a.Retention(task)
	deleted, err := a.cleaner.DeleteOldEvents(retention)
	if err != nil {
		return fmt.Errorf("cleanup audit events: %w", err)
	}

	a.log.Info("cleaned up audit events",
		zap.Int64("deleted", deleted),
		zap.Duration("retention", retention))
	return nil
}

// Queue wraps Process in a backlite queue for registration with a Client.
func (a *AuditCleanup) Queue() backlite.Queue {
	return backlite.NewQueue(a.Process)
}
