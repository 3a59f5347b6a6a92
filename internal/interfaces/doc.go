// Package interfaces documents the seams between the service's components.
//
// # Interface Categories
//
//   - AuditEventCleaner: deletes expired audit events (internal/tasks/cleanup_audit.go)
//   - TaskEnqueuer: adds tasks to the background queue (internal/scheduler/audit_cleanup.go)
//   - TaskQueue: task queue state for health checks (internal/http/health.go)
//
// # Adding a Background Task
//
//  1. Define the task and its queue in internal/tasks/
//  2. Register the queue in entrypoint.Setup
//  3. Enqueue it from a handler or a scheduler through TaskEnqueuer
//
// A task declares its queue settings:
//
//	type ReindexBooksTask struct{}
//
//	func (t ReindexBooksTask) Config() backlite.QueueConfig {
//		return backlite.QueueConfig{Name: "reindex_books", MaxAttempts: 1, Timeout: time.Minute}
//	}
//
//	func NewReindexBooksQueue(db *gorm.DB) backlite.Queue
//
// # Compile-Time Interface Checks
//
// Implementations include compile-time checks so a missing method fails the
// build rather than a request:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
