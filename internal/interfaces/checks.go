package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookapi/internal/audit"
	"github.com/mrlokans/bookapi/internal/http"
	"github.com/mrlokans/bookapi/internal/scheduler"
	"github.com/mrlokans/bookapi/internal/tasks"
)

// =============================================================================
// Background Work
// =============================================================================

// AuditEventCleaner implementations
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// TaskEnqueuer implementations
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)

// TaskQueue implementations
var _ http.TaskQueue = (*tasks.Client)(nil)
