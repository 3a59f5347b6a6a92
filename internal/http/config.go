package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/bookapi/internal/audit"
	"github.com/mrlokans/bookapi/internal/database"
	"github.com/mrlokans/bookapi/internal/schema"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database  *database.Database
	Validator *schema.Validator
	Logger    *zap.Logger

	// Audit trail (optional)
	AuditService *audit.Service

	// Background task queue (optional), reported by /health
	TaskQueue TaskQueue

	// Reject writes with 403
	ReadOnly bool

	// HSTS max-age in seconds, 0 disables the header
	HSTSMaxAge int

	// Application info
	Version string
}
