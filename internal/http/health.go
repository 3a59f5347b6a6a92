package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/bookapi/internal/database"
)

type HealthResponse struct {
	Status       string            `json:"status"`
	Time         string            `json:"time"`
	Version      string            `json:"version,omitempty"`
	OpenSessions int64             `json:"open_sessions"`
	Checks       map[string]string `json:"checks"`
}

// TaskQueue reports whether background workers are processing tasks.
type TaskQueue interface {
	Running() bool
}

type HealthController struct {
	db      *database.Database
	tasks   TaskQueue
	version string
}

// NewHealthController creates the controller. tasks may be nil when the
// task queue is disabled.
func NewHealthController(db *database.Database, tasks TaskQueue, version string) *HealthController {
	return &HealthController{
		db:      db,
		tasks:   tasks,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"
	var openSessions int64

	// Check database connectivity
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
		openSessions = h.db.OpenSessions()
	} else {
		checks["database"] = "not configured"
	}

	// A stopped queue only delays audit cleanup, so it does not fail the check
	switch {
	case h.tasks == nil:
		checks["tasks"] = "disabled"
	case h.tasks.Running():
		checks["tasks"] = "ok"
	default:
		checks["tasks"] = "stopped"
	}

	health := HealthResponse{
		Status:       status,
		Time:         time.Now().Format(time.RFC3339),
		Version:      h.version,
		OpenSessions: openSessions,
		Checks:       checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
