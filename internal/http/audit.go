package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookapi/internal/audit"
	"github.com/mrlokans/bookapi/internal/entities"
	"github.com/mrlokans/bookapi/internal/schema"
)

type AuditController struct {
	auditService *audit.Service
}

func NewAuditController(auditService *audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// AuditEventsResponse is a page of audit events, newest first.
type AuditEventsResponse struct {
	Events []entities.AuditEvent `json:"events"`
	Total  int64                 `json:"total"`
	Skip   int                   `json:"skip"`
	Limit  int                   `json:"limit"`
}

// GetAuditEvents returns paginated audit events as JSON, optionally filtered
// by action or book.
// GET /audit/?skip=&limit=&action=&book_id=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	query := c.Request.URL.Query()
	page, err := schema.ParsePage(query)
	if err != nil {
		respondError(c, err, "parse page")
		return
	}

	var events []entities.AuditEvent
	var total int64

	switch {
	case query.Get("book_id") != "":
		bookID, perr := schema.ParseID(query.Get("book_id"))
		if perr != nil {
			respondError(c, perr, "parse book_id")
			return
		}
		events, total, err = ac.auditService.GetEventsForBook(bookID, page.Limit, page.Skip)
	case query.Get("action") != "":
		events, total, err = ac.auditService.GetEventsByAction(entities.AuditAction(query.Get("action")), page.Limit, page.Skip)
	default:
		events, total, err = ac.auditService.GetEvents(page.Limit, page.Skip)
	}
	if err != nil {
		respondInternalError(c, err, "get audit events")
		return
	}

	if events == nil {
		events = []entities.AuditEvent{}
	}
	c.JSON(http.StatusOK, AuditEventsResponse{
		Events: events,
		Total:  total,
		Skip:   page.Skip,
		Limit:  page.Limit,
	})
}
