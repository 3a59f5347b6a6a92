package audit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/bookapi/internal/database/audit"
	"github.com/mrlokans/bookapi/internal/entities"
)

const entityTypeBook = "book"

// RequestMeta identifies the request that caused an audited change.
type RequestMeta struct {
	RequestID string
	IPAddress string
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	log  *zap.Logger
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log.Named("audit")}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			s.log.Error("failed to log audit event",
				zap.String("action", string(event.Action)),
				zap.Error(err))
		}
	}()
}

// Wait blocks until every event queued with LogAsync has been written.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogBookCreate records the creation of a book.
func (s *Service) LogBookCreate(book *entities.Book, meta RequestMeta) {
	s.LogAsync(s.bookEvent(entities.AuditActionBookCreate, book.ID, "Created book: "+book.Title, map[string]any{
		"title":  book.Title,
		"author": book.Author,
		"year":   book.Year,
	}, meta))
}

// LogBookUpdate records the fields changed by a partial update.
func (s *Service) LogBookUpdate(book *entities.Book, changes map[string]any, meta RequestMeta) {
	s.LogAsync(s.bookEvent(entities.AuditActionBookUpdate, book.ID, "Updated book: "+book.Title, changes, meta))
}

// LogBookDelete records the removal of a book.
func (s *Service) LogBookDelete(bookID uint, meta RequestMeta) {
	s.LogAsync(s.bookEvent(entities.AuditActionBookDelete, bookID, fmt.Sprintf("Deleted book %d", bookID), nil, meta))
}

func (s *Service) bookEvent(action entities.AuditAction, bookID uint, description string, metadata map[string]any, meta RequestMeta) *entities.AuditEvent {
	event := &entities.AuditEvent{
		Action:      action,
		Description: truncate(description, 500),
		EntityType:  entityTypeBook,
		EntityID:    &bookID,
		RequestID:   meta.RequestID,
		IPAddress:   meta.IPAddress,
		Status:      entities.AuditStatusSuccess,
		CreatedAt:   time.Now(),
	}

	if len(metadata) > 0 {
		if mdBytes, err := json.Marshal(metadata); err == nil {
			event.Metadata = string(mdBytes)
		}
	}
	return event
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByAction retrieves audit events filtered by action.
func (s *Service) GetEventsByAction(action entities.AuditAction, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByAction(action, limit, offset)
}

// GetEventsForBook retrieves the audit history of one book.
func (s *Service) GetEventsForBook(bookID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsForBook(bookID, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
