package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookapi/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// GetEvents retrieves paginated audit events, most recent first.
func (r *Repository) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return r.list(r.db.Model(&entities.AuditEvent{}), limit, offset)
}

// GetEventsByAction retrieves audit events filtered by action.
func (r *Repository) GetEventsByAction(action entities.AuditAction, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return r.list(r.db.Model(&entities.AuditEvent{}).Where("action = ?", action), limit, offset)
}

// GetEventsForBook retrieves the history of a single book.
func (r *Repository) GetEventsForBook(bookID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	query := r.db.Model(&entities.AuditEvent{}).Where("entity_type = ? AND entity_id = ?", "book", bookID)
	return r.list(query, limit, offset)
}

func (r *Repository) list(query *gorm.DB, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
