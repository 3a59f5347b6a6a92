package entities

import "time"

type AuditAction string

const (
	AuditActionBookCreate AuditAction = "book_create"
	AuditActionBookUpdate AuditAction = "book_update"
	AuditActionBookDelete AuditAction = "book_delete"
)

type AuditStatus string

const AuditStatusSuccess AuditStatus = "success"

type AuditEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Action      AuditAction `gorm:"index;size:50" json:"action"`
	Description string      `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  string      `gorm:"size:50" json:"entity_type"`
	EntityID    *uint       `gorm:"index" json:"entity_id,omitempty"`
	Metadata    string      `gorm:"type:text" json:"metadata,omitempty"` // JSON of the changed fields
	RequestID   string      `gorm:"size:36" json:"request_id,omitempty"`
	IPAddress   string      `gorm:"size:45" json:"ip_address,omitempty"`
	Status      AuditStatus `gorm:"size:20" json:"status"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
