package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent represents an append-only event emitted via the outbox pattern.
// Rows are written inside the same transaction as the domain change and
// drained by the outbox publisher worker.
type OutboxEvent struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	EventType     string          `gorm:"column:event_type;size:64;not null"`
	AggregateType string          `gorm:"column:aggregate_type;size:64;not null"`
	AggregateID   int64           `gorm:"column:aggregate_id;not null"`
	Payload       json.RawMessage `gorm:"column:payload;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	PublishedAt   *time.Time      `gorm:"column:published_at"`
	AttemptCount  int             `gorm:"column:attempt_count;not null;default:0"`
	LastError     *string         `gorm:"column:last_error"`
}

// TableName keeps the plural table the migrations create.
func (OutboxEvent) TableName() string {
	return "outbox_events"
}
