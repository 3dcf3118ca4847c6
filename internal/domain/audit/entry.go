package audit

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action classifies what happened to the audited entity
type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionUpdate  Action = "UPDATE"
	ActionDelete  Action = "DELETE"
	ActionReverse Action = "REVERSE"
)

// IsValid checks if the action is a valid Action
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionReverse:
		return true
	}
	return false
}

// Details carries structured context for an audit entry, stored as JSONB
type Details map[string]interface{}

// Value implements driver.Valuer for JSONB storage
func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage
func (d *Details) Scan(value interface{}) error {
	if value == nil {
		*d = Details{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan audit details: unsupported type")
	}
	if len(bytes) == 0 {
		*d = Details{}
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// Entry is one append-only audit log record
type Entry struct {
	shared.BaseEntity
	Action     Action    `gorm:"type:varchar(20);not null;index"`
	EntityKind string    `gorm:"type:varchar(50);not null;index"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Details    Details   `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "audit_log"
}

// NewEntry creates a new audit entry
func NewEntry(action Action, entityKind string, entityID, actorID uuid.UUID, details Details) (*Entry, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action is not valid")
	}
	if entityKind == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_KIND", "Entity kind cannot be empty")
	}
	if entityID == uuid.Nil || actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Entity and actor IDs are required")
	}
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Action:     action,
		EntityKind: entityKind,
		EntityID:   entityID,
		ActorID:    actorID,
		Details:    details,
	}, nil
}

// Repository persists audit entries. Entries are append-only.
type Repository interface {
	// Append stores a new entry
	Append(ctx context.Context, entry *Entry) error

	// FindAll lists entries matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Entry, error)

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
