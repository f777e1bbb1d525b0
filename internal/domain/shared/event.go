package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events implement
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	TenantID() uuid.UUID
	OccurredAt() time.Time
}

// BaseDomainEvent provides common fields for domain events
type BaseDomainEvent struct {
	ID       uuid.UUID
	Type     string
	Tenant   uuid.UUID
	Occurred time.Time
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType string, tenantID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:       uuid.New(),
		Type:     eventType,
		Tenant:   tenantID,
		Occurred: time.Now(),
	}
}

// EventID returns the unique event identifier
func (e BaseDomainEvent) EventID() uuid.UUID { return e.ID }

// EventType returns the event type name
func (e BaseDomainEvent) EventType() string { return e.Type }

// TenantID returns the tenant the event belongs to
func (e BaseDomainEvent) TenantID() uuid.UUID { return e.Tenant }

// OccurredAt returns when the event occurred
func (e BaseDomainEvent) OccurredAt() time.Time { return e.Occurred }

// EventPublisher publishes domain events after a unit of work commits
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// NoOpEventPublisher discards all events. Used when no subscriber is wired.
type NoOpEventPublisher struct{}

// Publish discards the events
func (NoOpEventPublisher) Publish(_ context.Context, _ ...DomainEvent) error { return nil }
