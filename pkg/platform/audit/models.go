// Package audit records security-relevant signup events. Publishing is
// best-effort: a failed append never fails the request that produced it.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventAction names an auditable action.
type EventAction string

const (
	EventUserRegistered EventAction = "user.registered"
	EventUserConfirmed  EventAction = "user.confirmed"
	EventEmailFailed    EventAction = "email.delivery_failed"
)

// Event is a single audit record. Metadata carries small, non-sensitive
// context such as the parsed browser name; never passwords or tokens.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	Action     string            `json:"action"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader lists stored events. Append-only stores (Kafka) do not implement it.
type Reader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Event, error)
}
