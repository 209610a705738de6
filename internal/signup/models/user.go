// Package models defines the persisted shapes of the signup flow.
package models

import "github.com/google/uuid"

// UserStatus tracks where an account is in the confirmation lifecycle.
type UserStatus string

const (
	// UserStatusPendingConfirmation marks an account created but not yet
	// confirmed by its owner.
	UserStatusPendingConfirmation UserStatus = "pending_confirmation"
	// UserStatusConfirmed marks an account whose owner proved control of
	// the email address. Never reverted.
	UserStatusConfirmed UserStatus = "confirmed"
)

// User is an account row. Password is opaque to this service and is stored
// as received; it must never appear in logs or error messages.
type User struct {
	ID       uuid.UUID
	Email    string
	Username string
	Password string
	Status   UserStatus
}
