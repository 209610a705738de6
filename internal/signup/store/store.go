// Package store persists accounts and their confirmation tokens.
package store

import (
	"context"

	"github.com/google/uuid"

	"handmadepixel/internal/signup/models"
)

// RegistrationTx is the unit of work for creating a pending account. Both
// writes land in the same transaction: either the account and its token both
// persist, or neither does. The transaction is committed by RunInTx, never
// by the callback.
type RegistrationTx interface {
	InsertUser(ctx context.Context, user models.User) error
	InsertToken(ctx context.Context, token string, userID uuid.UUID) error
}

// Store is the persistence boundary for the signup flow.
//
// UserIDByToken returns sentinel.ErrNotFound (wrapped) on a clean miss so
// callers can distinguish an unknown token from storage failure.
// ConfirmUser is an idempotent overwrite: confirming an already confirmed
// account succeeds and leaves the status confirmed.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx RegistrationTx) error) error
	UserIDByToken(ctx context.Context, token string) (uuid.UUID, error)
	ConfirmUser(ctx context.Context, userID uuid.UUID) error
}
