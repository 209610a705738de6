package service

import (
	"context"
	"errors"

	dErrors "handmadepixel/pkg/domain-errors"
	"handmadepixel/pkg/platform/audit"
	"handmadepixel/pkg/platform/sentinel"
)

// Confirm resolves token to an account and promotes it to confirmed.
//
// An unknown token maps to CodeUnauthorized so the handler can answer 401
// without leaking whether storage is healthy. Replaying a valid token is
// idempotent: the status overwrite is a no-op and the call succeeds again.
func (s *Service) Confirm(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "signup.Confirm")
	defer span.End()

	userID, err := s.store.UserIDByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeUnauthorized, "unknown confirmation token")
		}
		s.logger.ErrorContext(ctx, "failed to resolve confirmation token", "error", err.Error())
		return dErrors.New(dErrors.CodeInternal, "failed to resolve confirmation token")
	}

	if err := s.store.ConfirmUser(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to confirm account",
			"user_id", userID.String(),
			"error", err.Error(),
		)
		return dErrors.New(dErrors.CodeInternal, "failed to confirm account")
	}

	s.metrics.IncUsersConfirmed()
	s.emit(ctx, audit.Event{
		UserID: userID,
		Action: string(audit.EventUserConfirmed),
	})

	s.logger.InfoContext(ctx, "confirmed account", "user_id", userID.String())
	return nil
}
