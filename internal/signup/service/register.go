package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"handmadepixel/internal/signup/domain"
	"handmadepixel/internal/signup/models"
	"handmadepixel/internal/signup/store"
	dErrors "handmadepixel/pkg/domain-errors"
	"handmadepixel/pkg/email"
	"handmadepixel/pkg/platform/audit"
)

// RegisterRequest carries the raw form input plus the requesting client's
// User-Agent for audit metadata.
type RegisterRequest struct {
	Email     string
	Username  string
	Password  string
	UserAgent string
}

// Register creates a pending account and sends its confirmation email.
//
// The account insert and the token insert share one transaction: either both
// persist or neither does. The email is sent only after commit, so a
// delivery failure surfaces as an error while the pending account and its
// token stay durable. There is no retry and no compensating delete.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	ctx, span := tracer.Start(ctx, "signup.Register")
	defer span.End()

	username, err := domain.ParseUsername(req.Username)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeBadRequest, "parse username", err)
	}
	address, err := domain.ParseEmail(req.Email)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeBadRequest, "parse email", err)
	}

	token, err := s.tokens.Token()
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "generate confirmation token", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    address.String(),
		Username: username.String(),
		Password: req.Password,
		Status:   models.UserStatusPendingConfirmation,
	}

	err = s.store.RunInTx(ctx, func(tx store.RegistrationTx) error {
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}
		return tx.InsertToken(ctx, token, user.ID)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist registration", "error", err.Error())
		return dErrors.New(dErrors.CodeInternal, "failed to register user")
	}

	s.metrics.IncUsersRegistered()
	s.emit(ctx, audit.Event{
		UserID:   user.ID,
		Action:   string(audit.EventUserRegistered),
		Metadata: deviceMetadata(req.UserAgent),
	})

	if err := s.sendConfirmationEmail(ctx, address, token); err != nil {
		s.metrics.IncConfirmationEmail("failed")
		s.emit(ctx, audit.Event{
			UserID: user.ID,
			Action: string(audit.EventEmailFailed),
		})
		s.logger.ErrorContext(ctx, "failed to send confirmation email",
			"user_id", user.ID.String(),
			"error", err.Error(),
		)
		// The account and token are already committed; the caller sees an
		// error but the pending registration stays durable.
		return dErrors.New(dErrors.CodeInternal, "failed to send confirmation email")
	}
	s.metrics.IncConfirmationEmail("sent")

	s.logger.InfoContext(ctx, "registered pending account", "user_id", user.ID.String())
	return nil
}

func (s *Service) sendConfirmationEmail(ctx context.Context, recipient domain.Email, token string) error {
	ctx, span := tracer.Start(ctx, "signup.SendConfirmationEmail")
	defer span.End()

	link := fmt.Sprintf("%s/login-signup/confirm?subscription_token=%s", s.baseURL, token)
	name := email.GreetingName(recipient.String())

	htmlBody := fmt.Sprintf(
		`Welcome to Handmade Pixel, %s! <br />Click <a href="%s">here</a> to confirm your account.`,
		name, link,
	)
	textBody := fmt.Sprintf(
		"Welcome to Handmade Pixel, %s!\nVisit %s to confirm your account.",
		name, link,
	)

	return s.mailer.Send(ctx, recipient, "Welcome!", htmlBody, textBody)
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err.Error(),
		)
	}
}

// deviceMetadata extracts coarse browser and OS facts from a User-Agent
// header. Empty or unparsable agents produce no metadata.
func deviceMetadata(rawUA string) map[string]string {
	if rawUA == "" {
		return nil
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	md := make(map[string]string, 3)
	if name != "" {
		md["browser"] = name
	}
	if version != "" {
		md["browser_version"] = version
	}
	if os := ua.OS(); os != "" {
		md["os"] = os
	}
	if len(md) == 0 {
		return nil
	}
	return md
}
