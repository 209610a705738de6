//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"handmadepixel/internal/signup/models"
	"handmadepixel/internal/signup/store"
	"handmadepixel/pkg/platform/sentinel"
	"handmadepixel/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	// Truncate in dependency order
	err := s.postgres.TruncateTables(context.Background(), "user_tokens", "users")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) registerUser(email, token string) models.User {
	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Username: "ajeej",
		Password: "password",
		Status:   models.UserStatusPendingConfirmation,
	}
	err := s.store.RunInTx(context.Background(), func(tx store.RegistrationTx) error {
		if err := tx.InsertUser(context.Background(), user); err != nil {
			return err
		}
		return tx.InsertToken(context.Background(), token, user.ID)
	})
	s.Require().NoError(err)
	return user
}

func (s *PostgresStoreSuite) TestCommitPersistsUserAndToken() {
	ctx := context.Background()
	user := s.registerUser("a@b.com", "tok-commit")

	id, err := s.store.UserIDByToken(ctx, "tok-commit")
	s.Require().NoError(err)
	s.Equal(user.ID, id)

	var status string
	err = s.postgres.DB.QueryRowContext(ctx,
		`SELECT status FROM users WHERE id = $1`, user.ID,
	).Scan(&status)
	s.Require().NoError(err)
	s.Equal("pending_confirmation", status)
}

func (s *PostgresStoreSuite) TestRolledBackTxLeavesNoRows() {
	ctx := context.Background()
	user := models.User{
		ID:       uuid.New(),
		Email:    "rollback@b.com",
		Username: "ajeej",
		Password: "password",
		Status:   models.UserStatusPendingConfirmation,
	}

	err := s.store.RunInTx(ctx, func(tx store.RegistrationTx) error {
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}
		return errors.New("forced failure after first write")
	})
	s.Require().Error(err)

	var count int
	err = s.postgres.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE id = $1`, user.ID,
	).Scan(&count)
	s.Require().NoError(err)
	s.Equal(0, count, "no partial write may survive rollback")
}

func (s *PostgresStoreSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()
	s.registerUser("dup@b.com", "tok-first")

	dup := models.User{
		ID:       uuid.New(),
		Email:    "dup@b.com",
		Username: "other",
		Password: "password",
		Status:   models.UserStatusPendingConfirmation,
	}
	err := s.store.RunInTx(ctx, func(tx store.RegistrationTx) error {
		if err := tx.InsertUser(ctx, dup); err != nil {
			return err
		}
		return tx.InsertToken(ctx, "tok-second", dup.ID)
	})
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	_, err = s.store.UserIDByToken(ctx, "tok-second")
	s.ErrorIs(err, sentinel.ErrNotFound, "token from the failed tx must not exist")
}

func (s *PostgresStoreSuite) TestUnknownTokenIsNotFound() {
	_, err := s.store.UserIDByToken(context.Background(), "unknown")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestConfirmUserIsIdempotent() {
	ctx := context.Background()
	user := s.registerUser("confirm@b.com", "tok-confirm")

	s.Require().NoError(s.store.ConfirmUser(ctx, user.ID))
	s.Require().NoError(s.store.ConfirmUser(ctx, user.ID))

	var status string
	err := s.postgres.DB.QueryRowContext(ctx,
		`SELECT status FROM users WHERE id = $1`, user.ID,
	).Scan(&status)
	s.Require().NoError(err)
	s.Equal("confirmed", status)
}
