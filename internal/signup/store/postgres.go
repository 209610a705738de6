package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"handmadepixel/internal/signup/models"
	"handmadepixel/pkg/platform/sentinel"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresStore persists accounts and tokens in PostgreSQL. See
// db/schema.sql for the table definitions.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed store on an existing pool.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// RunInTx runs fn inside a single transaction and commits only when fn
// returns nil. Any error (or panic) rolls the transaction back, so a failed
// registration leaves no partial rows behind.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(tx RegistrationTx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = sqlTx.Rollback()
		}
	}()

	if err := fn(&postgresTx{tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

// UserIDByToken resolves a confirmation token to the account it belongs to.
// A clean miss returns sentinel.ErrNotFound.
func (s *PostgresStore) UserIDByToken(ctx context.Context, token string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id FROM user_tokens WHERE user_token = $1`,
		token,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("token lookup: %w", sentinel.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("token lookup: %w", err)
	}
	return userID, nil
}

// ConfirmUser flips the account status to confirmed. Overwriting an already
// confirmed account is a no-op by design.
func (s *PostgresStore) ConfirmUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET status = $1 WHERE id = $2`,
		models.UserStatusConfirmed, userID,
	)
	if err != nil {
		return fmt.Errorf("confirm user: %w", err)
	}
	return nil
}

type postgresTx struct {
	tx *sql.Tx
}

func (t *postgresTx) InsertUser(ctx context.Context, user models.User) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Username, user.Password, user.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (t *postgresTx) InsertToken(ctx context.Context, token string, userID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO user_tokens (user_token, user_id) VALUES ($1, $2)`,
		token, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert token: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
