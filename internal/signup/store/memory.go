package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"handmadepixel/internal/signup/models"
	"handmadepixel/pkg/platform/sentinel"
)

// MemoryStore keeps accounts and tokens in process memory. It backs unit
// tests and local runs without a database, and intentionally favors clarity
// over performance.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]models.User
	tokens map[string]uuid.UUID
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		users:  make(map[uuid.UUID]models.User),
		tokens: make(map[string]uuid.UUID),
	}
}

// RunInTx stages writes and applies them only when fn returns nil, mirroring
// the commit/rollback contract of the Postgres store.
func (s *MemoryStore) RunInTx(ctx context.Context, fn func(tx RegistrationTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{
		store:  s,
		users:  make(map[uuid.UUID]models.User),
		tokens: make(map[string]uuid.UUID),
	}
	if err := fn(tx); err != nil {
		return err
	}

	for id, user := range tx.users {
		s.users[id] = user
	}
	for token, id := range tx.tokens {
		s.tokens[token] = id
	}
	return nil
}

// UserIDByToken resolves a token to its account id, returning
// sentinel.ErrNotFound on a miss.
func (s *MemoryStore) UserIDByToken(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.tokens[token]; ok {
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("token lookup: %w", sentinel.ErrNotFound)
}

// ConfirmUser sets the account status to confirmed. Like the SQL UPDATE it
// mirrors, confirming a missing or already confirmed account is not an error.
func (s *MemoryStore) ConfirmUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.Status = models.UserStatusConfirmed
		s.users[userID] = user
	}
	return nil
}

// User returns the stored account for id, for assertions in tests.
func (s *MemoryStore) User(id uuid.UUID) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

// UserByEmail returns the stored account for an email address.
func (s *MemoryStore) UserByEmail(address string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == address {
			return user, true
		}
	}
	return models.User{}, false
}

// TokenForUser returns the confirmation token associated with an account.
func (s *MemoryStore) TokenForUser(id uuid.UUID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for token, userID := range s.tokens {
		if userID == id {
			return token, true
		}
	}
	return "", false
}

// Len reports the number of stored accounts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

type memoryTx struct {
	store  *MemoryStore
	users  map[uuid.UUID]models.User
	tokens map[string]uuid.UUID
}

func (t *memoryTx) InsertUser(_ context.Context, user models.User) error {
	if _, ok := t.store.users[user.ID]; ok {
		return fmt.Errorf("insert user: %w", sentinel.ErrConflict)
	}
	if _, ok := t.users[user.ID]; ok {
		return fmt.Errorf("insert user: %w", sentinel.ErrConflict)
	}
	t.users[user.ID] = user
	return nil
}

func (t *memoryTx) InsertToken(_ context.Context, token string, userID uuid.UUID) error {
	if _, ok := t.store.tokens[token]; ok {
		return fmt.Errorf("insert token: %w", sentinel.ErrConflict)
	}
	if _, ok := t.tokens[token]; ok {
		return fmt.Errorf("insert token: %w", sentinel.ErrConflict)
	}
	t.tokens[token] = userID
	return nil
}
