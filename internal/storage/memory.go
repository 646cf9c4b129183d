package storage

import (
	"context"
	"strings"
	"sync"

	"fintrack/internal/core"
)

// MemoryStore keeps everything in process memory. It backs the tab-scoped
// session slot (which must not survive a restart) and serves as the full
// backend in tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	users   []core.User
	session *core.Session
	txs     map[string][]core.Transaction
	dark    bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{txs: make(map[string][]core.Transaction)}
}

func (s *MemoryStore) CreateUser(_ context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, strings.TrimSpace(email)) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetSession(_ context.Context) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, ErrNotFound
	}
	copied := *s.session
	return &copied, nil
}

func (s *MemoryStore) PutSession(_ context.Context, sess *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.session = &copied
	return nil
}

func (s *MemoryStore) DeleteSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

func (s *MemoryStore) LoadTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs[userID]...), nil
}

func (s *MemoryStore) SaveTransactions(_ context.Context, userID string, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[userID] = append([]core.Transaction(nil), txs...)
	return nil
}

func (s *MemoryStore) DarkMode(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark, nil
}

func (s *MemoryStore) SetDarkMode(_ context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = on
	return nil
}
