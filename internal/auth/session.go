package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/storage"

	"golang.org/x/sync/singleflight"
)

var (
	ErrNoSuchAccount = errors.New("no account with this email")
	ErrWrongPassword = errors.New("wrong password")
)

// Scope names. The value travels to the client as the session cookie hint
// and comes back on every request, so it is part of the HTTP contract.
const (
	ScopeDurable = "durable"
	ScopeTab     = "tab"
)

// SessionManager moves between two states: anonymous (Current returns nil)
// and authenticated. The active session is persisted to exactly one of two
// scopes, chosen by the remember flag:
//
//   - remember = true  -> the durable store; survives a process restart
//   - remember = false -> the tab store; dies with the process
//
// Writing one scope always deletes the other, so at most one stored copy
// exists at any time.
type SessionManager struct {
	creds   *CredentialStore
	hasher  Hasher
	durable storage.SessionRepository
	tab     storage.SessionRepository

	// group serializes auth submissions per email so a double-submitted
	// form cannot race the hash round-trip.
	group singleflight.Group

	mu      sync.Mutex
	current *core.Session
}

func NewSessionManager(creds *CredentialStore, hasher Hasher, durable, tab storage.SessionRepository) *SessionManager {
	return &SessionManager{creds: creds, hasher: hasher, durable: durable, tab: tab}
}

// Current returns the active session, or nil when anonymous.
func (m *SessionManager) Current() *core.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	copied := *m.current
	return &copied
}

// Login authenticates by recomputing the password digest and comparing it to
// the stored hash. A missing account and a wrong password produce distinct,
// user-visible errors.
func (m *SessionManager) Login(ctx context.Context, email, password string, remember bool) (*core.Session, error) {
	v, err, _ := m.group.Do("login:"+strings.ToLower(strings.TrimSpace(email)), func() (any, error) {
		return m.login(ctx, email, password, remember)
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.Session), nil
}

func (m *SessionManager) login(ctx context.Context, email, password string, remember bool) (*core.Session, error) {
	user, err := m.creds.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSuchAccount
	}

	digest := m.hasher.Hash(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.PasswordHash)) != 1 {
		return nil, ErrWrongPassword
	}

	return m.activate(ctx, user, remember)
}

// Register creates the account and transitions straight to authenticated
// with a durable session (auto-login).
func (m *SessionManager) Register(ctx context.Context, name, email, password, confirm string) (*core.Session, error) {
	v, err, _ := m.group.Do("register:"+strings.ToLower(strings.TrimSpace(email)), func() (any, error) {
		user, err := m.creds.Register(ctx, name, email, password, confirm)
		if err != nil {
			return nil, err
		}
		return m.activate(ctx, user, true)
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.Session), nil
}

// Restore recovers a persisted session on process start: the durable scope
// wins, the tab scope is the fallback. The underlying user record is not
// re-validated; a session outliving its user stays restorable.
func (m *SessionManager) Restore(ctx context.Context) (*core.Session, error) {
	for _, repo := range []storage.SessionRepository{m.durable, m.tab} {
		s, err := repo.GetSession(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		m.mu.Lock()
		m.current = s
		m.mu.Unlock()
		slog.InfoContext(ctx, "Session restored", "user_id", s.UserID)
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

// Resolve returns the session persisted in the named scope, refreshing the
// in-memory current session as a side effect. An unknown scope or an empty
// slot resolves to nil without error: the caller is simply anonymous.
func (m *SessionManager) Resolve(ctx context.Context, scope string) (*core.Session, error) {
	var repo storage.SessionRepository
	switch scope {
	case ScopeDurable:
		repo = m.durable
	case ScopeTab:
		repo = m.tab
	default:
		return nil, nil
	}

	s, err := repo.GetSession(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	copied := *s
	return &copied, nil
}

// Logout clears the active session and both persisted scopes. Calling it
// while anonymous is a no-op.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.durable.DeleteSession(ctx); err != nil {
		return fmt.Errorf("clear durable session: %w", err)
	}
	if err := m.tab.DeleteSession(ctx); err != nil {
		return fmt.Errorf("clear tab session: %w", err)
	}
	slog.InfoContext(ctx, "Session cleared")
	return nil
}

func (m *SessionManager) activate(ctx context.Context, user *core.User, remember bool) (*core.Session, error) {
	s := &core.Session{UserID: user.ID, Name: user.Name, Email: user.Email}
	if err := m.persist(ctx, s, remember); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	slog.InfoContext(ctx, "Session started", "user_id", s.UserID, "remember", remember)
	copied := *s
	return &copied, nil
}

// persist writes the chosen scope and evicts the other. The eviction runs on
// every write, not just at login, to hold the single-copy invariant.
func (m *SessionManager) persist(ctx context.Context, s *core.Session, remember bool) error {
	write, evict := m.tab, m.durable
	if remember {
		write, evict = m.durable, m.tab
	}
	if err := write.PutSession(ctx, s); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := evict.DeleteSession(ctx); err != nil {
		return fmt.Errorf("evict session copy: %w", err)
	}
	return nil
}
