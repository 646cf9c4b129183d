// Package storage provides the persistence layer behind the credential,
// session, transaction and preference stores. Two backends exist: a durable
// SQLite repository and a process-scoped in-memory store.
package storage

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

// UserRepository is the credential store's backing collection. Users are
// append-only; there is no update or delete.
type UserRepository interface {
	CreateUser(ctx context.Context, u *core.User) error
	// FindUserByEmail looks up a user case-insensitively.
	// Returns ErrNotFound when no user has the email.
	FindUserByEmail(ctx context.Context, email string) (*core.User, error)
}

// SessionRepository holds at most one session record per scope. Each backend
// instance represents a single scope (durable or process-lifetime).
type SessionRepository interface {
	GetSession(ctx context.Context) (*core.Session, error)
	PutSession(ctx context.Context, s *core.Session) error
	DeleteSession(ctx context.Context) error
}

// TransactionRepository persists per-user transaction collections. Records
// are partitioned by owner id: Load for one user can never observe another
// user's rows. Save is a full-collection overwrite.
type TransactionRepository interface {
	LoadTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, userID string, txs []core.Transaction) error
}

// PrefRepository persists small UI flags.
type PrefRepository interface {
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, on bool) error
}
