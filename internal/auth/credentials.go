package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/storage"

	"github.com/google/uuid"
)

const minPasswordLen = 6

var (
	// ErrInvalidInput covers empty fields, short passwords and confirmation
	// mismatches; wrapped values carry the specific reason.
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
)

// CredentialStore manages the registered-user collection. There is no update
// or delete flow: accounts are only ever created.
type CredentialStore struct {
	users  storage.UserRepository
	hasher Hasher
}

func NewCredentialStore(users storage.UserRepository, hasher Hasher) *CredentialStore {
	return &CredentialStore{users: users, hasher: hasher}
}

// Register validates the form fields, enforces case-insensitive email
// uniqueness and appends a new user with a freshly hashed password.
func (c *CredentialStore) Register(ctx context.Context, name, email, password, confirm string) (*core.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	if password != confirm {
		return nil, fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}

	if _, err := c.users.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	u := &core.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: c.hasher.Hash(password),
	}
	if err := c.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// FindByEmail looks up a user case-insensitively; returns nil without error
// when no account matches.
func (c *CredentialStore) FindByEmail(ctx context.Context, email string) (*core.User, error) {
	u, err := c.users.FindUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	return u, nil
}
