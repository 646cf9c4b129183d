// Package dashboard orchestrates per-user transaction operations and builds
// the derived view consumed by the renderer.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"

	"github.com/google/uuid"
)

// Service scopes every operation to the session passed in by the caller; it
// never accepts a foreign user id, so one user's partition is unreachable
// from another user's requests.
type Service struct {
	txs storage.TransactionRepository
	now func() time.Time
}

func NewService(txs storage.TransactionRepository) *Service {
	return &Service{txs: txs, now: time.Now}
}

// List returns the owner's transactions in insertion order.
func (s *Service) List(ctx context.Context, sess core.Session) ([]core.Transaction, error) {
	return s.txs.LoadTransactions(ctx, sess.UserID)
}

// Add validates and appends a transaction to the owner's collection, then
// persists the whole collection. The amount is stored as its absolute value;
// the direction comes from the type.
func (s *Service) Add(ctx context.Context, sess core.Session, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	t.Amount = t.Amount.Abs()
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	txs, err := s.txs.LoadTransactions(ctx, sess.UserID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transactions: %w", err)
	}
	txs = append(txs, t)
	if err := s.txs.SaveTransactions(ctx, sess.UserID, txs); err != nil {
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	slog.InfoContext(ctx, "Transaction added",
		"user_id", sess.UserID, "id", t.ID, "type", t.Type, "amount_cents", t.Amount.Cents)
	return t, nil
}

// Remove filters the transaction out of the owner's collection and persists
// the remainder. Removing an absent id is a no-op.
func (s *Service) Remove(ctx context.Context, sess core.Session, id string) error {
	txs, err := s.txs.LoadTransactions(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	kept := txs[:0]
	for _, t := range txs {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(txs) {
		return nil
	}

	if err := s.txs.SaveTransactions(ctx, sess.UserID, kept); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	slog.InfoContext(ctx, "Transaction removed", "user_id", sess.UserID, "id", id)
	return nil
}

// EnsureSeed materializes the starter transactions for a freshly
// authenticated user whose collection is still empty, so the first dashboard
// is never blank. Subsequent calls are no-ops.
func (s *Service) EnsureSeed(ctx context.Context, sess core.Session) error {
	txs, err := s.txs.LoadTransactions(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	if len(txs) > 0 {
		return nil
	}

	seed := starterTransactions(s.now())
	if err := s.txs.SaveTransactions(ctx, sess.UserID, seed); err != nil {
		return fmt.Errorf("seed transactions: %w", err)
	}
	slog.InfoContext(ctx, "Starter transactions seeded", "user_id", sess.UserID, "count", len(seed))
	return nil
}
