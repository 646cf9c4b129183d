package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable backend. It implements UserRepository,
// SessionRepository (the durable scope), TransactionRepository and
// PrefRepository over a single database file.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser implements UserRepository.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u *core.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, email_lc, password_hash) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, strings.ToLower(u.Email), u.PasswordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User saved to SQLite", "id", u.ID, "email", u.Email)
	return nil
}

// FindUserByEmail implements UserRepository; the lookup is case-insensitive.
func (r *SQLiteRepository) FindUserByEmail(ctx context.Context, email string) (*core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE email_lc = ?`,
		strings.ToLower(strings.TrimSpace(email)))

	var u core.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// GetSession implements the durable scope of SessionRepository.
func (r *SQLiteRepository) GetSession(ctx context.Context) (*core.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, email FROM sessions WHERE slot = 'current'`)

	var s core.Session
	if err := row.Scan(&s.UserID, &s.Name, &s.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

func (r *SQLiteRepository) PutSession(ctx context.Context, s *core.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (slot, user_id, name, email) VALUES ('current', ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET user_id = excluded.user_id, name = excluded.name, email = excluded.email`,
		s.UserID, s.Name, s.Email)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE slot = 'current'`); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LoadTransactions implements TransactionRepository. Rows that no longer
// parse as valid transactions are skipped with a warning rather than failing
// the whole load, so a corrupted record degrades to "less data", not an
// unusable dashboard.
func (r *SQLiteRepository) LoadTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, amount_cents, date, category, type
		 FROM transactions WHERE user_id = ? ORDER BY position`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			t       core.Transaction
			dateStr string
			typStr  string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Amount.Cents, &dateStr, &t.Category, &typStr); err != nil {
			slog.WarnContext(ctx, "Skipping unreadable transaction row", "user_id", userID, "error", err)
			continue
		}
		d, err := core.ParseDate(dateStr)
		if err != nil {
			slog.WarnContext(ctx, "Skipping transaction with malformed date", "id", t.ID, "date", dateStr)
			continue
		}
		t.Date = d
		t.Type = core.TxType(typStr)
		if err := t.Type.Validate(); err != nil {
			slog.WarnContext(ctx, "Skipping transaction with unknown type", "id", t.ID, "type", typStr)
			continue
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return txs, nil
}

// SaveTransactions implements TransactionRepository as a full-collection
// overwrite of the owner's partition, matching the caller contract of
// "mutate in memory, persist the whole collection".
func (r *SQLiteRepository) SaveTransactions(ctx context.Context, userID string, txs []core.Transaction) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transactions: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbtx.PrepareContext(ctx,
		`INSERT INTO transactions (id, user_id, title, amount_cents, date, category, type, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txs {
		if _, err := stmt.ExecContext(ctx,
			t.ID, userID, t.Title, t.Amount.Cents, t.Date.String(), t.Category, string(t.Type), i); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit save transactions: %w", err)
	}

	slog.InfoContext(ctx, "Transactions saved to SQLite", "user_id", userID, "count", len(txs))
	return nil
}

// DarkMode implements PrefRepository; missing or malformed values fall back
// to the default (off).
func (r *SQLiteRepository) DarkMode(ctx context.Context) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = 'dark'`)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("get dark mode: %w", err)
	}
	return v == "1", nil
}

func (r *SQLiteRepository) SetDarkMode(ctx context.Context, on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO prefs (key, value) VALUES ('dark', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, v)
	if err != nil {
		return fmt.Errorf("set dark mode: %w", err)
	}
	return nil
}
