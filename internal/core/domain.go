package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

type (
	// TxType tells whether a transaction adds to or subtracts from the balance.
	TxType string

	// Date is a calendar date; the time-of-day component is always midnight UTC.
	Date struct {
		time.Time
	}

	// Money is an amount in cents. Transaction amounts are always stored as
	// absolute values; the sign is implied by the transaction type.
	Money struct {
		Cents int64
	}

	Transaction struct {
		ID       string
		Title    string
		Amount   Money
		Date     Date
		Category string
		Type     TxType
	}

	// User is a registered account. Records are append-only: there is no
	// profile edit or delete flow.
	User struct {
		ID           string
		Name         string
		Email        string
		PasswordHash string
	}

	// Session is the authenticated projection of a User, without the hash.
	Session struct {
		UserID string
		Name   string
		Email  string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrTitleTooLong  = errors.New("title too long (max 200 characters)")
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the ISO YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the YYYY-MM prefix used for month filtering.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t TxType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return ErrTitleTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return t.Type.Validate()
}
