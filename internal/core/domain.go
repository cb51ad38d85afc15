package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// DefaultCategory is the sentinel used when a transaction is recorded
// without a category, so category aggregation stays stable.
const DefaultCategory = "Uncategorized"

type (
	// Kind is the transaction direction.
	Kind string

	// Date is a calendar date. The time-of-day portion is always
	// midnight UTC; only year/month/day are significant.
	Date struct {
		time.Time
	}

	// Money is a fixed-point amount in minor units (cents).
	// Arithmetic happens on cents; decimal strings exist only at
	// the parse/format boundary.
	Money struct {
		Cents int64
	}

	// Transaction is a single recorded income or expense.
	Transaction struct {
		ID        int64     `json:"id"`
		Date      Date      `json:"date"`
		Kind      Kind      `json:"type"`
		Amount    Money     `json:"amount"`
		Category  string    `json:"category"`
		Note      string    `json:"note"`
		CreatedAt time.Time `json:"created_at"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
)

// ParseKind normalizes free-text type input. Empty input defaults to
// Expense, matching the behavior users of the v1 data files expect.
// Matching is case-insensitive but otherwise exact: anything that is
// not "income" or "expense" is rejected rather than defaulted.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return Expense, nil
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) Validate() error {
	if k != Income && k != Expense {
		return ErrInvalidKind
	}
	return nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// In reports whether the date falls in the given calendar month.
func (d Date) In(year, month int) bool {
	return d.Year() == year && int(d.Time.Month()) == month
}

// Month returns the month as an int (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
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

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
