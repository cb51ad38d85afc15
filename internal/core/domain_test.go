package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		err  error
	}{
		{"income", Income, nil},
		{"expense", Expense, nil},
		{"Income", Income, nil},
		{" EXPENSE ", Expense, nil},
		{"", Expense, nil}, // blank defaults to expense
		{"refund", "", ErrInvalidKind},
		{"incomes", "", ErrInvalidKind},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if !errors.Is(err, tc.err) {
			t.Fatalf("ParseKind(%q) err = %v, want %v", tc.in, err, tc.err)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-05")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2025-01-05" {
		t.Fatalf("String() = %q", d.String())
	}
	if !d.In(2025, 1) || d.In(2025, 2) || d.In(2024, 1) {
		t.Fatal("In() misclassifies the date's month")
	}

	for _, bad := range []string{"2025-13-01", "05-01-2025", "yesterday", ""} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, 2, 1)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-02-01"` {
		t.Fatalf("marshal = %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip = %v, want %v", back, d)
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		ID:        1,
		Date:      NewDate(2025, 1, 5),
		Kind:      Income,
		Amount:    Money{Cents: 100000},
		Category:  "Salary",
		CreatedAt: time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"bad kind", func(tx *Transaction) { tx.Kind = "refund" }, ErrInvalidKind},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -1} }, ErrInvalidAmount},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"blank category", func(tx *Transaction) { tx.Category = "  " }, ErrEmptyCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
