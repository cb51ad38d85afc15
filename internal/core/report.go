package core

import "sort"

type (
	// Summary holds overall totals for a set of transactions.
	Summary struct {
		Income  Money `json:"income"`
		Expense Money `json:"expense"`
		Net     Money `json:"net"`
	}

	// CategoryAmount represents an amount aggregated by category name.
	CategoryAmount struct {
		Name   string `json:"name"`
		Amount Money  `json:"amount"`
	}

	// MonthReport is a compact summary for a specific year+month.
	MonthReport struct {
		Year        int              `json:"year"`
		Month       int              `json:"month"` // 1-12
		Totals      Summary          `json:"totals"`
		TopExpenses []CategoryAmount `json:"top_expenses"`
	}

	// RatingBand maps a net-savings lower bound (inclusive, in cents)
	// to a qualitative label. The bands are illustrative constants,
	// not a financial model; callers may swap in their own table.
	RatingBand struct {
		Min   int64
		Label string
	}

	// RatingTable is an ordered list of bands, highest bound first.
	RatingTable []RatingBand

	// WarnLevel classifies budget consumption for a month.
	WarnLevel string

	// BudgetWarning reports a category whose monthly spending is near
	// or over its budget.
	BudgetWarning struct {
		Category string    `json:"category"`
		Spent    Money     `json:"spent"`
		Budget   Money     `json:"budget"`
		Percent  int64     `json:"percent"`
		Level    WarnLevel `json:"level"`
	}
)

const (
	WarnNear WarnLevel = "near"
	WarnOver WarnLevel = "over"
)

// RatingDeficit is returned when net savings fall below every band.
const RatingDeficit = "Deficit"

// DefaultRatingTable returns the built-in savings bands.
func DefaultRatingTable() RatingTable {
	return RatingTable{
		{Min: 1000_00, Label: "Excellent"},
		{Min: 100_00, Label: "Good"},
		{Min: 0, Label: "Tight"},
	}
}

// Totals sums income and expense amounts over the snapshot.
// Deterministic and order-independent.
func Totals(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Kind {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// Rate selects the label of the first band whose lower bound the net
// amount reaches. Below every band the result is RatingDeficit.
func Rate(net Money, table RatingTable) string {
	for _, band := range table {
		if net.Cents >= band.Min {
			return band.Label
		}
	}
	return RatingDeficit
}

// CategoryBreakdown sums amounts per category for transactions of the
// given kind, over the full history. The result is ordered by
// descending amount, ties broken by category name ascending.
func CategoryBreakdown(txs []Transaction, kind Kind) []CategoryAmount {
	sums := make(map[string]int64)
	for _, t := range txs {
		if t.Kind != kind {
			continue
		}
		sums[t.Category] += t.Amount.Cents
	}
	out := make([]CategoryAmount, 0, len(sums))
	for name, cents := range sums {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sortByAmountDesc(out)
	return out
}

// MonthlyReport computes totals restricted to the given calendar month
// plus the top-N expense categories for that month.
func MonthlyReport(txs []Transaction, year, month, topN int) MonthReport {
	var subset []Transaction
	for _, t := range txs {
		if t.Date.In(year, month) {
			subset = append(subset, t)
		}
	}
	top := CategoryBreakdown(subset, Expense)
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	return MonthReport{
		Year:        year,
		Month:       month,
		Totals:      Totals(subset),
		TopExpenses: top,
	}
}

// BudgetWarnings evaluates each budgeted category against its expense
// total for the given month. Only NEAR (spent >= nearPercent% of the
// budget) and OVER (spent > budget) entries are returned, ordered by
// category name. A zero budget with any spending is OVER.
func BudgetWarnings(txs []Transaction, budgets map[string]Money, year, month int, nearPercent int64) []BudgetWarning {
	spentByCat := make(map[string]int64)
	for _, t := range txs {
		if t.Kind != Expense || !t.Date.In(year, month) {
			continue
		}
		spentByCat[t.Category] += t.Amount.Cents
	}

	var out []BudgetWarning
	for cat, budget := range budgets {
		spent := spentByCat[cat]
		if spent == 0 {
			continue
		}
		w := BudgetWarning{
			Category: cat,
			Spent:    Money{Cents: spent},
			Budget:   budget,
		}
		switch {
		case budget.Cents == 0 || spent > budget.Cents:
			w.Level = WarnOver
		case spent*100 >= budget.Cents*nearPercent:
			w.Level = WarnNear
		default:
			continue
		}
		if budget.Cents > 0 {
			// Half-up rounded percentage of budget consumed.
			w.Percent = (spent*100 + budget.Cents/2) / budget.Cents
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func sortByAmountDesc(rows []CategoryAmount) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount.Cents != rows[j].Amount.Cents {
			return rows[i].Amount.Cents > rows[j].Amount.Cents
		}
		return rows[i].Name < rows[j].Name
	})
}
