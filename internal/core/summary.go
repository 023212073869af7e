package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MonthKindTotal is an amount aggregated by year-month and kind, for the
// monthly evolution chart.
type MonthKindTotal struct {
	YearMonth string // YYYY-MM
	Kind      Kind
	Amount    decimal.Decimal
}

// Snapshot holds every aggregate the dashboard metrics and the chatbot need,
// computed once over a ledger.
type Snapshot struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Saving  decimal.Decimal
	Balance decimal.Decimal

	ExpenseLast7  decimal.Decimal
	ExpenseLast14 decimal.Decimal
	ExpenseMonth  decimal.Decimal
}

// SumByKind sums the amounts of all transactions of the given kind.
// The empty sum is zero.
func SumByKind(l Ledger, k Kind) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l {
		if t.Kind == k {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Balance is income minus expenses minus savings.
func Balance(l Ledger) decimal.Decimal {
	return SumByKind(l, Income).Sub(SumByKind(l, Expense)).Sub(SumByKind(l, Saving))
}

// SumByKindSince sums amounts of the given kind with date >= cutoff.
// The lower bound is inclusive; rows with the zero-date sentinel are
// excluded.
func SumByKindSince(l Ledger, k Kind, cutoff Date) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l {
		if t.Kind != k || t.Date.IsZero() || t.Date.Before(cutoff) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// CutoffDaysAgo returns the date n days before today.
func CutoffDaysAgo(today time.Time, days int) Date {
	y, m, d := today.AddDate(0, 0, -days).Date()
	return NewDate(y, int(m), d)
}

// MonthStart returns the first day of today's calendar month.
func MonthStart(today time.Time) Date {
	y, m, _ := today.Date()
	return NewDate(y, int(m), 1)
}

// GroupTotals sums amounts grouped by category, restricted to one kind.
// An empty map is the valid "no data" state, not an error.
func GroupTotals(l Ledger, k Kind) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range l {
		if t.Kind != k {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	return totals
}

// GroupTotalsSorted flattens GroupTotals into rows ordered by descending
// amount, then name, for stable chart rendering.
func GroupTotalsSorted(l Ledger, k Kind) []CategoryTotal {
	totals := GroupTotals(l, k)
	rows := make([]CategoryTotal, 0, len(totals))
	for cat, amt := range totals {
		rows = append(rows, CategoryTotal{Category: cat, Amount: amt})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

var kindOrder = map[Kind]int{Income: 0, Expense: 1, Saving: 2}

// MonthlyTotals sums amounts grouped by year-month and kind, ordered
// chronologically. Zero-date rows have no month and are skipped.
func MonthlyTotals(l Ledger) []MonthKindTotal {
	type key struct {
		ym   string
		kind Kind
	}
	totals := make(map[key]decimal.Decimal)
	for _, t := range l {
		if t.Date.IsZero() {
			continue
		}
		k := key{ym: t.Date.YearMonth(), kind: t.Kind}
		totals[k] = totals[k].Add(t.Amount)
	}

	rows := make([]MonthKindTotal, 0, len(totals))
	for k, amt := range totals {
		rows = append(rows, MonthKindTotal{YearMonth: k.ym, Kind: k.kind, Amount: amt})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].YearMonth != rows[j].YearMonth {
			return rows[i].YearMonth < rows[j].YearMonth
		}
		return kindOrder[rows[i].Kind] < kindOrder[rows[j].Kind]
	})
	return rows
}

// Summarize computes the full aggregate snapshot relative to today.
func Summarize(l Ledger, today time.Time) Snapshot {
	return Snapshot{
		Income:        SumByKind(l, Income),
		Expense:       SumByKind(l, Expense),
		Saving:        SumByKind(l, Saving),
		Balance:       Balance(l),
		ExpenseLast7:  SumByKindSince(l, Expense, CutoffDaysAgo(today, 7)),
		ExpenseLast14: SumByKindSince(l, Expense, CutoffDaysAgo(today, 14)),
		ExpenseMonth:  SumByKindSince(l, Expense, MonthStart(today)),
	}
}
