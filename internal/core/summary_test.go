package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tx(date Date, kind Kind, amount float64, category string) Transaction {
	return Transaction{Date: date, Kind: kind, Amount: decimal.NewFromFloat(amount), Category: category}
}

func TestSumByKindAndBalanceEmpty(t *testing.T) {
	var l Ledger
	for _, k := range Kinds {
		if got := SumByKind(l, k); !got.IsZero() {
			t.Fatalf("empty ledger sum for %s = %s, want 0", k, got)
		}
	}
	if got := Balance(l); !got.IsZero() {
		t.Fatalf("empty ledger balance = %s, want 0", got)
	}
}

func TestBalance(t *testing.T) {
	l := Ledger{
		tx(NewDate(2025, 1, 1), Income, 100, "Otros"),
		tx(NewDate(2025, 1, 2), Expense, 40, "Alimentación"),
	}
	if got := Balance(l); !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("balance = %s, want 60", got)
	}

	l = append(l, tx(NewDate(2025, 1, 3), Saving, 25, "Ahorro Banco"))
	if got := Balance(l); !got.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("balance = %s, want 35", got)
	}
}

func TestSumByKindSinceInclusiveCutoff(t *testing.T) {
	cutoff := NewDate(2025, 3, 10)
	l := Ledger{
		tx(NewDate(2025, 3, 9), Expense, 1, "Otros"),  // strictly before: excluded
		tx(NewDate(2025, 3, 10), Expense, 2, "Otros"), // exactly on cutoff: included
		tx(NewDate(2025, 3, 11), Expense, 4, "Otros"),
		tx(Date{}, Expense, 8, "Otros"), // zero-date sentinel: excluded
		tx(NewDate(2025, 3, 11), Income, 16, "Otros"),
	}
	if got := SumByKindSince(l, Expense, cutoff); !got.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("windowed sum = %s, want 6", got)
	}
}

func TestWindowCutoffs(t *testing.T) {
	today := time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC)
	if got := CutoffDaysAgo(today, 7); got.String() != "2025-03-08" {
		t.Fatalf("7-day cutoff = %s", got)
	}
	if got := CutoffDaysAgo(today, 14); got.String() != "2025-03-01" {
		t.Fatalf("14-day cutoff = %s", got)
	}
	if got := MonthStart(today); got.String() != "2025-03-01" {
		t.Fatalf("month start = %s", got)
	}
}

func TestGroupTotals(t *testing.T) {
	l := Ledger{
		tx(NewDate(2025, 1, 1), Expense, 10, "Alimentación"),
		tx(NewDate(2025, 1, 2), Expense, 5, "Alimentación"),
		tx(NewDate(2025, 1, 3), Expense, 7, "Transporte"),
		tx(NewDate(2025, 1, 4), Income, 100, "Otros"),
	}

	got := GroupTotals(l, Expense)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if !got["Alimentación"].Equal(decimal.NewFromInt(15)) {
		t.Fatalf("Alimentación = %s", got["Alimentación"])
	}

	// No savings recorded: empty map is the "no data" state.
	if got := GroupTotals(l, Saving); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}

	sorted := GroupTotalsSorted(l, Expense)
	if sorted[0].Category != "Alimentación" || sorted[1].Category != "Transporte" {
		t.Fatalf("unexpected order: %v", sorted)
	}
}

func TestMonthlyTotals(t *testing.T) {
	l := Ledger{
		tx(NewDate(2025, 2, 20), Expense, 5, "Otros"),
		tx(NewDate(2025, 1, 10), Income, 100, "Otros"),
		tx(NewDate(2025, 1, 25), Expense, 30, "Otros"),
		tx(NewDate(2025, 1, 5), Expense, 10, "Otros"),
		tx(Date{}, Expense, 99, "Otros"), // no month: skipped
	}

	rows := MonthlyTotals(l)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(rows), rows)
	}
	// Chronological, income before expense within a month.
	if rows[0].YearMonth != "2025-01" || rows[0].Kind != Income {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].YearMonth != "2025-01" || rows[1].Kind != Expense || !rows[1].Amount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("row 1 = %+v", rows[1])
	}
	if rows[2].YearMonth != "2025-02" {
		t.Fatalf("row 2 = %+v", rows[2])
	}
}

func TestSummarize(t *testing.T) {
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	l := Ledger{
		tx(NewDate(2025, 3, 14), Expense, 10, "Otros"), // in all windows
		tx(NewDate(2025, 3, 2), Expense, 20, "Otros"),  // 14d + month
		tx(NewDate(2025, 2, 10), Expense, 40, "Otros"), // totals only
		tx(NewDate(2025, 3, 1), Income, 200, "Otros"),
		tx(NewDate(2025, 3, 1), Saving, 50, "Ahorro Banco"),
	}
	s := Summarize(l, today)
	if !s.Expense.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("total expense = %s", s.Expense)
	}
	if !s.Balance.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("balance = %s", s.Balance)
	}
	if !s.ExpenseLast7.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("last 7 = %s", s.ExpenseLast7)
	}
	if !s.ExpenseLast14.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("last 14 = %s", s.ExpenseLast14)
	}
	if !s.ExpenseMonth.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("month to date = %s", s.ExpenseMonth)
	}
}
