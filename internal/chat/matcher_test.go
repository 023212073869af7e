package chat

import (
	"testing"
	"time"

	"finanzas/internal/core"

	"github.com/shopspring/decimal"
)

var today = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

func ledgerWithExpense(amount float64) core.Ledger {
	return core.Ledger{{
		Date:     core.NewDate(2025, 1, 10),
		Kind:     core.Expense,
		Amount:   decimal.NewFromFloat(amount),
		Category: "Otros",
	}}
}

func TestAnswerTotalExpense(t *testing.T) {
	got := Answer("¿Cuánto he gastado?", ledgerWithExpense(250.5), today)
	want := "Tu gasto total registrado es $250.50."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAnswerFallback(t *testing.T) {
	if got := Answer("xyz nonsense", ledgerWithExpense(10), today); got != Fallback {
		t.Fatalf("got %q, want fallback", got)
	}
	if got := Answer("", nil, today); got != Fallback {
		t.Fatalf("empty question: got %q, want fallback", got)
	}
}

func TestAnswerIntents(t *testing.T) {
	l := core.Ledger{
		{Date: core.NewDate(2025, 3, 14), Kind: core.Expense, Amount: decimal.NewFromInt(10), Category: "Otros"},
		{Date: core.NewDate(2025, 3, 2), Kind: core.Expense, Amount: decimal.NewFromInt(20), Category: "Otros"},
		{Date: core.NewDate(2025, 1, 1), Kind: core.Income, Amount: decimal.NewFromInt(1000), Category: "Otros"},
		{Date: core.NewDate(2025, 1, 2), Kind: core.Saving, Amount: decimal.NewFromInt(300), Category: "Ahorro Banco"},
	}

	cases := []struct {
		question string
		want     string
	}{
		{"¿Cuál es mi ingreso?", "Tu ingreso total registrado es $1,000.00."},
		{"¿Cuánto he ahorrado?", "Tu ahorro total registrado es $300.00."},
		{"¿Cuál es mi balance actual?", "Tu balance actual (ingresos - gastos - ahorros) es $670.00."},
		{"gastos últimos 7 días", "Has gastado $10.00 en los últimos 7 días."},
		{"gastos últimas dos semanas", "Has gastado $30.00 en las últimas dos semanas."},
		{"¿Qué he gastado en el último mes?", "Has gastado $30.00 en el último mes."},
		{"GASTO TOTAL", "Tu gasto total registrado es $30.00."}, // lower-cased before matching
	}
	for i, tc := range cases {
		if got := Answer(tc.question, l, today); got != tc.want {
			t.Fatalf("case %d (%q): got %q, want %q", i, tc.question, got, tc.want)
		}
	}
}

func TestFirstMatchWins(t *testing.T) {
	// "gasto total" also contains "saldo"-free balance-ish wording candidates;
	// craft an input matching both the total-expense rule (first) and the
	// balance rule (fourth). The earlier rule must answer.
	l := ledgerWithExpense(30)
	got := Answer("gasto total y saldo", l, today)
	want := "Tu gasto total registrado es $30.00."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
