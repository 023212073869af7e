// Package chat answers free-text finance questions over a user's ledger.
//
// It is a fixed decision list: each rule pairs a case-insensitive pattern
// with a responder over the precomputed aggregate snapshot. Rules are
// evaluated in order and the first match wins, so reordering them changes
// observable behavior on ambiguous inputs — the order below is part of the
// contract.
package chat

import (
	"regexp"
	"strings"
	"time"

	"finanzas/internal/core"
)

type rule struct {
	pattern *regexp.Regexp
	respond func(core.Snapshot) string
}

var rules = []rule{
	{
		pattern: regexp.MustCompile(`cuánto he gastado|gasto total|total gastado`),
		respond: func(s core.Snapshot) string {
			return "Tu gasto total registrado es " + core.FormatUSD(s.Expense) + "."
		},
	},
	{
		pattern: regexp.MustCompile(`cuál es mi ingreso|ingresos totales|total ingresado`),
		respond: func(s core.Snapshot) string {
			return "Tu ingreso total registrado es " + core.FormatUSD(s.Income) + "."
		},
	},
	{
		pattern: regexp.MustCompile(`cuánto he ahorrado|ahorro total|total ahorrado`),
		respond: func(s core.Snapshot) string {
			return "Tu ahorro total registrado es " + core.FormatUSD(s.Saving) + "."
		},
	},
	{
		pattern: regexp.MustCompile(`cuál es mi balance|saldo|balance actual`),
		respond: func(s core.Snapshot) string {
			return "Tu balance actual (ingresos - gastos - ahorros) es " + core.FormatUSD(s.Balance) + "."
		},
	},
	{
		pattern: regexp.MustCompile(`gasto últimos 7 días|gastado en los últimos 7 días|gastos últimos 7 días`),
		respond: func(s core.Snapshot) string {
			return "Has gastado " + core.FormatUSD(s.ExpenseLast7) + " en los últimos 7 días."
		},
	},
	{
		pattern: regexp.MustCompile(`gasto últimas 2 semanas|gastado en las últimas 2 semanas|gastos últimas dos semanas`),
		respond: func(s core.Snapshot) string {
			return "Has gastado " + core.FormatUSD(s.ExpenseLast14) + " en las últimas dos semanas."
		},
	},
	{
		pattern: regexp.MustCompile(`gasto último mes|gastado en el último mes|gastos último mes`),
		respond: func(s core.Snapshot) string {
			return "Has gastado " + core.FormatUSD(s.ExpenseMonth) + " en el último mes."
		},
	},
}

// Fallback is returned when no rule matches. Not an error.
const Fallback = "Lo siento, no entiendo la pregunta. Prueba con preguntas como: " +
	"'¿Cuánto he gastado?', '¿Cuál es mi ingreso?', '¿Cuánto he ahorrado?', " +
	"'¿Cuál es mi balance?', '¿Cuánto gasté en los últimos 7 días?'"

// Answer evaluates the question against the rule list using aggregates
// computed over the ledger relative to today.
func Answer(question string, l core.Ledger, today time.Time) string {
	return AnswerSnapshot(question, core.Summarize(l, today))
}

// AnswerSnapshot matches the lower-cased question against the rules using an
// already computed snapshot.
func AnswerSnapshot(question string, snap core.Snapshot) string {
	q := strings.ToLower(question)
	for _, r := range rules {
		if r.pattern.MatchString(q) {
			return r.respond(snap)
		}
	}
	return Fallback
}
