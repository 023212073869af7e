package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

// loadLedger fetches the user's ledger and writes the standard error partial
// on failure.
func (s *Server) loadLedger(w http.ResponseWriter, r *http.Request, username string) (core.Ledger, bool) {
	ledger, err := s.ledgers.Load(r.Context(), username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger load error", "error", err, "user", username)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error al cargar los movimientos</div>`))
		return nil, false
	}
	return ledger, true
}

func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
	}
}

type summaryView struct {
	Income  string
	Expense string
	Saving  string
	Balance string

	Last7 string
	Month string

	Negative bool
}

// handleSummary renders the metrics strip: totals, balance and the short
// expense windows.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, username string) {
	ledger, ok := s.loadLedger(w, r, username)
	if !ok {
		return
	}
	snap := core.Summarize(ledger, time.Now())

	s.renderPartial(w, r, "summary.html", summaryView{
		Income:   core.FormatUSD(snap.Income),
		Expense:  core.FormatUSD(snap.Expense),
		Saving:   core.FormatUSD(snap.Saving),
		Balance:  core.FormatUSD(snap.Balance),
		Last7:    core.FormatUSD(snap.ExpenseLast7),
		Month:    core.FormatUSD(snap.ExpenseMonth),
		Negative: snap.Balance.IsNegative(),
	})
}

type monthlyRow struct {
	YearMonth string
	Kind      string
	Amount    string
	Width     int // bar width, percent of the largest bucket
}

type monthlyView struct {
	Rows []monthlyRow
}

// handleMonthly renders the month-by-month evolution chart.
func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request, username string) {
	ledger, ok := s.loadLedger(w, r, username)
	if !ok {
		return
	}

	totals := core.MonthlyTotals(ledger)
	max := decimal.Zero
	for _, row := range totals {
		if row.Amount.GreaterThan(max) {
			max = row.Amount
		}
	}

	view := monthlyView{Rows: make([]monthlyRow, 0, len(totals))}
	for _, row := range totals {
		width := 0
		if max.IsPositive() && row.Amount.IsPositive() {
			width = int(row.Amount.Div(max).Mul(decimal.NewFromInt(100)).IntPart())
			if width < 2 {
				width = 2
			}
		}
		view.Rows = append(view.Rows, monthlyRow{
			YearMonth: row.YearMonth,
			Kind:      string(row.Kind),
			Amount:    core.FormatUSD(row.Amount),
			Width:     width,
		})
	}

	s.renderPartial(w, r, "monthly.html", view)
}

type categoryRow struct {
	Category string
	Amount   string
	Width    int
}

type categoriesView struct {
	Kind  string
	Empty string
	Rows  []categoryRow
}

// handleCategories renders per-category totals for one kind. The kind query
// parameter defaults to expenses.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request, username string) {
	kind, err := core.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		kind = core.Expense
	}

	ledger, ok := s.loadLedger(w, r, username)
	if !ok {
		return
	}

	totals := core.GroupTotalsSorted(ledger, kind)
	max := decimal.Zero
	for _, row := range totals {
		if row.Amount.GreaterThan(max) {
			max = row.Amount
		}
	}

	view := categoriesView{Kind: string(kind)}
	if len(totals) == 0 {
		switch kind {
		case core.Income:
			view.Empty = "No hay ingresos registrados para mostrar."
		case core.Saving:
			view.Empty = "No hay ahorros registrados para mostrar."
		default:
			view.Empty = "No hay gastos registrados para mostrar."
		}
	}
	for _, row := range totals {
		width := 0
		if max.IsPositive() && row.Amount.IsPositive() {
			width = int(row.Amount.Div(max).Mul(decimal.NewFromInt(100)).IntPart())
			if width < 2 {
				width = 2
			}
		}
		view.Rows = append(view.Rows, categoryRow{
			Category: row.Category,
			Amount:   core.FormatUSD(row.Amount),
			Width:    width,
		})
	}

	s.renderPartial(w, r, "categories.html", view)
}

type transactionRow struct {
	Date     string
	Kind     string
	Amount   string
	Category string
	Comment  string
}

type transactionsView struct {
	Rows       []transactionRow
	Kinds      []core.Kind
	Categories []string
}

// Spare blank lines appended to the editable table.
const spareRows = 3

// handleTransactions renders the editable ledger table with a few blank rows
// for new entries.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request, username string) {
	ledger, ok := s.loadLedger(w, r, username)
	if !ok {
		return
	}

	view := transactionsView{
		Rows:       make([]transactionRow, 0, len(ledger)+spareRows),
		Kinds:      core.Kinds,
		Categories: core.Categories,
	}
	for _, t := range ledger {
		view.Rows = append(view.Rows, transactionRow{
			Date:     t.Date.String(),
			Kind:     string(t.Kind),
			Amount:   t.Amount.String(),
			Category: t.Category,
			Comment:  t.Comment,
		})
	}
	for i := 0; i < spareRows; i++ {
		view.Rows = append(view.Rows, transactionRow{})
	}

	s.renderPartial(w, r, "transactions.html", view)
}
