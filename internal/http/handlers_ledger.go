package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"finanzas/internal/core"
)

// publishSaved emits a ledger-saved event. Best effort: a broken broker must
// never fail a save that already hit disk.
func (s *Server) publishSaved(r *http.Request, username string, rows int) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerSaved(r.Context(), username, rows); err != nil {
		slog.WarnContext(r.Context(), "Ledger-saved publish failed", "error", err, "user", username)
	}
}

// handleCreateTransaction appends one transaction from the entry form.
// Creation is the only place where the positive-amount rule is enforced.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de solicitud no válido</div>`))
		return
	}

	date := core.ParseDate(r.Form.Get("fecha"))
	if date.IsZero() {
		date = core.Date{Time: time.Now().Truncate(24 * time.Hour)}
	}

	kind, err := core.ParseKind(r.Form.Get("tipo"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Tipo no válido</div>`))
		return
	}

	amount, err := core.ParseAmount(r.Form.Get("monto"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">El monto debe ser mayor que cero</div>`))
		return
	}

	t := core.Transaction{
		Date:     date,
		Kind:     kind,
		Amount:   amount,
		Category: sanitizeInput(r.Form.Get("categoria")),
		Comment:  sanitizeInput(r.Form.Get("comentario")),
	}
	if err := t.ValidateNew(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Datos no válidos: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	ledger, err := s.ledgers.Load(r.Context(), username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger load error", "error", err, "user", username)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error al cargar los movimientos</div>`))
		return
	}
	ledger = append(ledger, t)

	if err := s.ledgers.Save(r.Context(), username, ledger); err != nil {
		slog.ErrorContext(r.Context(), "Ledger save error", "error", err, "user", username)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error al guardar el movimiento</div>`))
		return
	}
	s.publishSaved(r, username, len(ledger))

	w.Header().Set("HX-Trigger", `{"ledger:changed": true}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Movimiento registrado: ` +
		template.HTMLEscapeString(string(t.Kind)) + ` de ` + core.FormatUSD(t.Amount) +
		` (` + template.HTMLEscapeString(t.Category) + `)</div>`))
}

// handleSaveLedger replaces the user's whole ledger with the edited table.
// The table editor intentionally skips creation-time validation: kinds and
// categories may be arbitrary and amounts may go negative. Negative amounts
// are flagged in the log but saved as-is.
func (s *Server) handleSaveLedger(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de solicitud no válido</div>`))
		return
	}

	fechas := r.Form["fecha"]
	tipos := r.Form["tipo"]
	montos := r.Form["monto"]
	categorias := r.Form["categoria"]
	comentarios := r.Form["comentario"]

	n := len(fechas)
	for _, arr := range [][]string{tipos, montos, categorias, comentarios} {
		if len(arr) > n {
			n = len(arr)
		}
	}

	ledger := make(core.Ledger, 0, n)
	for i := 0; i < n; i++ {
		fecha := sanitizeInput(at(fechas, i))
		tipo := sanitizeInput(at(tipos, i))
		monto := sanitizeInput(at(montos, i))
		categoria := sanitizeInput(at(categorias, i))
		comentario := sanitizeInput(at(comentarios, i))

		// Fully blank rows are the editor's spare lines, not data.
		if fecha == "" && tipo == "" && monto == "" && categoria == "" && comentario == "" {
			continue
		}

		amount := core.CoerceAmount(monto)
		if amount.IsNegative() {
			slog.WarnContext(r.Context(), "Negative amount saved through table editor",
				"user", username, "row", i, "amount", amount.String())
		}

		ledger = append(ledger, core.Transaction{
			Date:     core.ParseDate(fecha),
			Kind:     core.Kind(tipo),
			Amount:   amount,
			Category: categoria,
			Comment:  comentario,
		})
	}

	if err := s.ledgers.Save(r.Context(), username, ledger); err != nil {
		slog.ErrorContext(r.Context(), "Ledger save error", "error", err, "user", username)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error al guardar los cambios</div>`))
		return
	}
	s.publishSaved(r, username, len(ledger))

	w.Header().Set("HX-Trigger", `{"ledger:changed": true}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Cambios guardados</div>`))
}
