package http

import (
	"html/template"
	"net/http"
	"time"

	"finanzas/internal/chat"
)

// handleChat answers a free-text question against the user's ledger.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de solicitud no válido</div>`))
		return
	}

	question := sanitizeInput(r.Form.Get("question"))
	if question == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Escribe una pregunta</div>`))
		return
	}

	ledger, ok := s.loadLedger(w, r, username)
	if !ok {
		return
	}

	answer := chat.Answer(question, ledger, time.Now())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="chat-answer">` + template.HTMLEscapeString(answer) + `</div>`))
}
