package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"finanzas/internal/auth"
	"finanzas/internal/core"
)

// loginPage is the data passed to login.html.
type loginPage struct {
	Error  string
	Notice string
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, data loginPage) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "login.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Login template execution failed", "error", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	username, ok := s.sessionUser(r)
	if !ok {
		s.renderLogin(w, r, http.StatusOK, loginPage{})
		return
	}

	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		User       string
		Today      string
		Kinds      []core.Kind
		Categories []string
	}{
		User:       username,
		Today:      time.Now().Format("2006-01-02"),
		Kinds:      core.Kinds,
		Categories: core.Categories,
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, r, http.StatusBadRequest, loginPage{Error: "Formato de solicitud no válido"})
		return
	}

	username := sanitizeInput(r.Form.Get("user"))
	password := r.Form.Get("password")

	if !s.creds.Verify(username, password) {
		slog.InfoContext(r.Context(), "Login rejected", "user", username)
		s.renderLogin(w, r, http.StatusUnauthorized, loginPage{Error: "Usuario o contraseña incorrectos"})
		return
	}

	token, err := s.sessions.Issue(username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session issue failed", "error", err, "user", username)
		s.renderLogin(w, r, http.StatusInternalServerError, loginPage{Error: "No se pudo iniciar la sesión"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.InfoContext(r.Context(), "Login succeeded", "user", username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, r, http.StatusBadRequest, loginPage{Error: "Formato de solicitud no válido"})
		return
	}

	username := sanitizeInput(r.Form.Get("new_user"))
	password := r.Form.Get("new_password")
	confirm := r.Form.Get("new_password2")

	switch {
	case password != confirm:
		s.renderLogin(w, r, http.StatusUnprocessableEntity, loginPage{Error: "Las contraseñas no coinciden"})
		return
	case len(password) < 4:
		s.renderLogin(w, r, http.StatusUnprocessableEntity, loginPage{Error: "La contraseña debe tener al menos 4 caracteres"})
		return
	case username == "":
		s.renderLogin(w, r, http.StatusUnprocessableEntity, loginPage{Error: "El usuario no puede estar vacío"})
		return
	}

	if err := s.creds.Register(username, password); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			s.renderLogin(w, r, http.StatusUnprocessableEntity, loginPage{Error: "El usuario ya existe"})
			return
		}
		slog.ErrorContext(r.Context(), "Register failed", "error", err, "user", username)
		s.renderLogin(w, r, http.StatusInternalServerError, loginPage{Error: "No se pudo crear el usuario"})
		return
	}

	s.renderLogin(w, r, http.StatusOK, loginPage{Notice: "Usuario creado, ya puedes iniciar sesión"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
