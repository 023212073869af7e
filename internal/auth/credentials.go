// Package auth holds the credential store and the session token manager.
package auth

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const usersFile = "users.csv"

var usersHeader = []string{"user", "password_hash"}

// ErrUserExists is returned by Register when the username is already taken.
var ErrUserExists = errors.New("username already taken")

// CredentialStore persists username/password-hash pairs in a single CSV
// file. Registration rewrites the file wholesale; credentials are never
// updated or deleted afterwards.
type CredentialStore struct {
	mu   sync.Mutex
	path string
}

func NewCredentialStore(dir string) (*CredentialStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &CredentialStore{path: filepath.Join(dir, usersFile)}, nil
}

// HashPassword returns the unsalted SHA-256 hex digest of the password.
// Deterministic on purpose: equal passwords hash equally. This is not a
// hardened scheme and the stored file must be treated as sensitive.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register adds a new credential. It fails with ErrUserExists if the
// username is present, leaving the existing credential untouched.
func (s *CredentialStore) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row[0] == username {
			return ErrUserExists
		}
	}

	rows = append(rows, []string{username, HashPassword(password)})
	if err := s.writeAll(rows); err != nil {
		return err
	}
	slog.Info("User registered", "user", username)
	return nil
}

// Verify reports whether the username exists and the password hash matches.
// A missing credential file means no users: always false.
func (s *CredentialStore) Verify(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll()
	if err != nil {
		slog.Warn("Credential file read failed", "error", err)
		return false
	}
	want := HashPassword(password)
	for _, row := range rows {
		if row[0] == username {
			return row[1] == want
		}
	}
	return false
}

// readAll returns credential rows without the header. Absent file is fresh
// state, not an error.
func (s *CredentialStore) readAll() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", usersFile, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", usersFile, err)
		}
		if first {
			first = false
			continue // header
		}
		if len(record) < 2 {
			continue
		}
		rows = append(rows, []string{record[0], record[1]})
	}
	return rows, nil
}

func (s *CredentialStore) writeAll(rows [][]string) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write %s: %w", usersFile, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(usersHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
