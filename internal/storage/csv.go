// Package storage persists ledgers: per-user CSV files as the source of
// truth, plus an optional SQLite archive mirror fed by the worker.
package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"finanzas/internal/core"
)

// ledgerHeader is the fixed column schema of every per-user data file.
var ledgerHeader = []string{"Fecha", "Tipo", "Monto", "Categoría", "Comentario"}

var ErrBadUsername = errors.New("username not usable as a file name")

// CSVStore keeps one data_<username>.csv per user under a single directory.
// Loads and saves are whole-file operations guarded by a process-level
// mutex; concurrent processes editing the same user still race with
// last-writer-wins, which is an accepted limitation at this scale.
type CSVStore struct {
	mu  sync.Mutex
	dir string
}

func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

func (s *CSVStore) userPath(username string) (string, error) {
	if username == "" || strings.ContainsAny(username, `/\`) || strings.Contains(username, "..") {
		return "", ErrBadUsername
	}
	return filepath.Join(s.dir, "data_"+username+".csv"), nil
}

// Load reads the user's ledger. A missing file is fresh state: it is created
// with the header row and an empty ledger is returned. Unparsable dates
// become the zero sentinel and unparsable amounts become zero; the rows are
// kept.
func (s *CSVStore) Load(ctx context.Context, username string) (core.Ledger, error) {
	path, err := s.userPath(username)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.writeFile(path, nil); err != nil {
				return nil, err
			}
			slog.InfoContext(ctx, "Created empty ledger file", "user", username)
			return core.Ledger{}, nil
		}
		return nil, fmt.Errorf("open ledger for %s: %w", username, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var ledger core.Ledger
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ledger for %s: %w", username, err)
		}
		if first {
			first = false
			continue // header
		}
		for len(record) < len(ledgerHeader) {
			record = append(record, "")
		}
		ledger = append(ledger, core.Transaction{
			Date:     core.ParseDate(record[0]),
			Kind:     core.Kind(record[1]),
			Amount:   core.CoerceAmount(record[2]),
			Category: record[3],
			Comment:  record[4],
		})
	}
	return ledger, nil
}

// Save overwrites the user's file wholesale with the given ledger.
func (s *CSVStore) Save(ctx context.Context, username string, l core.Ledger) error {
	path, err := s.userPath(username)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile(path, l); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Ledger saved", "user", username, "rows", len(l))
	return nil
}

// Users lists every username that has a ledger file.
func (s *CSVStore) Users(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}
	var users []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "data_") || !strings.HasSuffix(name, ".csv") {
			continue
		}
		users = append(users, strings.TrimSuffix(strings.TrimPrefix(name, "data_"), ".csv"))
	}
	return users, nil
}

func (s *CSVStore) writeFile(path string, l core.Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ledgerHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range l {
		row := []string{t.Date.String(), string(t.Kind), t.Amount.String(), t.Category, t.Comment}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
