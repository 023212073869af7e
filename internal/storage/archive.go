package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finanzas/internal/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ArchiveRepository mirrors ledger snapshots into SQLite. The archive is a
// write-only sink for the worker; the web server never reads it, the CSV
// files stay the source of truth.
type ArchiveRepository struct {
	db *sql.DB
}

func NewArchiveRepository(dbPath string) (*ArchiveRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &ArchiveRepository{db: db}, nil
}

func (r *ArchiveRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReplaceUserRows swaps the archived rows of one user for the given snapshot
// inside a single transaction, so readers never observe a half-mirrored
// ledger.
func (r *ArchiveRepository) ReplaceUserRows(ctx context.Context, username string, l core.Ledger) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_rows WHERE username = ?`, username); err != nil {
		return fmt.Errorf("clear archived rows: %w", err)
	}

	const insert = `INSERT INTO ledger_rows
		(id, username, position, fecha, tipo, monto, categoria, comentario)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, t := range l {
		_, err := tx.ExecContext(ctx, insert,
			uuid.NewString(), username, i,
			t.Date.String(), string(t.Kind), t.Amount.String(), t.Category, t.Comment)
		if err != nil {
			return fmt.Errorf("insert archived row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive: %w", err)
	}

	slog.InfoContext(ctx, "Ledger mirrored to archive", "user", username, "rows", len(l))
	return nil
}

// UserRowCount returns how many rows are archived for a user.
func (r *ArchiveRepository) UserRowCount(ctx context.Context, username string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_rows WHERE username = ?`, username).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count archived rows: %w", err)
	}
	return n, nil
}
