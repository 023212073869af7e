package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/storage"
)

// ArchiveWorker mirrors saved CSV ledgers into the SQLite archive. It reacts
// to ledger-saved messages and, as a backup for lost messages, periodically
// re-mirrors every known user.
type ArchiveWorker struct {
	ledgers storage.LedgerStore
	users   storage.UserLister
	archive storage.Archiver
}

func NewArchiveWorker(ledgers storage.LedgerStore, users storage.UserLister, archive storage.Archiver) *ArchiveWorker {
	return &ArchiveWorker{
		ledgers: ledgers,
		users:   users,
		archive: archive,
	}
}

// HandleLedgerSaved processes one ledger-saved message. The CSV file is
// reloaded rather than trusting the message payload, so replayed or
// reordered messages converge on the current state.
func (w *ArchiveWorker) HandleLedgerSaved(ctx context.Context, msg *amqp.LedgerSavedMessage) error {
	slog.InfoContext(ctx, "Processing ledger-saved message",
		"message_id", msg.ID,
		"user", msg.Username)

	return w.mirror(ctx, msg.Username)
}

// SweepAll re-mirrors every user with a ledger on disk. Used on startup and
// on a periodic ticker to recover from missed messages or worker downtime.
func (w *ArchiveWorker) SweepAll(ctx context.Context) error {
	users, err := w.users.Users(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		slog.InfoContext(ctx, "No ledgers found to sweep")
		return nil
	}

	successCount := 0
	errorCount := 0
	for _, user := range users {
		if err := w.mirror(ctx, user); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror ledger during sweep",
				"user", user, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Archive sweep completed",
		"total", len(users),
		"mirrored", successCount,
		"errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("sweep finished with %d errors", errorCount)
	}
	return nil
}

func (w *ArchiveWorker) mirror(ctx context.Context, username string) error {
	ledger, err := w.ledgers.Load(ctx, username)
	if err != nil {
		return fmt.Errorf("load ledger for %s: %w", username, err)
	}
	if err := w.archive.ReplaceUserRows(ctx, username, ledger); err != nil {
		return fmt.Errorf("archive ledger for %s: %w", username, err)
	}
	return nil
}
