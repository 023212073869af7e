package storage

import (
	"context"

	"finanzas/internal/core"
)

// Ports for the ledger persistence adapters.
type (
	// LedgerStore loads and saves one user's full ledger. Whole-ledger
	// replacement is the only mutation primitive.
	LedgerStore interface {
		Load(ctx context.Context, username string) (core.Ledger, error)
		Save(ctx context.Context, username string, l core.Ledger) error
	}

	// UserLister enumerates users that have a ledger on disk. Used by the
	// archive worker's periodic sweep.
	UserLister interface {
		Users(ctx context.Context) ([]string, error)
	}

	// Archiver mirrors a ledger snapshot into the archive sink.
	Archiver interface {
		ReplaceUserRows(ctx context.Context, username string, l core.Ledger) error
	}
)
