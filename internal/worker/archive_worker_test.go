package worker

import (
	"context"
	"errors"
	"testing"

	"finanzas/internal/amqp"
	"finanzas/internal/core"

	"github.com/shopspring/decimal"
)

type fakeLedgers struct {
	data map[string]core.Ledger
	err  error
}

func (f *fakeLedgers) Load(_ context.Context, user string) (core.Ledger, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data[user], nil
}

func (f *fakeLedgers) Save(_ context.Context, user string, l core.Ledger) error {
	f.data[user] = l
	return nil
}

func (f *fakeLedgers) Users(_ context.Context) ([]string, error) {
	users := make([]string, 0, len(f.data))
	for u := range f.data {
		users = append(users, u)
	}
	return users, nil
}

type fakeArchive struct {
	rows map[string]int
	err  error
}

func (f *fakeArchive) ReplaceUserRows(_ context.Context, user string, l core.Ledger) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = make(map[string]int)
	}
	f.rows[user] = len(l)
	return nil
}

func oneRow() core.Ledger {
	return core.Ledger{{
		Date:     core.NewDate(2025, 3, 1),
		Kind:     core.Expense,
		Amount:   decimal.NewFromInt(10),
		Category: "Otros",
	}}
}

func TestHandleLedgerSaved(t *testing.T) {
	ledgers := &fakeLedgers{data: map[string]core.Ledger{"ana": oneRow()}}
	archive := &fakeArchive{}
	w := NewArchiveWorker(ledgers, ledgers, archive)

	msg := amqp.NewLedgerSavedMessage("ana", 1)
	if err := w.HandleLedgerSaved(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if archive.rows["ana"] != 1 {
		t.Fatalf("expected 1 archived row, got %d", archive.rows["ana"])
	}
}

func TestHandleLedgerSavedLoadError(t *testing.T) {
	ledgers := &fakeLedgers{err: errors.New("disk gone")}
	w := NewArchiveWorker(ledgers, ledgers, &fakeArchive{})

	msg := amqp.NewLedgerSavedMessage("ana", 1)
	if err := w.HandleLedgerSaved(context.Background(), msg); err == nil {
		t.Fatalf("expected error to propagate for requeue")
	}
}

func TestSweepAll(t *testing.T) {
	ledgers := &fakeLedgers{data: map[string]core.Ledger{
		"ana":  oneRow(),
		"beto": append(oneRow(), oneRow()...),
	}}
	archive := &fakeArchive{}
	w := NewArchiveWorker(ledgers, ledgers, archive)

	if err := w.SweepAll(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if archive.rows["ana"] != 1 || archive.rows["beto"] != 2 {
		t.Fatalf("unexpected archive state: %v", archive.rows)
	}
}

func TestSweepAllReportsErrors(t *testing.T) {
	ledgers := &fakeLedgers{data: map[string]core.Ledger{"ana": oneRow()}}
	w := NewArchiveWorker(ledgers, ledgers, &fakeArchive{err: errors.New("locked")})

	if err := w.SweepAll(context.Background()); err == nil {
		t.Fatalf("expected sweep error")
	}
}
