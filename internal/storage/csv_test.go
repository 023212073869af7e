package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finanzas/internal/core"

	"github.com/shopspring/decimal"
)

func newCSVStore(t *testing.T) (*CSVStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewCSVStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, dir
}

func TestLoadMissingCreatesEmpty(t *testing.T) {
	s, dir := newCSVStore(t)
	ctx := context.Background()

	l, err := s.Load(ctx, "ana")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(l) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(l))
	}

	data, err := os.ReadFile(filepath.Join(dir, "data_ana.csv"))
	if err != nil {
		t.Fatalf("ledger file not created: %v", err)
	}
	if strings.TrimSpace(string(data)) != "Fecha,Tipo,Monto,Categoría,Comentario" {
		t.Fatalf("unexpected file content: %q", string(data))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newCSVStore(t)
	ctx := context.Background()

	in := core.Ledger{
		{Date: core.NewDate(2025, 3, 1), Kind: core.Income, Amount: decimal.NewFromInt(1000), Category: "Otros", Comment: "sueldo"},
		{Date: core.NewDate(2025, 3, 2), Kind: core.Expense, Amount: decimal.NewFromFloat(250.5), Category: "Alimentación", Comment: ""},
		{Date: core.NewDate(2025, 3, 3), Kind: core.Saving, Amount: decimal.NewFromFloat(99.99), Category: "Ahorro Banco", Comment: "con, coma"},
	}
	if err := s.Save(ctx, "ana", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load(ctx, "ana")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d rows, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Date.String() != in[i].Date.String() ||
			out[i].Kind != in[i].Kind ||
			!out[i].Amount.Equal(in[i].Amount) ||
			out[i].Category != in[i].Category ||
			out[i].Comment != in[i].Comment {
			t.Fatalf("row %d mismatch: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestSaveOverwritesWholesale(t *testing.T) {
	s, _ := newCSVStore(t)
	ctx := context.Background()

	first := core.Ledger{
		{Date: core.NewDate(2025, 1, 1), Kind: core.Expense, Amount: decimal.NewFromInt(10), Category: "Otros"},
		{Date: core.NewDate(2025, 1, 2), Kind: core.Expense, Amount: decimal.NewFromInt(20), Category: "Otros"},
	}
	if err := s.Save(ctx, "ana", first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := core.Ledger{
		{Date: core.NewDate(2025, 1, 3), Kind: core.Income, Amount: decimal.NewFromInt(5), Category: "Otros"},
	}
	if err := s.Save(ctx, "ana", second); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load(ctx, "ana")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].Kind != core.Income {
		t.Fatalf("expected full replacement, got %+v", out)
	}
}

func TestLoadCoercesBadCells(t *testing.T) {
	s, dir := newCSVStore(t)
	ctx := context.Background()

	raw := "Fecha,Tipo,Monto,Categoría,Comentario\n" +
		"no-es-fecha,Gasto,12.5,Otros,editado a mano\n" +
		"2025-03-01,Gasto,basura,Otros,\n" +
		"2025-03-02,Gasto,-40,Otros,negativo tras editar\n"
	if err := os.WriteFile(filepath.Join(dir, "data_ana.csv"), []byte(raw), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	l, err := s.Load(ctx, "ana")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(l) != 3 {
		t.Fatalf("rows with bad cells must be kept, got %d", len(l))
	}
	if !l[0].Date.IsZero() {
		t.Fatalf("bad date must coerce to zero sentinel")
	}
	if !l[1].Amount.IsZero() {
		t.Fatalf("bad amount must coerce to zero")
	}
	if !l[2].Amount.Equal(decimal.NewFromInt(-40)) {
		t.Fatalf("negative amounts are preserved, got %s", l[2].Amount)
	}

	// Zero-date row excluded from windows but included in plain totals.
	total := core.SumByKind(l, core.Expense)
	if !total.Equal(decimal.NewFromFloat(-27.5)) {
		t.Fatalf("total = %s", total)
	}
	windowed := core.SumByKindSince(l, core.Expense, core.NewDate(2025, 1, 1))
	if !windowed.Equal(decimal.NewFromInt(-40)) {
		t.Fatalf("windowed = %s", windowed)
	}
}

func TestUsers(t *testing.T) {
	s, _ := newCSVStore(t)
	ctx := context.Background()

	for _, u := range []string{"ana", "beto"} {
		if _, err := s.Load(ctx, u); err != nil {
			t.Fatalf("load %s: %v", u, err)
		}
	}
	users, err := s.Users(ctx)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %v", users)
	}
}

func TestBadUsernames(t *testing.T) {
	s, _ := newCSVStore(t)
	ctx := context.Background()
	for _, u := range []string{"", "../ana", `a\b`, "a/b"} {
		if _, err := s.Load(ctx, u); err == nil {
			t.Fatalf("expected error for username %q", u)
		}
	}
}
