package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "Ingreso"
	Expense Kind = "Gasto"
	Saving  Kind = "Ahorro"
)

type (
	// Kind is the top-level classification of a transaction.
	Kind string

	// Date is a calendar date without a time component. The zero value marks
	// a date that failed to parse; such rows stay in the ledger but are
	// excluded from date-windowed aggregates.
	Date struct {
		time.Time
	}

	Transaction struct {
		Date     Date
		Kind     Kind
		Amount   decimal.Decimal
		Category string
		Comment  string
	}

	// Ledger is the full ordered set of one user's transactions. Rows have no
	// identity beyond their position.
	Ledger []Transaction
)

// Kinds lists the valid kinds in display order.
var Kinds = []Kind{Income, Expense, Saving}

// Categories is the fixed list offered by the entry form. It is not enforced
// at storage level: the table editor accepts arbitrary values.
var Categories = []string{
	"Alimentación", "Transporte", "Arriendo", "Salud", "Educación",
	"Entretenimiento", "Servicios básicos - Luz", "Servicios básicos - Agua",
	"Servicios básicos - Gas", "Internet", "Gastos hormiga", "Gastos Santi",
	"Salidas a comer", "Otros", "Ahorro Banco", "Ahorro Inversiones",
}

var (
	ErrInvalidKind   = errors.New("invalid kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
)

// ParseKind validates a raw kind string from a form or CSV cell.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.TrimSpace(s))
	for _, valid := range Kinds {
		if k == valid {
			return k, nil
		}
	}
	return "", ErrInvalidKind
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. Anything unparsable, including the
// empty string, coerces to the zero Date rather than an error.
func ParseDate(s string) Date {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

// String renders the date as YYYY-MM-DD, or empty for the zero sentinel.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// YearMonth returns the YYYY-MM key used for monthly grouping.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

// Before reports whether d is strictly before other, comparing dates only.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// ValidateNew applies creation-time rules: a parseable date, a known kind,
// a strictly positive amount and a non-empty category. These rules hold only
// on the entry form; the bulk table editor bypasses them.
func (t Transaction) ValidateNew() error {
	if t.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
