package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{"100", "100", true},
		{"0.01", "0.01", true},
		{"0", "", false},
		{"-5", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d: unexpected error %v", i, err)
			}
			if want, _ := decimal.NewFromString(tc.want); !got.Equal(want) {
				t.Fatalf("case %d: got %s, want %s", i, got, want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestCoerceAmount(t *testing.T) {
	if got := CoerceAmount("250.5"); !got.Equal(decimal.NewFromFloat(250.5)) {
		t.Fatalf("got %s", got)
	}
	// Stored cells may be negative after table edits; coercion keeps them.
	if got := CoerceAmount("-40"); !got.Equal(decimal.NewFromInt(-40)) {
		t.Fatalf("got %s", got)
	}
	if got := CoerceAmount("garbage"); !got.IsZero() {
		t.Fatalf("expected zero for unparsable cell, got %s", got)
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"250.5", "$250.50"},
		{"1234.56", "$1,234.56"},
		{"1234567.8", "$1,234,567.80"},
		{"-40", "-$40.00"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
	}
	for i, tc := range cases {
		d, _ := decimal.NewFromString(tc.in)
		if got := FormatUSD(d); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}
