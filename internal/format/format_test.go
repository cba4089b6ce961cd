package format

import (
	"strings"
	"testing"
	"time"
)

func TestAmountUSD(t *testing.T) {
	if got := Amount(1234.5, "USD"); got != "$1,234.50" {
		t.Errorf("Amount = %q, want %q", got, "$1,234.50")
	}
	if got := Amount(0, "USD"); got != "$0.00" {
		t.Errorf("Amount = %q, want %q", got, "$0.00")
	}
}

func TestAmountSymbolAlias(t *testing.T) {
	if sym, iso := Amount(99.9, "$"), Amount(99.9, "USD"); sym != iso {
		t.Errorf("Amount(\"$\") = %q, Amount(\"USD\") = %q, want identical", sym, iso)
	}
	if sym, iso := Amount(10, "€"), Amount(10, "EUR"); sym != iso {
		t.Errorf("Amount(\"€\") = %q, Amount(\"EUR\") = %q, want identical", sym, iso)
	}
}

func TestAmountUnknownCurrencyFallsBackToUSD(t *testing.T) {
	got := Amount(5, "WAT")
	if !strings.Contains(got, "$") {
		t.Errorf("Amount with unknown code = %q, want USD fallback", got)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct{ in, want string }{
		{"USD", "USD"},
		{"usd", "USD"},
		{"₺", "TRY"},
		{"£", "GBP"},
		{" EUR ", "EUR"},
		{"???", "USD"},
		{"", "USD"},
	}
	for _, tc := range tests {
		if got := NormalizeCurrency(tc.in); got != tc.want {
			t.Errorf("NormalizeCurrency(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSignedAmount(t *testing.T) {
	if got := SignedAmount(25, "USD", "income"); got != "+$25.00" {
		t.Errorf("income = %q, want %q", got, "+$25.00")
	}
	if got := SignedAmount(25, "USD", "expense"); got != "-$25.00" {
		t.Errorf("expense = %q, want %q", got, "-$25.00")
	}
	if got := SignedAmount(25, "USD", "transfer"); got != "-$25.00" {
		t.Errorf("transfer = %q, want %q", got, "-$25.00")
	}
}

func TestDate(t *testing.T) {
	if got := Date("2026-08-14", "en-US"); got != "Aug 14, 2026" {
		t.Errorf("Date = %q, want %q", got, "Aug 14, 2026")
	}
	if got := Date("2026-08-14T10:30:00Z", "tr-TR"); got != "14 Aug 2026" {
		t.Errorf("Date = %q, want %q", got, "14 Aug 2026")
	}
	// Unknown locale falls back to en-US layout.
	if got := Date("2026-08-14", "xx-XX"); got != "Aug 14, 2026" {
		t.Errorf("Date = %q, want en-US fallback", got)
	}
}

func TestDateUnparseableReturnsInput(t *testing.T) {
	if got := Date("not-a-date", "en-US"); got != "not-a-date" {
		t.Errorf("Date = %q, want input unchanged", got)
	}
}

func TestRelative(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
	}
	for _, tc := range tests {
		if got := Relative(tc.t); got != tc.want {
			t.Errorf("Relative(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
}
