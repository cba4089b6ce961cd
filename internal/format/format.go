// Package format renders monetary amounts and dates for display.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

const defaultCurrency = "USD"

// currencyAliases maps the symbols the API occasionally ships instead of ISO
// codes.
var currencyAliases = map[string]string{
	"$": "USD",
	"€": "EUR",
	"₺": "TRY",
	"£": "GBP",
}

// NormalizeCurrency resolves a symbol or ISO code to a known ISO code,
// falling back to USD for anything unrecognized.
func NormalizeCurrency(code string) string {
	code = strings.TrimSpace(code)
	if iso, ok := currencyAliases[code]; ok {
		return iso
	}
	upper := strings.ToUpper(code)
	if money.GetCurrency(upper) != nil {
		return upper
	}
	return defaultCurrency
}

// Amount renders a monetary amount with its currency symbol and grouping,
// e.g. "$1,234.50". The API ships amounts as floats; they are rounded to the
// currency's minor unit before display.
func Amount(amount float64, code string) string {
	iso := NormalizeCurrency(code)
	cur := money.GetCurrency(iso)
	minor := int64(math.Round(amount * math.Pow10(cur.Fraction)))
	return money.New(minor, iso).Display()
}

// SignedAmount prefixes the amount with +/- based on the transaction type:
// income is positive, everything else negative.
func SignedAmount(amount float64, code, txType string) string {
	if txType == "income" {
		return "+" + Amount(amount, code)
	}
	return "-" + Amount(amount, code)
}

// Percent renders a percentage with one decimal, e.g. "12.5%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// dateLayouts maps supported locale tags to display layouts. Unknown locales
// use the en-US layout.
var dateLayouts = map[string]string{
	"en-US": "Jan 2, 2006",
	"tr-TR": "2 Jan 2006",
	"de-DE": "2. Jan 2006",
	"fr-FR": "2 Jan 2006",
	"es-ES": "2 Jan 2006",
}

// Date parses an ISO 8601 date or timestamp and renders it for the locale.
// Unparseable input is returned unchanged rather than erroring; a bad date
// string from the API must not blank out a dashboard row.
func Date(iso, locale string) string {
	t, err := parseISO(iso)
	if err != nil {
		return iso
	}
	layout, ok := dateLayouts[locale]
	if !ok {
		layout = dateLayouts["en-US"]
	}
	return t.Format(layout)
}

func parseISO(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Relative renders a relative timestamp for "last updated" displays.
func Relative(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
