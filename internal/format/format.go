// Package format holds the pure display-formatting helpers: currency and
// date rendering, status badge classes, and the country/currency tables
// used by the send-money flow.
package format

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// englishPrinter renders grouped numbers the way the pages display them
// (en-US grouping, e.g. 1,234.56).
var englishPrinter = message.NewPrinter(language.AmericanEnglish)

// Currency formats an amount with its currency symbol and two decimal
// places, e.g. Currency(1234.5, "USD") == "$1,234.50". Unknown codes fall
// back to prefixing the code itself.
func Currency(amount decimal.Decimal, code string) string {
	f, _ := amount.Round(2).Float64()

	unit, err := currency.ParseISO(code)
	if err != nil {
		return code + " " + englishPrinter.Sprintf("%.2f", f)
	}

	sym, ok := currencySymbols[unit.String()]
	if !ok {
		return unit.String() + " " + englishPrinter.Sprintf("%.2f", f)
	}
	return sym + englishPrinter.Sprintf("%.2f", f)
}

// Date renders a timestamp the way the transaction lists do.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DateTime renders a timestamp with the time component included.
func DateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Truncate shortens s to at most length runes, ending with an ellipsis.
func Truncate(s string, length int) string {
	const ending = "..."
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= len(ending) {
		return string(runes[:length])
	}
	return string(runes[:length-len(ending)]) + ending
}

// StatusBadgeClass maps a transaction or profile status onto the badge
// style the templates use.
func StatusBadgeClass(status string) string {
	switch strings.ToLower(status) {
	case "completed", "approved", "paid", "verified":
		return "bg-success-subtle text-success"
	case "failed", "declined", "rejected", "cancelled":
		return "bg-danger-subtle text-danger"
	case "processing", "accepted", "pending_payment":
		return "bg-info-subtle text-info"
	case "suspended":
		return "bg-secondary-subtle text-secondary"
	default: // pending, unpaid, unknown
		return "bg-warning-subtle text-warning"
	}
}

// countryCurrencies maps the supported sending/receiving countries to
// their currencies.
var countryCurrencies = map[string]string{
	"Australia":      "AUD",
	"Austria":        "EUR",
	"Belgium":        "EUR",
	"Brazil":         "BRL",
	"Canada":         "CAD",
	"Estonia":        "EUR",
	"Finland":        "EUR",
	"France":         "EUR",
	"Germany":        "EUR",
	"Iceland":        "ISK",
	"India":          "INR",
	"Indonesia":      "IDR",
	"Ireland":        "EUR",
	"Italy":          "EUR",
	"Malaysia":       "MYR",
	"Mexico":         "MXN",
	"Philippines":    "PHP",
	"Romania":        "RON",
	"South Africa":   "ZAR",
	"Spain":          "EUR",
	"Switzerland":    "CHF",
	"Thailand":       "THB",
	"United Kingdom": "GBP",
	"United States":  "USD",
}

var currencySymbols = map[string]string{
	"AUD": "A$",
	"BRL": "R$",
	"CAD": "C$",
	"CHF": "CHF ",
	"CNY": "¥",
	"EUR": "€",
	"GBP": "£",
	"IDR": "Rp",
	"INR": "₹",
	"ISK": "kr",
	"JPY": "¥",
	"MXN": "$",
	"MYR": "RM",
	"PHP": "₱",
	"RON": "lei",
	"THB": "฿",
	"TRY": "₺",
	"USD": "$",
	"ZAR": "R",
}

// CurrencyForCountry resolves the currency used in a supported country.
// The second return value is false for unsupported countries.
func CurrencyForCountry(country string) (string, bool) {
	code, ok := countryCurrencies[country]
	return code, ok
}

// Countries returns the supported country names in stable alphabetical
// order, for select boxes.
func Countries() []string {
	out := make([]string, 0, len(countryCurrencies))
	for name := range countryCurrencies {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
