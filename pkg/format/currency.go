// Package format renders and parses the money and percentage strings used by
// the CLI tables, CSV output and exported workbooks.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a whole-dollar string with thousands separators. Negative
// values are wrapped in parentheses, e.g. "(1,234)".
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0"
	}
	rounded := math.Round(amount)
	formatted := printer.Sprintf("$%d", int64(math.Abs(rounded)))
	if rounded < 0 {
		return "(" + formatted + ")"
	}
	return formatted
}

// NumericCurrency returns a two-decimal amount with separators and a leading
// minus sign for negatives (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0.00"
	}
	return printer.Sprintf("%.2f", amount)
}

// Pct returns a percentage with one decimal place, e.g. "15.3%".
func Pct(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0.0%"
	}
	return strconv.FormatFloat(value, 'f', 1, 64) + "%"
}

// ParseCurrency strips everything but digits, the decimal point and the minus
// sign and parses the remainder. Unparseable input is coerced to 0.
func ParseCurrency(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
