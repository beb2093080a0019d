// internal/compose/money.go
package compose

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEuros renders a monetary value as "1.234,56€".
//
// The accepted shapes mirror what the POS frontends actually send: an
// integer number of cents, a decimal string using either "," or "." as
// separator, or a float. Whole numbers are treated as cents and values
// carrying a fractional part as already-decimal euros. Anything invalid,
// including NaN, formats as zero rather than propagating garbage onto
// paper.
func FormatEuros(value interface{}) string {
	return formatEuroAmount(parseEuroAmount(value))
}

// FormatCents renders an exact minor-units amount as "1.234,56€".
func FormatCents(cents int64) string {
	return formatEuroAmount(decimal.New(cents, -2))
}

func parseEuroAmount(value interface{}) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case int:
		return decimal.New(int64(v), -2)
	case int32:
		return decimal.New(int64(v), -2)
	case int64:
		return decimal.New(v, -2)
	case float32:
		return parseEuroFloat(float64(v))
	case float64:
		return parseEuroFloat(v)
	case json.Number:
		return parseEuroString(v.String())
	case string:
		return parseEuroString(v)
	case decimal.Decimal:
		return v
	default:
		return decimal.Zero
	}
}

func parseEuroFloat(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	if v == math.Trunc(v) {
		// Whole number: an integer count of cents.
		return decimal.New(int64(v), -2)
	}
	return decimal.NewFromFloat(v)
}

func parseEuroString(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€"))
	if s == "" {
		return decimal.Zero
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		// Both separators present: the last one is the decimal mark and
		// the other groups thousands, as in "1.234,56" or "1,234.56".
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if !hasComma && !hasDot {
		// Bare integer text: cents, same as numeric input.
		return d.Shift(-2)
	}
	return d
}

func formatEuroAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]

	// Thousands separator the Portuguese way.
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac + "€"
	if neg {
		out = "-" + out
	}
	return out
}
