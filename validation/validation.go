package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to a short error code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators. Each records at most one violation per field and
// keeps the first one found.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "required")
	}
}

func MaxLen(field, value string, maxLen int, v Violations) {
	if utf8.RuneCountInString(value) > maxLen {
		v.add(field, "too_long")
	}
}

func NonNegativeDecimal(field string, val decimal.Decimal, v Violations) {
	if val.IsNegative() {
		v.add(field, "must_not_be_negative")
	}
}

func RangeDecimal(field string, val, minVal, maxVal decimal.Decimal, v Violations) {
	if val.LessThan(minVal) || val.GreaterThan(maxVal) {
		v.add(field, "out_of_range")
	}
}

// Decimal parses s into a decimal, recording "invalid_number" on failure.
func Decimal(field, s string, v Violations) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		v.add(field, "invalid_number")
		return decimal.Zero
	}
	return d
}

func (v Violations) add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}
