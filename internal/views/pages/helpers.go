package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseUint converts a form value into an unsigned identifier, returning zero
// for anything that is not a positive integer.
func ParseUint(raw string) uint {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	value, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// FormatMoney renders a currency amount with two decimal places.
func FormatMoney(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

// FormatReportQuantity renders a quantity with a trailing unit. Whole-gram
// amounts drop the fractional digits to keep count sheets legible.
func FormatReportQuantity(value float64, unit string) string {
	if strings.EqualFold(unit, "g") {
		return fmt.Sprintf("%.0f %s", value, unit)
	}
	return fmt.Sprintf("%.2f %s", value, unit)
}

// FormatReportDate renders the supplied time using a kitchen-friendly layout.
func FormatReportDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format("02 Jan 2006")
}

// FormatPercent renders a signed percentage with one decimal place.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}
