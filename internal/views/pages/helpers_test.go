package pages

import (
	"testing"
	"time"
)

func TestParseUint(t *testing.T) {
	if got := ParseUint(" 42 "); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := ParseUint("-3"); got != 0 {
		t.Fatalf("expected zero for negative input, got %d", got)
	}
	if got := ParseUint("abc"); got != 0 {
		t.Fatalf("expected zero for non-numeric input, got %d", got)
	}
	if got := ParseUint(""); got != 0 {
		t.Fatalf("expected zero for empty input, got %d", got)
	}
}

func TestFormatReportQuantity(t *testing.T) {
	if got := FormatReportQuantity(5442.104, "g"); got != "5442 g" {
		t.Fatalf("expected gram quantities without decimals, got %q", got)
	}
	if got := FormatReportQuantity(0.6, "lb"); got != "0.60 lb" {
		t.Fatalf("expected two decimal places, got %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(350.526); got != "$350.53" {
		t.Fatalf("expected rounded money string, got %q", got)
	}
}

func TestFormatReportDate(t *testing.T) {
	if got := FormatReportDate(time.Time{}); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
	v := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatReportDate(v); got != "01 Jun 2025" {
		t.Fatalf("unexpected date format: %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(9.0909); got != "9.1%" {
		t.Fatalf("unexpected percent format: %q", got)
	}
}
