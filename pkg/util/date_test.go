package util

import (
	"testing"
	"time"
)

func TestParseBarDate(t *testing.T) {
	got, ok := ParseBarDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2024 || got.Month() != time.October || got.Day() != 10 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseBarDateCompact(t *testing.T) {
	got, ok := ParseBarDate("20241010")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Format(DateLayout) != "2024-10-10" {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseBarDateEmpty(t *testing.T) {
	if _, ok := ParseBarDate(""); ok {
		t.Fatalf("expected not ok")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 10, 10, 9, 30, 0, 0, time.Local)
	b := time.Date(2024, 10, 10, 15, 0, 0, 0, time.Local)
	if !SameDay(a, b) {
		t.Fatalf("expected same day")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Fatalf("expected different day")
	}
}

func TestParseFloatDefault(t *testing.T) {
	if got := ParseFloatDefault("12.5", 0); got != 12.5 {
		t.Fatalf("unexpected value %v", got)
	}
	if got := ParseFloatDefault("-", 1); got != 1 {
		t.Fatalf("expected default, got %v", got)
	}
	if got := ParseFloatDefault("", 2); got != 2 {
		t.Fatalf("expected default, got %v", got)
	}
}
