package domain

import (
	"testing"
	"time"
)

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"monday maps to itself", "2024-01-01", "2024-01-01"},
		{"tuesday", "2024-01-02", "2024-01-01"},
		{"sunday maps to preceding monday", "2024-01-07", "2024-01-01"},
		{"next monday starts a new week", "2024-01-08", "2024-01-08"},
		{"saturday mid-year", "2024-06-15", "2024-06-10"},
		{"across month boundary", "2024-03-02", "2024-02-26"},
		{"across year boundary", "2025-01-01", "2024-12-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ParseDate(tt.date)
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.date, err)
			}
			if got := WeekStartOf(day); got != tt.want {
				t.Errorf("WeekStartOf(%s) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestWeekDates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := WeekDates(start, 7)
	want := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}
	if len(got) != len(want) {
		t.Fatalf("WeekDates returned %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WeekDates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWeekDatesPartialWindow(t *testing.T) {
	start := time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)
	got := WeekDates(start, 3)
	want := []string{"2024-02-26", "2024-02-27", "2024-02-28"}
	if len(got) != 3 {
		t.Fatalf("WeekDates returned %d dates, want 3", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WeekDates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsMonday(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true},
		{"2024-01-02", false},
		{"2024-01-07", false},
		{"2024-01-08", true},
		{"not-a-date", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMonday(tt.date); got != tt.want {
			t.Errorf("IsMonday(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestPrevWeekStart(t *testing.T) {
	if got := PrevWeekStart("2024-01-08"); got != "2024-01-01" {
		t.Errorf("PrevWeekStart(2024-01-08) = %q, want 2024-01-01", got)
	}
	if got := PrevWeekStart("2024-01-01"); got != "2023-12-25" {
		t.Errorf("PrevWeekStart(2024-01-01) = %q, want 2023-12-25", got)
	}
	if got := PrevWeekStart("garbage"); got != "" {
		t.Errorf("PrevWeekStart(garbage) = %q, want empty", got)
	}
}

func TestDocID(t *testing.T) {
	if got := DocID("abc123", "2024-01-01"); got != "abc123_2024-01-01" {
		t.Errorf("DocID = %q, want abc123_2024-01-01", got)
	}
}
