package checkin

import (
	"testing"
	"time"
)

func TestWindowsAreDisjoint(t *testing.T) {
	// Sample the elapsed axis densely across and beyond every window edge.
	step := 30 * time.Second
	for elapsed := time.Duration(0); elapsed <= 30*time.Hour; elapsed += step {
		matches := 0
		for _, window := range Windows() {
			if window.Contains(elapsed) {
				matches++
			}
		}
		if matches > 1 {
			t.Fatalf("elapsed %s matched %d windows, want at most 1", elapsed, matches)
		}
	}
}

func TestMatchWindowBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    WindowKind
		matched bool
	}{
		{name: "lower bound is exclusive", elapsed: 90 * time.Minute, matched: false},
		{name: "just inside morning", elapsed: 90*time.Minute + time.Nanosecond, want: WindowMorning, matched: true},
		{name: "upper bound is inclusive", elapsed: 150 * time.Minute, want: WindowMorning, matched: true},
		{name: "just past morning", elapsed: 150*time.Minute + time.Nanosecond, matched: false},
		{name: "midday", elapsed: 4 * time.Hour, want: WindowMidday, matched: true},
		{name: "between midday and evening", elapsed: 6 * time.Hour, matched: false},
		{name: "evening", elapsed: 8 * time.Hour, want: WindowEvening, matched: true},
		{name: "just before next day", elapsed: 24 * time.Hour, matched: false},
		{name: "next day", elapsed: 30 * time.Hour, want: WindowNextDay, matched: true},
		{name: "next day has no upper bound", elapsed: 400 * time.Hour, want: WindowNextDay, matched: true},
		{name: "zero elapsed", elapsed: 0, matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchWindow(tt.elapsed)
			if ok != tt.matched {
				t.Fatalf("MatchWindow(%s) matched = %v, want %v", tt.elapsed, ok, tt.matched)
			}
			if ok && got != tt.want {
				t.Fatalf("MatchWindow(%s) = %q, want %q", tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestParseWindowKind(t *testing.T) {
	tests := []struct {
		raw     string
		want    WindowKind
		matched bool
	}{
		{raw: "morning", want: WindowMorning, matched: true},
		{raw: " Midday ", want: WindowMidday, matched: true},
		{raw: "EVENING", want: WindowEvening, matched: true},
		{raw: "nextday", want: WindowNextDay, matched: true},
		{raw: "", matched: false},
		{raw: "afternoon", matched: false},
	}

	for _, tt := range tests {
		got, ok := ParseWindowKind(tt.raw)
		if ok != tt.matched {
			t.Fatalf("ParseWindowKind(%q) matched = %v, want %v", tt.raw, ok, tt.matched)
		}
		if ok && got != tt.want {
			t.Fatalf("ParseWindowKind(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
