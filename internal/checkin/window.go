package checkin

import (
	"strings"
	"time"
)

type WindowKind string

const (
	WindowMorning WindowKind = "morning"
	WindowMidday  WindowKind = "midday"
	WindowEvening WindowKind = "evening"
	WindowNextDay WindowKind = "nextday"
)

// ReminderWindow is a half-open elapsed-time interval (MinElapsed, MaxElapsed].
// MaxElapsed zero means unbounded.
type ReminderWindow struct {
	Kind       WindowKind
	MinElapsed time.Duration
	MaxElapsed time.Duration
}

// Windows are staggered so that any elapsed value satisfies at most one of
// them, with a tolerance band wide enough to absorb sweep jitter. Evaluated
// in this priority order, first match wins.
var reminderWindows = []ReminderWindow{
	{Kind: WindowMorning, MinElapsed: 90 * time.Minute, MaxElapsed: 150 * time.Minute},
	{Kind: WindowMidday, MinElapsed: 210 * time.Minute, MaxElapsed: 270 * time.Minute},
	{Kind: WindowEvening, MinElapsed: 450 * time.Minute, MaxElapsed: 510 * time.Minute},
	{Kind: WindowNextDay, MinElapsed: 24 * time.Hour},
}

func (window ReminderWindow) Contains(elapsed time.Duration) bool {
	if elapsed <= window.MinElapsed {
		return false
	}
	return window.MaxElapsed == 0 || elapsed <= window.MaxElapsed
}

// MatchWindow returns the first window containing elapsed, if any.
func MatchWindow(elapsed time.Duration) (WindowKind, bool) {
	for _, window := range reminderWindows {
		if window.Contains(elapsed) {
			return window.Kind, true
		}
	}
	return "", false
}

// Windows returns a copy of the defined reminder windows in priority order.
func Windows() []ReminderWindow {
	windows := make([]ReminderWindow, len(reminderWindows))
	copy(windows, reminderWindows)
	return windows
}

func ParseWindowKind(raw string) (WindowKind, bool) {
	switch WindowKind(strings.ToLower(strings.TrimSpace(raw))) {
	case WindowMorning:
		return WindowMorning, true
	case WindowMidday:
		return WindowMidday, true
	case WindowEvening:
		return WindowEvening, true
	case WindowNextDay:
		return WindowNextDay, true
	default:
		return "", false
	}
}
