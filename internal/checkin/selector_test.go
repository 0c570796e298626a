package checkin

import (
	"strings"
	"testing"

	"github.com/mariposahq/anchor/internal/models"
)

func TestSelectMessageButtonsPerWindow(t *testing.T) {
	selector := NewSelector()
	user := models.User{UserID: "31612345678", Name: "Sofia"}

	tests := []struct {
		kind    WindowKind
		buttons []string
	}{
		{kind: WindowMorning, buttons: []string{"plan_day", "quick_checkin", "remind_later"}},
		{kind: WindowMidday, buttons: []string{"plan_afternoon", "self_care", "just_chat"}},
		{kind: WindowEvening, buttons: []string{"share_day", "plan_tomorrow", "rest_now"}},
		{kind: WindowNextDay, buttons: []string{"fresh_start", "gentle_checkin", "need_help"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			message := selector.SelectMessage(user, tt.kind, Trend{Label: TrendNeutral})
			if message.Body == "" {
				t.Fatal("empty message body")
			}
			if !strings.Contains(message.Body, "Sofia") {
				t.Fatalf("body does not address the user: %q", message.Body)
			}
			if len(message.Buttons) != len(tt.buttons) {
				t.Fatalf("got %d buttons, want %d", len(message.Buttons), len(tt.buttons))
			}
			for i, id := range tt.buttons {
				if message.Buttons[i].ID != id {
					t.Fatalf("button %d = %q, want %q", i, message.Buttons[i].ID, id)
				}
				if message.Buttons[i].Title == "" {
					t.Fatalf("button %q has no title", id)
				}
			}
		})
	}
}

func TestSelectMessageTrendOnlyColorsTone(t *testing.T) {
	selector := NewSelector()
	user := models.User{UserID: "31612345678", Name: "Sofia"}

	neutral := selector.SelectMessage(user, WindowMorning, Trend{Label: TrendNeutral})
	declining := selector.SelectMessage(user, WindowMorning, Trend{Label: TrendDeclining})

	if !strings.HasPrefix(declining.Body, neutral.Body) {
		t.Fatal("declining trend should only append to the base message")
	}
	if declining.Body == neutral.Body {
		t.Fatal("declining trend should add a supportive line")
	}
	if len(declining.Buttons) != len(neutral.Buttons) {
		t.Fatal("trend must not change the offered buttons")
	}
}

func TestDisplayNameStripsAccountSuffix(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "Sofia_1", want: "Sofia"},
		{raw: "Sofia", want: "Sofia"},
		{raw: "", want: ""},
	}
	for _, tt := range tests {
		user := models.User{Name: tt.raw}
		if got := user.DisplayName(); got != tt.want {
			t.Fatalf("DisplayName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestEndOfDayMessageReflectsTodaysActivity(t *testing.T) {
	selector := NewSelector()
	user := models.User{UserID: "31612345678", Name: "Sofia"}

	withResponses := selector.EndOfDayMessage(user, 3, Trend{Label: TrendNeutral})
	if !strings.Contains(withResponses, "Thank you for checking in") {
		t.Fatalf("message for an active day misses the acknowledgement: %q", withResponses)
	}

	silentDay := selector.EndOfDayMessage(user, 0, Trend{Label: TrendNeutral})
	if !strings.Contains(silentDay, "haven't talked today") {
		t.Fatalf("message for a silent day misses the fresh-start line: %q", silentDay)
	}

	improving := selector.EndOfDayMessage(user, 1, Trend{Label: TrendImproving})
	if !strings.Contains(improving, "lighter lately") {
		t.Fatalf("improving trend should add the upbeat line: %q", improving)
	}
}

func TestSelfCareTipIsAlwaysKnown(t *testing.T) {
	selector := NewSelector()
	known := make(map[string]bool, len(selfCareTips))
	for _, tip := range selfCareTips {
		known[tip] = true
	}
	for i := 0; i < 50; i++ {
		if tip := selector.SelfCareTip(); !known[tip] {
			t.Fatalf("unknown tip %q", tip)
		}
	}
}
