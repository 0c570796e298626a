package checkin

import (
	"testing"
	"time"
)

func TestEvaluateMatchesWindowByElapsedTime(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    WindowKind
		matched bool
	}{
		{name: "too early", elapsed: time.Hour, matched: false},
		{name: "morning", elapsed: 2 * time.Hour, want: WindowMorning, matched: true},
		{name: "dead zone after morning", elapsed: 3 * time.Hour, matched: false},
		{name: "midday", elapsed: 4 * time.Hour, want: WindowMidday, matched: true},
		{name: "evening", elapsed: 8 * time.Hour, want: WindowEvening, matched: true},
		{name: "next day", elapsed: 36 * time.Hour, want: WindowNextDay, matched: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t, fixedScorer{})
			engine.seedUser(t, "31612345678")

			now := time.Now().UTC()
			engine.appendPrompt(t, "31612345678", now.Add(-tt.elapsed))

			kind, err := engine.evaluator.Evaluate("31612345678", now, nil)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if tt.matched != (kind != nil) {
				t.Fatalf("Evaluate matched = %v, want %v", kind != nil, tt.matched)
			}
			if kind != nil && *kind != tt.want {
				t.Fatalf("Evaluate = %q, want %q", *kind, tt.want)
			}
		})
	}
}

func TestEvaluateRespondedUserIsNeverEligible(t *testing.T) {
	engine := newTestEngine(t, fixedScorer{})
	engine.seedUser(t, "31612345678")

	now := time.Now().UTC()
	engine.appendPrompt(t, "31612345678", now.Add(-48*time.Hour))
	engine.appendResponse(t, "31612345678", "all good", now.Add(-47*time.Hour))

	kind, err := engine.evaluator.Evaluate("31612345678", now, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if kind != nil {
		t.Fatalf("responded user got window %q, want none regardless of elapsed time", *kind)
	}
}

func TestEvaluateRequestedKindRestrictsTheMatch(t *testing.T) {
	engine := newTestEngine(t, fixedScorer{})
	engine.seedUser(t, "31612345678")

	now := time.Now().UTC()
	engine.appendPrompt(t, "31612345678", now.Add(-2*time.Hour))

	midday := WindowMidday
	kind, err := engine.evaluator.Evaluate("31612345678", now, &midday)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if kind != nil {
		t.Fatalf("user in the morning window matched requested midday, got %q", *kind)
	}

	morning := WindowMorning
	kind, err = engine.evaluator.Evaluate("31612345678", now, &morning)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if kind == nil || *kind != WindowMorning {
		t.Fatalf("requested morning should match, got %v", kind)
	}
}

func TestEvaluateFuturePromptYieldsNothing(t *testing.T) {
	engine := newTestEngine(t, fixedScorer{})
	engine.seedUser(t, "31612345678")

	now := time.Now().UTC()
	engine.appendPrompt(t, "31612345678", now.Add(30*time.Minute))

	kind, err := engine.evaluator.Evaluate("31612345678", now, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if kind != nil {
		t.Fatalf("prompt in the future matched window %q, want none", *kind)
	}
}

func TestEvaluateIsRepeatable(t *testing.T) {
	engine := newTestEngine(t, fixedScorer{})
	engine.seedUser(t, "31612345678")

	now := time.Now().UTC()
	engine.appendPrompt(t, "31612345678", now.Add(-4*time.Hour))

	for i := 0; i < 5; i++ {
		kind, err := engine.evaluator.Evaluate("31612345678", now, nil)
		if err != nil {
			t.Fatalf("Evaluate #%d: %v", i, err)
		}
		if kind == nil || *kind != WindowMidday {
			t.Fatalf("Evaluate #%d = %v, want midday on every call", i, kind)
		}
	}
}
