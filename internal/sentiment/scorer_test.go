package sentiment

import (
	"context"
	"testing"
)

func TestKeywordScorer(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "no sentiment words", text: "I went to the store", want: 0},
		{name: "empty text", text: "", want: 0},
		{name: "purely positive", text: "today was great, I feel happy", want: 1},
		{name: "purely negative", text: "terrible day, very stressed", want: -1},
		{name: "mixed leans nowhere", text: "a good morning but a sad evening", want: 0},
		{name: "case insensitive", text: "GREAT day", want: 1},
	}

	scorer := KeywordScorer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Score(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestKeywordScorerStaysInRange(t *testing.T) {
	scorer := KeywordScorer{}
	texts := []string{
		"good great excellent happy excited",
		"bad terrible sad depressed angry upset",
		"love and hate in equal measure",
	}
	for _, text := range texts {
		score, err := scorer.Score(context.Background(), text)
		if err != nil {
			t.Fatalf("Score(%q): %v", text, err)
		}
		if score < -1 || score > 1 {
			t.Fatalf("Score(%q) = %v, out of [-1, 1]", text, score)
		}
	}
}
