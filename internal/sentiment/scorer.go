package sentiment

import (
	"context"
	"strings"
)

// Scorer rates a piece of text between -1 (negative) and 1 (positive).
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

var positiveWords = []string{
	"good", "great", "excellent", "happy", "excited", "joy", "wonderful", "fantastic",
	"nice", "love", "positive", "amazing", "well", "better", "okay", "fine", "calm",
}

var negativeWords = []string{
	"bad", "terrible", "sad", "depressed", "angry", "upset", "awful", "horrible",
	"hate", "negative", "stressed", "anxious", "worried", "overwhelmed", "struggling",
}

// KeywordScorer is the offline fallback: a simple weighted count of
// positive and negative words. Text without any sentiment words scores 0.
type KeywordScorer struct{}

func (KeywordScorer) Score(_ context.Context, text string) (float64, error) {
	lowered := strings.ToLower(text)

	positives := 0
	for _, word := range positiveWords {
		if strings.Contains(lowered, word) {
			positives++
		}
	}
	negatives := 0
	for _, word := range negativeWords {
		if strings.Contains(lowered, word) {
			negatives++
		}
	}

	if positives+negatives == 0 {
		return 0, nil
	}
	return float64(positives-negatives) / float64(positives+negatives), nil
}
