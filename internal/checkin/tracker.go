package checkin

import (
	"context"
	"time"

	"github.com/mariposahq/anchor/internal/models"
	"github.com/mariposahq/anchor/internal/sentiment"
	"go.uber.org/zap"
)

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendPositive  = "positive"
	TrendNegative  = "negative"
	TrendNeutral   = "neutral"
)

// Trend labels are advisory inputs to message tone, never to eligibility.
type Trend struct {
	Label   string  `json:"trend"`
	Average float64 `json:"average"`
	Samples int     `json:"sample_count"`
}

const scoreTimeout = 10 * time.Second

// Tracker maintains the streak and sentiment side channels that are
// updated whenever a user response is processed.
type Tracker struct {
	users  UserStore
	ledger Ledger
	scorer sentiment.Scorer
	logger *zap.Logger
}

func NewTracker(users UserStore, ledger Ledger, scorer sentiment.Scorer, logger *zap.Logger) *Tracker {
	return &Tracker{users: users, ledger: ledger, scorer: scorer, logger: logger}
}

// UpdateStreak advances the user's consecutive-day streak. A gap of at most
// one day maintains the streak (incrementing only when today was not
// already counted); anything longer resets it to 1.
func (tracker *Tracker) UpdateStreak(userID string, now time.Time) (int, bool, error) {
	user, err := tracker.users.FindByID(userID)
	if err != nil {
		return 0, false, err
	}

	today := dateOnly(now.UTC())
	count := user.StreakCount
	maintained := false

	if user.LastStreakDate != nil {
		last := dateOnly(user.LastStreakDate.UTC())
		switch gapDays(last, today) {
		case 0:
			maintained = true
		case 1:
			count++
			maintained = true
		default:
			count = 1
		}
	} else {
		count = 1
	}

	if err := tracker.users.UpdateStreak(userID, count, now.UTC()); err != nil {
		return 0, false, err
	}
	return count, maintained, nil
}

// SentimentTrend averages the sentiment ring over the trailing window and
// labels it positive, negative or neutral. A swing greater than 0.3 between
// the two halves of the window overrides the label with improving or
// declining.
func (tracker *Tracker) SentimentTrend(userID string, now time.Time, days int) (Trend, error) {
	user, err := tracker.users.FindByID(userID)
	if err != nil {
		return Trend{}, err
	}

	samples, err := user.SentimentSamples()
	if err != nil {
		tracker.logger.Warn("sentiment history is unreadable",
			zap.String("user_id", userID), zap.Error(err))
		return Trend{Label: TrendNeutral}, nil
	}

	cutoff := now.UTC().AddDate(0, 0, -days)
	recent := make([]float64, 0, len(samples))
	for _, sample := range samples {
		if sample.Timestamp.UTC().Before(cutoff) {
			continue
		}
		recent = append(recent, sample.Score)
	}
	if len(recent) == 0 {
		return Trend{Label: TrendNeutral}, nil
	}

	average := mean(recent)
	label := TrendNeutral
	if average > 0.2 {
		label = TrendPositive
	} else if average < -0.2 {
		label = TrendNegative
	}

	if len(recent) >= 2 {
		firstAvg := mean(recent[:len(recent)/2])
		secondAvg := mean(recent[len(recent)/2:])
		if secondAvg-firstAvg > 0.3 {
			label = TrendImproving
		} else if firstAvg-secondAvg > 0.3 {
			label = TrendDeclining
		}
	}

	return Trend{Label: label, Average: average, Samples: len(recent)}, nil
}

// RecordResponse appends a user response to the ledger, refreshes activity
// and streak state, then scores the text and backfills the score into the
// entry and the user's sentiment ring. The entry is readable before its
// score lands; backfilling twice simply overwrites.
func (tracker *Tracker) RecordResponse(ctx context.Context, userID string, body string, kind string, now time.Time) (models.CheckIn, error) {
	entry, err := tracker.ledger.Append(models.CheckIn{
		UserID:     userID,
		Body:       body,
		IsResponse: true,
		Kind:       kind,
		CreatedAt:  now.UTC(),
	})
	if err != nil {
		return models.CheckIn{}, err
	}

	if err := tracker.users.UpdateLastActive(userID, now.UTC()); err != nil {
		tracker.logger.Warn("update last active failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	if _, _, err := tracker.UpdateStreak(userID, now); err != nil {
		tracker.logger.Warn("streak update failed",
			zap.String("user_id", userID), zap.Error(err))
	}

	tracker.scoreAndBackfill(ctx, entry)
	return entry, nil
}

func (tracker *Tracker) scoreAndBackfill(ctx context.Context, entry models.CheckIn) {
	scoreCtx, cancel := context.WithTimeout(ctx, scoreTimeout)
	defer cancel()

	score, err := tracker.scorer.Score(scoreCtx, entry.Body)
	if err != nil {
		tracker.logger.Warn("sentiment scoring failed",
			zap.String("checkin_id", entry.ID), zap.Error(err))
		return
	}

	if err := tracker.ledger.BackfillSentiment(entry.ID, score); err != nil {
		tracker.logger.Warn("sentiment backfill failed",
			zap.String("checkin_id", entry.ID), zap.Error(err))
	}

	user, err := tracker.users.FindByID(entry.UserID)
	if err != nil {
		tracker.logger.Warn("load user for sentiment history failed",
			zap.String("user_id", entry.UserID), zap.Error(err))
		return
	}
	history, err := user.PushSentimentSample(models.SentimentSample{
		Score:     score,
		Timestamp: entry.CreatedAt,
	})
	if err != nil {
		tracker.logger.Warn("encode sentiment history failed",
			zap.String("user_id", entry.UserID), zap.Error(err))
		return
	}
	if err := tracker.users.SaveSentimentHistory(entry.UserID, history); err != nil {
		tracker.logger.Warn("save sentiment history failed",
			zap.String("user_id", entry.UserID), zap.Error(err))
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func gapDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func mean(values []float64) float64 {
	total := 0.0
	for _, value := range values {
		total += value
	}
	return total / float64(len(values))
}
