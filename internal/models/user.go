package models

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	PlanningDaily  = "daily"
	PlanningWeekly = "weekly"
)

// SentimentHistorySize bounds the per-user sentiment ring.
const SentimentHistorySize = 10

type SentimentSample struct {
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

type User struct {
	UserID           string `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	AccountIndex     int    `gorm:"not null;default:0"`
	PlanningType     string `gorm:"not null;default:daily"`
	StreakCount      int    `gorm:"not null;default:0"`
	LastStreakDate   *time.Time
	SentimentHistory string    `gorm:"not null;default:'[]'"`
	CreatedAt        time.Time `gorm:"not null"`
	LastActive       time.Time `gorm:"not null"`
}

// DisplayName strips the account suffix some onboarding flows append
// after an underscore.
func (user User) DisplayName() string {
	if name, _, found := strings.Cut(user.Name, "_"); found {
		return name
	}
	return user.Name
}

// SentimentSamples decodes the stored ring, oldest first.
func (user User) SentimentSamples() ([]SentimentSample, error) {
	if strings.TrimSpace(user.SentimentHistory) == "" {
		return nil, nil
	}
	samples := make([]SentimentSample, 0, SentimentHistorySize)
	if err := json.Unmarshal([]byte(user.SentimentHistory), &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// PushSentimentSample appends a sample and returns the re-encoded ring,
// keeping only the most recent SentimentHistorySize entries.
func (user User) PushSentimentSample(sample SentimentSample) (string, error) {
	samples, err := user.SentimentSamples()
	if err != nil {
		samples = nil
	}
	samples = append(samples, sample)
	if len(samples) > SentimentHistorySize {
		samples = samples[len(samples)-SentimentHistorySize:]
	}
	encoded, err := json.Marshal(samples)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
