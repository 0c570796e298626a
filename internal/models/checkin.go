package models

import "time"

const (
	KindDaily    = "Daily"
	KindWeekly   = "Weekly"
	KindEndOfDay = "EndOfDay"
)

// CheckIn is a single ledger entry: either a system-issued prompt
// (IsResponse false) or a user-authored reply (IsResponse true).
// Only SentimentScore may change after creation.
type CheckIn struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"index;not null"`
	Body           string `gorm:"not null"`
	IsResponse     bool   `gorm:"not null"`
	Kind           string `gorm:"not null;default:Daily"`
	SentimentScore *float64
	CreatedAt      time.Time `gorm:"not null"`
}

func (CheckIn) TableName() string {
	return "checkins"
}
