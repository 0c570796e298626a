package checkin

import (
	"context"
	"time"

	"github.com/mariposahq/anchor/internal/models"
)

// Ledger is the append-only check-in store consumed by the engine.
// *db.CheckInRepository is the production implementation.
type Ledger interface {
	Append(entry models.CheckIn) (models.CheckIn, error)
	AppendPromptIfLatest(entry models.CheckIn, baselinePromptID string) (models.CheckIn, error)
	Latest(userID string, isResponse bool, limit int) ([]models.CheckIn, error)
	ListSince(userID string, isResponse bool, since time.Time) ([]models.CheckIn, error)
	BackfillSentiment(id string, score float64) error
}

// UserStore is the user read/write surface the engine needs.
// *db.UserRepository is the production implementation.
type UserStore interface {
	FindByID(userID string) (models.User, error)
	ListActive(since time.Time) ([]models.User, error)
	UpdateLastActive(userID string, at time.Time) error
	UpdateStreak(userID string, count int, lastStreakDate time.Time) error
	SaveSentimentHistory(userID string, historyJSON string) error
}

// Messenger dispatches outbound messages for one credential set.
type Messenger interface {
	SendText(ctx context.Context, recipient string, body string) error
	SendButtons(ctx context.Context, recipient string, body string, buttons []models.Button) error
}

// MessengerProvider resolves the Messenger for an account credential set.
type MessengerProvider interface {
	Messenger(accountIndex int) (Messenger, error)
}
