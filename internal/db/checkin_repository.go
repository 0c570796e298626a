package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mariposahq/anchor/internal/models"
	"gorm.io/gorm"
)

// ErrStalePrompt is returned by AppendPromptIfLatest when another writer
// recorded a newer prompt between the caller's read and its append.
var ErrStalePrompt = errors.New("a newer prompt already exists for this user")

type CheckInRepository struct {
	database *gorm.DB
}

func NewCheckInRepository(database *gorm.DB) *CheckInRepository {
	return &CheckInRepository{database: database}
}

// Append assigns the entry id and creation time and persists the entry.
// A pre-set CreatedAt is honored after normalization to UTC so sweep and
// webhook code can stamp entries with their own evaluation instant.
func (repo *CheckInRepository) Append(entry models.CheckIn) (models.CheckIn, error) {
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	if err := repo.database.Create(&entry).Error; err != nil {
		return models.CheckIn{}, err
	}
	return entry, nil
}

// AppendPromptIfLatest appends a prompt entry only if the newest prompt for
// the user is still baselinePromptID (empty means no prompt may exist yet).
// Fails with ErrStalePrompt otherwise.
func (repo *CheckInRepository) AppendPromptIfLatest(entry models.CheckIn, baselinePromptID string) (models.CheckIn, error) {
	entry.ID = uuid.NewString()
	entry.IsResponse = false
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var latest models.CheckIn
		result := tx.
			Where("user_id = ? AND is_response = ?", entry.UserID, false).
			Order("created_at DESC, id DESC").
			First(&latest)
		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			if baselinePromptID != "" {
				return ErrStalePrompt
			}
		case result.Error != nil:
			return result.Error
		case latest.ID != baselinePromptID:
			return ErrStalePrompt
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return models.CheckIn{}, err
	}
	return entry, nil
}

// Latest returns the newest entries of the given class, newest first. The
// store is queried by user id only; the response flag is applied client-side
// so no composite index is required. Timestamps are normalized to UTC on
// read because upstream writers are not guaranteed to be timezone-aware.
func (repo *CheckInRepository) Latest(userID string, isResponse bool, limit int) ([]models.CheckIn, error) {
	rows := make([]models.CheckIn, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	matched := make([]models.CheckIn, 0, limit)
	for _, row := range rows {
		if row.IsResponse != isResponse {
			continue
		}
		row.CreatedAt = row.CreatedAt.UTC()
		matched = append(matched, row)
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	return matched, nil
}

// ListSince returns all entries of the given class created at or after
// since, newest first.
func (repo *CheckInRepository) ListSince(userID string, isResponse bool, since time.Time) ([]models.CheckIn, error) {
	rows, err := repo.Latest(userID, isResponse, 0)
	if err != nil {
		return nil, err
	}

	matched := make([]models.CheckIn, 0, len(rows))
	for _, row := range rows {
		if row.CreatedAt.Before(since.UTC()) {
			break
		}
		matched = append(matched, row)
	}
	return matched, nil
}

// BackfillSentiment overwrites the sentiment score of an existing entry.
// Running it twice with the same score is a no-op.
func (repo *CheckInRepository) BackfillSentiment(id string, score float64) error {
	return repo.database.
		Model(&models.CheckIn{}).
		Where("id = ?", id).
		Update("sentiment_score", score).Error
}
