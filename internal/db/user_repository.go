package db

import (
	"time"

	"github.com/mariposahq/anchor/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID string) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, "user_id = ?", userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	if user.PlanningType == "" {
		user.PlanningType = models.PlanningDaily
	}
	if user.SentimentHistory == "" {
		user.SentimentHistory = "[]"
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastActive.IsZero() {
		user.LastActive = now
	}
	return repo.database.Create(user).Error
}

// ListActive returns users soft-considered active: anyone seen since the
// given cutoff. Users are never hard-deleted.
func (repo *UserRepository) ListActive(since time.Time) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.
		Where("last_active >= ?", since.UTC()).
		Order("user_id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) UpdateLastActive(userID string, at time.Time) error {
	return repo.database.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("last_active", at.UTC()).Error
}

func (repo *UserRepository) UpdateStreak(userID string, count int, lastStreakDate time.Time) error {
	return repo.database.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"streak_count":     count,
			"last_streak_date": lastStreakDate.UTC(),
		}).Error
}

func (repo *UserRepository) SaveSentimentHistory(userID string, historyJSON string) error {
	return repo.database.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("sentiment_history", historyJSON).Error
}

func (repo *UserRepository) UpdatePlanningType(userID string, planningType string) error {
	return repo.database.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("planning_type", planningType).Error
}
