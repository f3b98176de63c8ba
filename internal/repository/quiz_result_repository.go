package repository

import (
	"context"
	"linuxplus_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) Create(ctx context.Context, result *model.QuizResult) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

// RecentByUser returns the newest results first.
func (r *QuizResultRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]model.QuizResult, error) {
	results := make([]model.QuizResult, 0, limit)
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

func (r *QuizResultRepository) CompletionTimesSince(ctx context.Context, userID string, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.DB.WithContext(ctx).
		Model(&model.QuizResult{}).
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Order("completed_at DESC").
		Pluck("completed_at", &times).Error
	return times, err
}
