package repository

import (
	"context"
	"linuxplus_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository keeps counters as single-statement increments so that
// concurrent submissions for one user never lose an update.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// ensure inserts the default record if the user has none yet.
func ensure(tx *gorm.DB, userID string, now time.Time) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(model.NewUserProgress(userID, now)).Error
}

func (r *ProgressRepository) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	db := r.DB.WithContext(ctx)

	var p model.UserProgress
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err)
	}

	p.ChaptersCompleted = []int{}
	err := db.Model(&model.ChapterCompletion{}).
		Where("user_id = ?", userID).
		Order("chapter ASC").
		Pluck("chapter", &p.ChaptersCompleted).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) RecordQuiz(ctx context.Context, userID string, a model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensure(tx, userID, a.At); err != nil {
			return err
		}

		err := tx.Model(&model.UserProgress{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"total_quizzes":   gorm.Expr("total_quizzes + ?", 1),
				"total_correct":   gorm.Expr("total_correct + ?", a.Correct),
				"total_questions": gorm.Expr("total_questions + ?", a.Total),
				"last_activity":   a.At,
			}).Error
		if err != nil {
			return err
		}

		if !a.Passed {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.ChapterCompletion{UserID: userID, Chapter: a.Chapter, CompletedAt: a.At}).Error
	})
}

func (r *ProgressRepository) RecordFlashcardReview(ctx context.Context, userID string, at time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensure(tx, userID, at); err != nil {
			return err
		}
		return tx.Model(&model.UserProgress{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"flashcards_reviewed": gorm.Expr("flashcards_reviewed + ?", 1),
				"last_activity":       at,
			}).Error
	})
}

func (r *ProgressRepository) SetCurrentWeek(ctx context.Context, userID string, week int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensure(tx, userID, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Model(&model.UserProgress{}).
			Where("user_id = ?", userID).
			Update("current_week", week).Error
	})
}
