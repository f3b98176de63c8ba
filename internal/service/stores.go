package service

import (
	"context"
	"linuxplus_backend/internal/model"
	"time"
)

// UserStore is implemented by repository.UserRepository and mongostore.UserStore.
type UserStore interface {
	CreateWithProgress(ctx context.Context, user *model.User, progress *model.UserProgress) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLanguage(ctx context.Context, id, language string) error
}

// ProgressStore mutates the per-user counters atomically.
type ProgressStore interface {
	Get(ctx context.Context, userID string) (*model.UserProgress, error)
	RecordQuiz(ctx context.Context, userID string, attempt model.QuizAttempt) error
	RecordFlashcardReview(ctx context.Context, userID string, at time.Time) error
	SetCurrentWeek(ctx context.Context, userID string, week int) error
}

type QuizResultStore interface {
	Create(ctx context.Context, result *model.QuizResult) error
	RecentByUser(ctx context.Context, userID string, limit int) ([]model.QuizResult, error)
	CompletionTimesSince(ctx context.Context, userID string, since time.Time) ([]time.Time, error)
}
