package service

import (
	"context"
	"errors"
	"linuxplus_backend/internal/model"
	"linuxplus_backend/internal/repository"
	"linuxplus_backend/internal/util"
	"time"
)

type ProgressService struct {
	progress ProgressStore
	results  QuizResultStore
	now      func() time.Time
}

func NewProgressService(progress ProgressStore, results QuizResultStore) *ProgressService {
	return &ProgressService{
		progress: progress,
		results:  results,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ProgressOverview is the dashboard payload.
type ProgressOverview struct {
	*model.UserProgress
	QuizHistory []model.QuizResult `json:"quiz_history"`
}

func (s *ProgressService) MarkFlashcardReviewed(ctx context.Context, userID string) error {
	if userID == "" {
		return util.ErrUnauthenticated
	}
	return s.progress.RecordFlashcardReview(ctx, userID, s.now())
}

func (s *ProgressService) UpdateWeek(ctx context.Context, userID string, week int) error {
	if userID == "" {
		return util.ErrUnauthenticated
	}
	if week < model.FirstStudyWeek || week > model.LastStudyWeek {
		return util.ErrInvalidWeek
	}
	return s.progress.SetCurrentWeek(ctx, userID, week)
}

func (s *ProgressService) GetProgress(ctx context.Context, userID string) (*ProgressOverview, error) {
	if userID == "" {
		return nil, util.ErrUnauthenticated
	}

	p, err := s.progress.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		p = &model.UserProgress{
			UserID:            userID,
			ChaptersCompleted: []int{},
			CurrentWeek:       model.FirstStudyWeek,
		}
	} else if err != nil {
		return nil, err
	}

	history, err := s.results.RecentByUser(ctx, userID, util.QuizHistoryLimit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	times, err := s.results.CompletionTimesSince(ctx, userID, now.AddDate(0, 0, -util.StreakLookbackDays))
	if err != nil {
		return nil, err
	}
	p.StreakDays = StreakDays(times, now)

	return &ProgressOverview{UserProgress: p, QuizHistory: history}, nil
}

// StreakDays counts consecutive UTC days with activity, ending today or, if
// nothing happened yet today, yesterday.
func StreakDays(activity []time.Time, now time.Time) int {
	days := make(map[string]bool, len(activity))
	for _, t := range activity {
		days[t.UTC().Format(util.DateFormat)] = true
	}

	day := now.UTC()
	if !days[day.Format(util.DateFormat)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format(util.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
