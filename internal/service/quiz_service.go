package service

import (
	"context"
	"fmt"
	"linuxplus_backend/internal/content"
	"linuxplus_backend/internal/model"
	"linuxplus_backend/internal/util"
	"linuxplus_backend/pkg/logger"
	"linuxplus_backend/pkg/monitoring"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type QuizService struct {
	bank     *content.Bank
	results  QuizResultStore
	progress ProgressStore
	now      func() time.Time
}

func NewQuizService(bank *content.Bank, results QuizResultStore, progress ProgressStore) *QuizService {
	return &QuizService{
		bank:     bank,
		results:  results,
		progress: progress,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type AnswerSubmission struct {
	QuestionID     string `json:"question_id" binding:"required"`
	SelectedAnswer int    `json:"selected_answer"`
}

// QuizOutcome is what the caller sees after a submission.
type QuizOutcome struct {
	ID         string                `json:"id"`
	Score      int                   `json:"score"`
	Total      int                   `json:"total"`
	Percentage float64               `json:"percentage"`
	Skipped    int                   `json:"skipped"`
	Results    []model.AnswerOutcome `json:"results"`
}

// Submit scores answers against the chapter's questions, stores the result and
// folds it into the user's progress.
//
// Answers naming a question outside the chapter are not scored but still count
// towards the total, so they lower the percentage.
func (s *QuizService) Submit(ctx context.Context, userID string, chapter int, answers []AnswerSubmission) (*QuizOutcome, error) {
	if userID == "" {
		return nil, util.ErrUnauthenticated
	}

	index := s.bank.QuestionIndex(chapter)
	outcomes := make([]model.AnswerOutcome, 0, len(answers))
	correct, skipped := 0, 0
	for _, a := range answers {
		q, ok := index[a.QuestionID]
		if !ok {
			skipped++
			continue
		}
		isCorrect := a.SelectedAnswer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		outcomes = append(outcomes, model.AnswerOutcome{
			QuestionID:  a.QuestionID,
			Selected:    a.SelectedAnswer,
			Correct:     q.CorrectAnswer,
			IsCorrect:   isCorrect,
			Explanation: q.Explanation,
		})
	}

	total := len(answers)
	now := s.now()
	result := &model.QuizResult{
		ID:          model.GenerateUUID(),
		UserID:      userID,
		Chapter:     chapter,
		Score:       correct,
		Total:       total,
		Skipped:     skipped,
		Percentage:  model.Percentage(correct, total),
		Answers:     outcomes,
		CompletedAt: now,
	}

	if err := s.results.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}

	err := s.progress.RecordQuiz(ctx, userID, model.QuizAttempt{
		Chapter: chapter,
		Correct: correct,
		Total:   total,
		Passed:  result.Passed(),
		At:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}

	if skipped > 0 {
		logger.Log.Warn("quiz submission referenced unknown questions",
			zap.String("user_id", userID),
			zap.Int("chapter", chapter),
			zap.Int("skipped", skipped),
		)
	}
	monitoring.QuizSubmissions.WithLabelValues(strconv.Itoa(chapter), strconv.FormatBool(result.Passed())).Inc()

	return &QuizOutcome{
		ID:         result.ID,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Skipped:    skipped,
		Results:    outcomes,
	}, nil
}
