package service

import (
	"context"
	"errors"
	"linuxplus_backend/internal/content"
	"linuxplus_backend/internal/util"
	"testing"
	"time"
)

func newQuizFixture(t *testing.T) (*QuizService, *fakeResults, *fakeProgress) {
	t.Helper()
	results := &fakeResults{}
	progress := newFakeProgress()
	s := NewQuizService(content.MustLoad(), results, progress)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s, results, progress
}

func TestSubmitSingleCorrectAnswer(t *testing.T) {
	s, results, _ := newQuizFixture(t)

	out, err := s.Submit(context.Background(), "u1", 1, []AnswerSubmission{{QuestionID: "q1", SelectedAnswer: 0}})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if out.Score != 1 || out.Total != 1 || out.Percentage != 100.0 {
		t.Fatalf("got score=%d total=%d pct=%v, want 1/1/100.0", out.Score, out.Total, out.Percentage)
	}
	if len(out.Results) != 1 || !out.Results[0].IsCorrect || out.Results[0].Explanation == "" {
		t.Fatalf("per-question outcome: %+v", out.Results)
	}
	if len(results.results) != 1 || results.results[0].ID != out.ID {
		t.Fatalf("result not stored")
	}
}

func TestSubmitSingleWrongAnswer(t *testing.T) {
	s, _, progress := newQuizFixture(t)

	out, err := s.Submit(context.Background(), "u1", 1, []AnswerSubmission{{QuestionID: "q1", SelectedAnswer: 2}})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if out.Score != 0 || out.Total != 1 || out.Percentage != 0.0 {
		t.Fatalf("got score=%d total=%d pct=%v, want 0/1/0.0", out.Score, out.Total, out.Percentage)
	}
	if out.Results[0].Correct != 0 || out.Results[0].Selected != 2 {
		t.Fatalf("outcome: %+v", out.Results[0])
	}

	p, _ := progress.Get(context.Background(), "u1")
	if len(p.ChaptersCompleted) != 0 {
		t.Fatalf("failed attempt completed a chapter: %v", p.ChaptersCompleted)
	}
}

func TestSubmitEmptyAnswers(t *testing.T) {
	s, _, _ := newQuizFixture(t)

	out, err := s.Submit(context.Background(), "u1", 1, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if out.Total != 0 || out.Percentage != 0 {
		t.Fatalf("got total=%d pct=%v, want 0/0", out.Total, out.Percentage)
	}
}

func TestSubmitScoresEveryRecognizedAnswer(t *testing.T) {
	s, _, _ := newQuizFixture(t)
	bank := content.MustLoad()

	qs := bank.ChapterQuestions(2)
	answers := make([]AnswerSubmission, 0, 3)
	for i := 0; i < 3; i++ {
		sel := qs[i].CorrectAnswer
		if i == 2 {
			sel = (sel + 1) % content.OptionsPerQuestion
		}
		answers = append(answers, AnswerSubmission{QuestionID: qs[i].ID, SelectedAnswer: sel})
	}

	out, err := s.Submit(context.Background(), "u1", 2, answers)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if out.Score != 2 || out.Total != 3 || out.Percentage != 66.7 {
		t.Fatalf("got %d/%d %.1f, want 2/3 66.7", out.Score, out.Total, out.Percentage)
	}
}

func TestSubmitSkipsUnknownQuestions(t *testing.T) {
	s, _, _ := newQuizFixture(t)

	// q11 belongs to chapter 2
	out, err := s.Submit(context.Background(), "u1", 1, []AnswerSubmission{
		{QuestionID: "q1", SelectedAnswer: 0},
		{QuestionID: "q11", SelectedAnswer: 0},
		{QuestionID: "nope", SelectedAnswer: 1},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if out.Score != 1 || out.Total != 3 || out.Skipped != 2 || len(out.Results) != 1 {
		t.Fatalf("got score=%d total=%d skipped=%d results=%d", out.Score, out.Total, out.Skipped, len(out.Results))
	}
	if out.Percentage != 33.3 {
		t.Fatalf("percentage: got %v, want 33.3", out.Percentage)
	}
}

func TestSubmitPassingTwiceCompletesChapterOnce(t *testing.T) {
	s, _, progress := newQuizFixture(t)
	answers := []AnswerSubmission{{QuestionID: "q1", SelectedAnswer: 0}}

	for i := 0; i < 2; i++ {
		if _, err := s.Submit(context.Background(), "u1", 1, answers); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	p, _ := progress.Get(context.Background(), "u1")
	if len(p.ChaptersCompleted) != 1 || p.ChaptersCompleted[0] != 1 {
		t.Fatalf("chapters_completed: got %v, want [1]", p.ChaptersCompleted)
	}
	if p.TotalQuizzes != 2 || p.TotalCorrect != 2 || p.TotalQuestions != 2 {
		t.Fatalf("counters: %+v", p)
	}
}

func TestSubmitRequiresUser(t *testing.T) {
	s, results, _ := newQuizFixture(t)

	_, err := s.Submit(context.Background(), "", 1, []AnswerSubmission{{QuestionID: "q1"}})
	if !errors.Is(err, util.ErrUnauthenticated) {
		t.Fatalf("error = %v, want ErrUnauthenticated", err)
	}
	if len(results.results) != 0 {
		t.Fatalf("unauthenticated submission was stored")
	}
}

func TestSubmitPropagatesStoreErrors(t *testing.T) {
	s, results, _ := newQuizFixture(t)
	results.err = errStoreDown

	_, err := s.Submit(context.Background(), "u1", 1, []AnswerSubmission{{QuestionID: "q1"}})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("error = %v, want wrapped store error", err)
	}
}
