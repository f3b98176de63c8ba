package service

import (
	"context"
	"errors"
	"linuxplus_backend/internal/model"
	"linuxplus_backend/internal/repository"
	"linuxplus_backend/internal/util"
	"sort"
	"sync"
	"time"
)

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]*model.User
	created []*model.UserProgress
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]*model.User)}
}

func (f *fakeUsers) CreateWithProgress(_ context.Context, user *model.User, progress *model.UserProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == user.Email {
			return util.ErrEmailRegistered
		}
	}
	cp := *user
	f.byID[user.ID] = &cp
	f.created = append(f.created, progress)
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) UpdateLanguage(_ context.Context, id, language string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Language = language
	return nil
}

type fakeProgress struct {
	mu      sync.Mutex
	records map[string]*model.UserProgress
	err     error
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{records: make(map[string]*model.UserProgress)}
}

func (f *fakeProgress) ensure(userID string, at time.Time) *model.UserProgress {
	p, ok := f.records[userID]
	if !ok {
		p = model.NewUserProgress(userID, at)
		f.records[userID] = p
	}
	return p
}

func (f *fakeProgress) Get(_ context.Context, userID string) (*model.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.records[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	cp.ChaptersCompleted = append([]int{}, p.ChaptersCompleted...)
	sort.Ints(cp.ChaptersCompleted)
	return &cp, nil
}

func (f *fakeProgress) RecordQuiz(_ context.Context, userID string, a model.QuizAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p := f.ensure(userID, a.At)
	p.TotalQuizzes++
	p.TotalCorrect += a.Correct
	p.TotalQuestions += a.Total
	p.LastActivity = a.At
	if a.Passed {
		for _, ch := range p.ChaptersCompleted {
			if ch == a.Chapter {
				return nil
			}
		}
		p.ChaptersCompleted = append(p.ChaptersCompleted, a.Chapter)
	}
	return nil
}

func (f *fakeProgress) RecordFlashcardReview(_ context.Context, userID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.ensure(userID, at)
	p.FlashcardsReviewed++
	p.LastActivity = at
	return nil
}

func (f *fakeProgress) SetCurrentWeek(_ context.Context, userID string, week int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensure(userID, time.Now()).CurrentWeek = week
	return nil
}

type fakeResults struct {
	mu      sync.Mutex
	results []model.QuizResult
	err     error
}

func (f *fakeResults) Create(_ context.Context, r *model.QuizResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.results = append(f.results, *r)
	return nil
}

func (f *fakeResults) RecentByUser(_ context.Context, userID string, limit int) ([]model.QuizResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.QuizResult, 0)
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeResults) CompletionTimesSince(_ context.Context, userID string, since time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var times []time.Time
	for _, r := range f.results {
		if r.UserID == userID && !r.CompletedAt.Before(since) {
			times = append(times, r.CompletedAt)
		}
	}
	return times, nil
}

var errStoreDown = errors.New("store down")
