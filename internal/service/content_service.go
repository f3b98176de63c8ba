package service

import (
	"fmt"
	"linuxplus_backend/internal/content"
	"linuxplus_backend/internal/model"
	"linuxplus_backend/internal/util"
	"math/rand/v2"
)

// ContentService serves the read-only study material.
type ContentService struct {
	bank *content.Bank
}

func NewContentService(bank *content.Bank) *ContentService {
	return &ContentService{bank: bank}
}

func (s *ContentService) Chapters() []model.Chapter {
	return s.bank.Chapters()
}

// Questions returns up to limit questions of a chapter in random order.
func (s *ContentService) Questions(chapter, limit int) ([]model.Question, error) {
	if !s.bank.HasChapter(chapter) {
		return nil, fmt.Errorf("%w: %d", util.ErrInvalidChapter, chapter)
	}
	limit = util.Clamp(limit, 1, util.MaxQuestionLimit)

	qs := s.bank.ChapterQuestions(chapter)
	rand.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
	if len(qs) > limit {
		qs = qs[:limit]
	}
	return qs, nil
}

func (s *ContentService) Flashcards() []model.Flashcard {
	return s.bank.Flashcards()
}

func (s *ContentService) ChapterFlashcards(chapter int) ([]model.Flashcard, error) {
	if !s.bank.HasChapter(chapter) {
		return nil, fmt.Errorf("%w: %d", util.ErrInvalidChapter, chapter)
	}
	return s.bank.ChapterFlashcards(chapter), nil
}

func (s *ContentService) StudyPlan() []model.StudyPlanWeek {
	return s.bank.StudyPlan()
}
