// Package content holds the static study material: chapters, quiz questions,
// flashcards and the 20-week study plan. The bank is parsed from an embedded
// YAML file once and treated as read-only afterwards.
package content

import (
	_ "embed"
	"fmt"
	"linuxplus_backend/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

const OptionsPerQuestion = 4

type Bank struct {
	chapters   []model.Chapter
	questions  []model.Question
	flashcards []model.Flashcard
	studyPlan  []model.StudyPlanWeek

	byChapter map[int][]model.Question
}

type bankFile struct {
	Chapters   []model.Chapter       `yaml:"chapters"`
	Questions  []model.Question      `yaml:"questions"`
	Flashcards []model.Flashcard     `yaml:"flashcards"`
	StudyPlan  []model.StudyPlanWeek `yaml:"study_plan"`
}

// Load parses the embedded bank.
func Load() (*Bank, error) {
	return Parse(bankYAML)
}

// Parse builds a Bank from YAML and validates it.
func Parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	b := &Bank{
		chapters:   f.Chapters,
		questions:  f.Questions,
		flashcards: f.Flashcards,
		studyPlan:  f.StudyPlan,
		byChapter:  make(map[int][]model.Question),
	}

	known := make(map[int]bool, len(f.Chapters))
	for _, ch := range f.Chapters {
		known[ch.ID] = true
	}

	seen := make(map[string]bool, len(f.Questions))
	for _, q := range f.Questions {
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if !known[q.Chapter] {
			return nil, fmt.Errorf("question %s: unknown chapter %d", q.ID, q.Chapter)
		}
		if len(q.Options) != OptionsPerQuestion {
			return nil, fmt.Errorf("question %s: want %d options, got %d", q.ID, OptionsPerQuestion, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("question %s: correct answer %d out of range", q.ID, q.CorrectAnswer)
		}
		b.byChapter[q.Chapter] = append(b.byChapter[q.Chapter], q)
	}

	for i := range b.chapters {
		b.chapters[i].Questions = len(b.byChapter[b.chapters[i].ID])
	}

	return b, nil
}

// MustLoad is Load for process start-up.
func MustLoad() *Bank {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Bank) Chapters() []model.Chapter {
	return append([]model.Chapter(nil), b.chapters...)
}

func (b *Bank) HasChapter(id int) bool {
	for _, ch := range b.chapters {
		if ch.ID == id {
			return true
		}
	}
	return false
}

// ChapterQuestions returns a copy of the chapter's questions in bank order.
func (b *Bank) ChapterQuestions(chapter int) []model.Question {
	return append([]model.Question{}, b.byChapter[chapter]...)
}

// QuestionIndex maps question id to question for one chapter.
func (b *Bank) QuestionIndex(chapter int) map[string]model.Question {
	qs := b.byChapter[chapter]
	idx := make(map[string]model.Question, len(qs))
	for _, q := range qs {
		idx[q.ID] = q
	}
	return idx
}

func (b *Bank) QuestionCount() int {
	return len(b.questions)
}

func (b *Bank) Flashcards() []model.Flashcard {
	return append([]model.Flashcard(nil), b.flashcards...)
}

func (b *Bank) ChapterFlashcards(chapter int) []model.Flashcard {
	cards := make([]model.Flashcard, 0)
	for _, f := range b.flashcards {
		if f.Chapter == chapter {
			cards = append(cards, f)
		}
	}
	return cards
}

func (b *Bank) StudyPlan() []model.StudyPlanWeek {
	return append([]model.StudyPlanWeek(nil), b.studyPlan...)
}
