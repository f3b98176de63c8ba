package content

import (
	"strings"
	"testing"
)

func TestLoadEmbeddedBank(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := len(b.Chapters()); got != 5 {
		t.Fatalf("chapters: got %d, want 5", got)
	}
	if got := b.QuestionCount(); got < 50 {
		t.Fatalf("questions: got %d, want at least 50", got)
	}
	if got := len(b.Flashcards()); got < 30 {
		t.Fatalf("flashcards: got %d, want at least 30", got)
	}
	if got := len(b.StudyPlan()); got != 20 {
		t.Fatalf("study plan weeks: got %d, want 20", got)
	}

	for _, ch := range b.Chapters() {
		if ch.TitleDE == "" || ch.DescriptionDE == "" {
			t.Errorf("chapter %d: missing German title or description", ch.ID)
		}
		if ch.Questions == 0 {
			t.Errorf("chapter %d: no questions", ch.ID)
		}
		if len(b.ChapterFlashcards(ch.ID)) == 0 {
			t.Errorf("chapter %d: no flashcards", ch.ID)
		}
	}
}

func TestQuestionIndexIsChapterScoped(t *testing.T) {
	b := MustLoad()

	idx := b.QuestionIndex(1)
	q1, ok := idx["q1"]
	if !ok {
		t.Fatalf("q1 missing from chapter 1 index")
	}
	if q1.CorrectAnswer != 0 {
		t.Fatalf("q1 correct answer: got %d, want 0", q1.CorrectAnswer)
	}
	if _, ok := idx["q11"]; ok {
		t.Fatalf("chapter 2 question q11 leaked into chapter 1 index")
	}
}

func TestHasChapter(t *testing.T) {
	b := MustLoad()

	for id := 1; id <= 5; id++ {
		if !b.HasChapter(id) {
			t.Errorf("HasChapter(%d) = false", id)
		}
	}
	for _, id := range []int{0, 6, -1} {
		if b.HasChapter(id) {
			t.Errorf("HasChapter(%d) = true", id)
		}
	}
}

func TestChapterQuestionsReturnsCopy(t *testing.T) {
	b := MustLoad()

	qs := b.ChapterQuestions(1)
	qs[0].ID = "mutated"
	if b.ChapterQuestions(1)[0].ID == "mutated" {
		t.Fatalf("ChapterQuestions exposed the bank's backing slice")
	}
}

func TestParseRejectsInvalidBanks(t *testing.T) {
	cases := map[string]string{
		"unknown chapter": `
chapters: [{id: 1, title: A}]
questions:
- {id: q1, chapter: 2, question: x, options: [a, b, c, d], correct_answer: 0}
`,
		"three options": `
chapters: [{id: 1, title: A}]
questions:
- {id: q1, chapter: 1, question: x, options: [a, b, c], correct_answer: 0}
`,
		"answer out of range": `
chapters: [{id: 1, title: A}]
questions:
- {id: q1, chapter: 1, question: x, options: [a, b, c, d], correct_answer: 4}
`,
		"duplicate id": `
chapters: [{id: 1, title: A}]
questions:
- {id: q1, chapter: 1, question: x, options: [a, b, c, d], correct_answer: 0}
- {id: q1, chapter: 1, question: y, options: [a, b, c, d], correct_answer: 1}
`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(strings.TrimSpace(doc))); err == nil {
				t.Fatalf("Parse() accepted an invalid bank")
			}
		})
	}
}
