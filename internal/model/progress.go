package model

import (
	"time"
)

const (
	// PassPercentage is the score a chapter attempt needs to count as completed.
	PassPercentage = 70.0
	FirstStudyWeek = 1
	LastStudyWeek  = 20
)

// UserProgress 用户累计学习进度，每个用户一条
type UserProgress struct {
	UserID             string    `gorm:"primaryKey;type:varchar(36)" json:"user_id" bson:"user_id"`
	TotalQuizzes       int       `gorm:"not null;default:0" json:"total_quizzes" bson:"total_quizzes"`
	TotalCorrect       int       `gorm:"not null;default:0" json:"total_correct" bson:"total_correct"`
	TotalQuestions     int       `gorm:"not null;default:0" json:"total_questions" bson:"total_questions"`
	ChaptersCompleted  []int     `gorm:"-" json:"chapters_completed" bson:"chapters_completed"`
	CurrentWeek        int       `gorm:"not null;default:1" json:"current_week" bson:"current_week"`
	StreakDays         int       `gorm:"-" json:"streak_days" bson:"-"`
	FlashcardsReviewed int       `gorm:"not null;default:0" json:"flashcards_reviewed" bson:"flashcards_reviewed"`
	LastActivity       time.Time `json:"last_activity" bson:"last_activity"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// NewUserProgress returns the record a freshly registered user starts with.
func NewUserProgress(userID string, now time.Time) *UserProgress {
	return &UserProgress{
		UserID:            userID,
		ChaptersCompleted: []int{},
		CurrentWeek:       FirstStudyWeek,
		LastActivity:      now,
	}
}

// ChapterCompletion marks a chapter passed by a user. The composite key keeps the set idempotent.
type ChapterCompletion struct {
	UserID      string    `gorm:"primaryKey;type:varchar(36)"`
	Chapter     int       `gorm:"primaryKey;autoIncrement:false"`
	CompletedAt time.Time `gorm:"not null"`
}

func (ChapterCompletion) TableName() string {
	return "chapter_completions"
}

// QuizAttempt is the progress delta produced by one scored submission.
type QuizAttempt struct {
	Chapter int
	Correct int
	Total   int
	Passed  bool
	At      time.Time
}
