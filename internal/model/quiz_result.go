package model

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

// AnswerOutcome 单题判分结果
type AnswerOutcome struct {
	QuestionID  string `json:"question_id" bson:"question_id"`
	Selected    int    `json:"selected" bson:"selected"`
	Correct     int    `json:"correct" bson:"correct"`
	IsCorrect   bool   `json:"is_correct" bson:"is_correct"`
	Explanation string `json:"explanation" bson:"explanation"`
}

// QuizResult 存储用户的测验结果，创建后不再修改
type QuizResult struct {
	ID          string                            `gorm:"primaryKey;type:varchar(36)" json:"id" bson:"id"`
	UserID      string                            `gorm:"index:idx_quiz_results_user_completed,priority:1;type:varchar(36);not null" json:"user_id" bson:"user_id"`
	Chapter     int                               `gorm:"not null" json:"chapter" bson:"chapter"`
	Score       int                               `gorm:"not null" json:"score" bson:"score"`
	Total       int                               `gorm:"not null" json:"total" bson:"total"`
	Skipped     int                               `gorm:"not null;default:0" json:"skipped" bson:"skipped"`
	Percentage  float64                           `gorm:"not null" json:"percentage" bson:"percentage"`
	Answers     datatypes.JSONSlice[AnswerOutcome] `json:"answers" bson:"answers"`
	CompletedAt time.Time                         `gorm:"index:idx_quiz_results_user_completed,priority:2;not null" json:"completed_at" bson:"completed_at"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

func (r *QuizResult) Passed() bool {
	return r.Percentage >= PassPercentage
}

// Percentage returns 100*score/total rounded half-to-even to one decimal, or 0 for an empty attempt.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.RoundToEven(float64(score)*1000/float64(total)) / 10
}
