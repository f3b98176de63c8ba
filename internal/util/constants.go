package util

const (
	DateFormat = "2006-01-02"
)

const (
	DefaultQuestionLimit = 10
	MaxQuestionLimit     = 50
	QuizHistoryLimit     = 10
	// StreakLookbackDays bounds the history scanned for the daily streak.
	StreakLookbackDays = 60
)

const ContextUserKey = "user"
