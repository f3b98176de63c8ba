package mongostore

import (
	"context"
	"linuxplus_backend/internal/model"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgressStore applies every change as one upserting update document, so
// counters are incremented server side and the chapter set stays a set.
type ProgressStore struct {
	Col *mongo.Collection
}

func NewProgressStore(db *mongo.Database) *ProgressStore {
	return &ProgressStore{Col: db.Collection(progressCollection)}
}

// onInsert returns the default fields of a new record, minus the ones the
// update itself writes (Mongo rejects the same path in two operators).
func onInsert(written ...string) bson.M {
	defaults := bson.M{
		"total_quizzes":       0,
		"total_correct":       0,
		"total_questions":     0,
		"chapters_completed":  bson.A{},
		"current_week":        model.FirstStudyWeek,
		"flashcards_reviewed": 0,
	}
	for _, f := range written {
		delete(defaults, f)
	}
	return defaults
}

func (s *ProgressStore) upsert(ctx context.Context, userID string, update bson.M) error {
	_, err := s.Col.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	return err
}

func (s *ProgressStore) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	var p model.UserProgress
	if err := s.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	if p.ChaptersCompleted == nil {
		p.ChaptersCompleted = []int{}
	}
	sort.Ints(p.ChaptersCompleted)
	return &p, nil
}

func (s *ProgressStore) RecordQuiz(ctx context.Context, userID string, a model.QuizAttempt) error {
	written := []string{"total_quizzes", "total_correct", "total_questions"}
	update := bson.M{
		"$inc": bson.M{
			"total_quizzes":   1,
			"total_correct":   a.Correct,
			"total_questions": a.Total,
		},
		"$set": bson.M{"last_activity": a.At},
	}
	if a.Passed {
		update["$addToSet"] = bson.M{"chapters_completed": a.Chapter}
		written = append(written, "chapters_completed")
	}
	update["$setOnInsert"] = onInsert(written...)
	return s.upsert(ctx, userID, update)
}

func (s *ProgressStore) RecordFlashcardReview(ctx context.Context, userID string, at time.Time) error {
	return s.upsert(ctx, userID, bson.M{
		"$inc":         bson.M{"flashcards_reviewed": 1},
		"$set":         bson.M{"last_activity": at},
		"$setOnInsert": onInsert("flashcards_reviewed"),
	})
}

func (s *ProgressStore) SetCurrentWeek(ctx context.Context, userID string, week int) error {
	return s.upsert(ctx, userID, bson.M{
		"$set":         bson.M{"current_week": week},
		"$setOnInsert": onInsert("current_week"),
	})
}
