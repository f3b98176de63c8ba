package mongostore

import (
	"context"
	"linuxplus_backend/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuizResultStore struct {
	Col *mongo.Collection
}

func NewQuizResultStore(db *mongo.Database) *QuizResultStore {
	return &QuizResultStore{Col: db.Collection(quizResultsCollection)}
}

func (s *QuizResultStore) Create(ctx context.Context, result *model.QuizResult) error {
	_, err := s.Col.InsertOne(ctx, result)
	return err
}

func (s *QuizResultStore) RecentByUser(ctx context.Context, userID string, limit int) ([]model.QuizResult, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := make([]model.QuizResult, 0, limit)
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *QuizResultStore) CompletionTimesSince(ctx context.Context, userID string, since time.Time) ([]time.Time, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetProjection(bson.M{"completed_at": 1})
	cur, err := s.Col.Find(ctx, bson.M{"user_id": userID, "completed_at": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var times []time.Time
	for cur.Next(ctx) {
		var doc struct {
			CompletedAt time.Time `bson:"completed_at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		times = append(times, doc.CompletedAt)
	}
	return times, cur.Err()
}
