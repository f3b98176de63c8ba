package mongostore

import (
	"context"
	"linuxplus_backend/internal/model"
	"linuxplus_backend/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserStore struct {
	Col         *mongo.Collection
	ProgressCol *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{
		Col:         db.Collection(usersCollection),
		ProgressCol: db.Collection(progressCollection),
	}
}

// CreateWithProgress inserts the user, then upserts its progress record. The
// user is removed again if the progress write fails.
func (s *UserStore) CreateWithProgress(ctx context.Context, user *model.User, progress *model.UserProgress) error {
	if _, err := s.Col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return util.ErrEmailRegistered
		}
		return err
	}

	progress.UserID = user.ID
	_, err := s.ProgressCol.UpdateOne(ctx,
		bson.M{"user_id": user.ID},
		bson.M{"$setOnInsert": progress},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		_, _ = s.Col.DeleteOne(ctx, bson.M{"id": user.ID})
		return err
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.Col.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.Col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) UpdateLanguage(ctx context.Context, id, language string) error {
	res, err := s.Col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"language": language}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}
