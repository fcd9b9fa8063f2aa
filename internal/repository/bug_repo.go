package repository

import (
	"Inkstone/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BugRepo interface {
	Insert(ctx context.Context, bug *model.Bug) error
	FindAll(ctx context.Context) ([]*model.Bug, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Bug, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BugRepoImpl struct {
	col *mongo.Collection
}

func NewBugRepo(db *mongo.Database) BugRepo {
	return &BugRepoImpl{
		col: db.Collection("bugs"),
	}
}

func (s *BugRepoImpl) Insert(ctx context.Context, bug *model.Bug) error {
	result, err := s.col.InsertOne(ctx, bug)
	if err != nil {
		return errors.Wrap(err, "insert bug")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		bug.ID = oid
	}
	return nil
}

func (s *BugRepoImpl) FindAll(ctx context.Context) ([]*model.Bug, error) {
	cursor, err := s.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find bugs")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var bugs []*model.Bug
	if err := cursor.All(ctx, &bugs); err != nil {
		return nil, errors.Wrap(err, "decode bugs")
	}

	return bugs, nil
}

func (s *BugRepoImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Bug, error) {
	var bug model.Bug
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&bug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "update bug status")
	}
	return &bug, nil
}

func (s *BugRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete bug")
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
