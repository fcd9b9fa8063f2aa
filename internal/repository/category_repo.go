package repository

import (
	"Inkstone/internal/model"
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Category, error)
}

type CategoryRepoImpl struct {
	col *mongo.Collection
}

func NewCategoryRepo(db *mongo.Database) CategoryRepo {
	return &CategoryRepoImpl{
		col: db.Collection("categories"),
	}
}

func (s *CategoryRepoImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	var category model.Category
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find category")
	}
	return &category, nil
}

func (s *CategoryRepoImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find categories by ids")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var categories []*model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, errors.Wrap(err, "decode categories")
	}

	return categories, nil
}
