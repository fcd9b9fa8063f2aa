package repository

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostFilter 帖子列表的查询条件
type PostFilter struct {
	Category        *primitive.ObjectID
	Author          *primitive.ObjectID
	Status          string
	Search          string
	PublishedBefore *time.Time
	Skip            int64
	Limit           int64
}

type PostRepo interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Post, error)
	Find(ctx context.Context, filter *PostFilter) ([]*model.Post, error)
	Count(ctx context.Context, filter *PostFilter) (int64, error)
	Replace(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *model.Comment) (*model.Post, error)
	TopViewed(ctx context.Context, limit int64) ([]*model.Post, error)
}

type PostRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &PostRepoImpl{
		col: db.Collection("posts"),
	}
}

// EnsureIndexes 建立 slug 唯一索引、常用过滤索引与全文索引
func (s *PostRepoImpl) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "published_at", Value: -1}}},
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "content", Value: "text"},
			},
		},
	})
	return errors.Wrap(err, "create post indexes")
}

func (s *PostRepoImpl) Insert(ctx context.Context, post *model.Post) error {
	result, err := s.col.InsertOne(ctx, post)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "insert post")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

func (s *PostRepoImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find post")
	}
	return &post, nil
}

// FindByIDs 批量加载帖子，用于回填检索结果
func (s *PostRepoImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find posts by ids")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode posts")
	}

	return posts, nil
}

func (s *PostRepoImpl) Find(ctx context.Context, filter *PostFilter) ([]*model.Post, error) {
	findOptions := options.Find().
		SetSort(bson.D{
			{Key: "published_at", Value: -1},
			{Key: "created_at", Value: -1},
		}).
		SetSkip(filter.Skip).
		SetLimit(filter.Limit)

	cursor, err := s.col.Find(ctx, buildPostQuery(filter), findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode posts")
	}

	return posts, nil
}

func (s *PostRepoImpl) Count(ctx context.Context, filter *PostFilter) (int64, error) {
	count, err := s.col.CountDocuments(ctx, buildPostQuery(filter))
	return count, errors.Wrap(err, "count posts")
}

func (s *PostRepoImpl) Replace(ctx context.Context, post *model.Post) error {
	result, err := s.col.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "replace post")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除帖子，内嵌的点赞与评论随文档一并移除
func (s *PostRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete post")
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews 原子自增浏览数并返回更新后的文档
func (s *PostRepoImpl) IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
	)
}

// AddLike 条件推入点赞记录；该用户已点赞时不命中，返回 ErrNotMatched
func (s *PostRepoImpl) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{
			"_id":        postID,
			"likes.user": bson.M{"$ne": userID},
		},
		bson.M{
			"$push": bson.M{"likes": model.Like{User: userID, CreatedAt: time.Now()}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
}

// RemoveLike 移除该用户的点赞记录，不存在时等同无操作
func (s *PostRepoImpl) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$pull": bson.M{"likes": bson.M{"user": userID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
}

// AddComment 仅在 allow_comments 为真时追加评论，否则返回 ErrNotMatched
func (s *PostRepoImpl) AddComment(ctx context.Context, postID primitive.ObjectID, comment *model.Comment) (*model.Post, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{
			"_id":            postID,
			"allow_comments": true,
		},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
}

// TopViewed 浏览数最高的已发布帖子
func (s *PostRepoImpl) TopViewed(ctx context.Context, limit int64) ([]*model.Post, error) {
	now := time.Now()
	filter := &PostFilter{
		Status:          consts.PostStatusPublished,
		PublishedBefore: &now,
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "views", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, buildPostQuery(filter), findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find top viewed posts")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode top viewed posts")
	}

	return posts, nil
}

func (s *PostRepoImpl) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotMatched
		}
		return nil, errors.Wrap(err, "update post")
	}
	return &post, nil
}

func buildPostQuery(filter *PostFilter) bson.M {
	query := bson.M{}

	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	if filter.Author != nil {
		query["author"] = *filter.Author
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PublishedBefore != nil {
		query["published_at"] = bson.M{"$lte": *filter.PublishedBefore}
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	return query
}
