package model

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/util"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 博客帖子文档，点赞与评论作为内嵌子集合随帖子一同存取
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Content       string             `bson:"content" json:"content"`
	Excerpt       string             `bson:"excerpt,omitempty" json:"excerpt"`
	Author        primitive.ObjectID `bson:"author" json:"author"`
	Category      primitive.ObjectID `bson:"category" json:"category"`
	Tags          []string           `bson:"tags,omitempty" json:"tags"`
	FeaturedImage *FeaturedImage     `bson:"featured_image,omitempty" json:"featuredImage,omitempty"`
	Status        string             `bson:"status" json:"status"`
	PublishedAt   *time.Time         `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	Views         int64              `bson:"views" json:"views"`
	Likes         []Like             `bson:"likes,omitempty" json:"likes"`
	Comments      []Comment          `bson:"comments,omitempty" json:"comments"`
	Meta          *PostMeta          `bson:"meta,omitempty" json:"meta,omitempty"`
	ReadingTime   int                `bson:"reading_time" json:"readingTime"`
	IsSticky      bool               `bson:"is_sticky" json:"isSticky"`
	AllowComments bool               `bson:"allow_comments" json:"allowComments"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

type FeaturedImage struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt,omitempty" json:"alt"`
}

type PostMeta struct {
	Title       string   `bson:"title,omitempty" json:"title"`
	Description string   `bson:"description,omitempty" json:"description"`
	Keywords    []string `bson:"keywords,omitempty" json:"keywords"`
}

// Like 单个用户对帖子的点赞记录，同一用户至多一条
type Like struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Comment 内嵌评论，新评论默认未审核
type Comment struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Content    string             `bson:"content" json:"content"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	IsApproved bool               `bson:"is_approved" json:"isApproved"`
}

// PrepareSave 持久化前重算派生字段。prev 为库中旧文档，新建时传 nil。
func (p *Post) PrepareSave(prev *Post) {
	now := time.Now()

	titleChanged := prev == nil || prev.Title != p.Title
	contentChanged := prev == nil || prev.Content != p.Content
	statusChanged := prev == nil || prev.Status != p.Status

	if titleChanged {
		p.Slug = util.Slugify(p.Title)
	}

	if contentChanged && p.Excerpt == "" {
		p.Excerpt = util.Excerpt(p.Content, consts.ExcerptLength)
	}

	if contentChanged {
		p.ReadingTime = util.ReadingTime(p.Content, consts.WordsPerMinute)
	}

	// published_at 只在首次发布时落值，之后的状态变更不再触碰
	if statusChanged && p.Status == consts.PostStatusPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}

	if prev == nil {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// LikeCount 点赞数，始终由内嵌集合推导
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// CommentCount 只统计已审核通过的评论
func (p *Post) CommentCount() int {
	count := 0
	for _, c := range p.Comments {
		if c.IsApproved {
			count++
		}
	}
	return count
}

// LikedBy 判断用户是否已点赞
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, like := range p.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}
