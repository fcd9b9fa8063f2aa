package dto

import "time"

// AuthorDTO 用户的公开投影
type AuthorDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// CategoryDTO 分类的公开投影
type CategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CommentDTO 评论及其作者投影
type CommentDTO struct {
	ID         string     `json:"id"`
	User       *AuthorDTO `json:"user,omitempty"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	IsApproved bool       `json:"isApproved"`
}

// FeaturedImageDTO 头图
type FeaturedImageDTO struct {
	URL string `json:"url" validate:"omitempty,url"`
	Alt string `json:"alt" validate:"omitempty,max=200"`
}

// PostDTO 列表项，正文以摘要形式返回
type PostDTO struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Excerpt       string            `json:"excerpt"`
	Author        *AuthorDTO        `json:"author,omitempty"`
	Category      *CategoryDTO      `json:"category,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	FeaturedImage *FeaturedImageDTO `json:"featuredImage,omitempty"`
	Status        string            `json:"status"`
	PublishedAt   *time.Time        `json:"publishedAt,omitempty"`
	Views         int64             `json:"views"`
	LikeCount     int               `json:"likeCount"`
	CommentCount  int               `json:"commentCount"`
	ReadingTime   int               `json:"readingTime"`
	IsSticky      bool              `json:"isSticky"`
	AllowComments bool              `json:"allowComments"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// PostDetailDTO 详情，含正文与评论
type PostDetailDTO struct {
	PostDTO
	Content  string        `json:"content"`
	Comments []*CommentDTO `json:"comments"`
}

// PostListDTO 列表响应
type PostListDTO struct {
	Posts      []*PostDTO     `json:"posts"`
	Pagination *PaginationDTO `json:"pagination"`
}

// LikeResultDTO 点赞开关结果
type LikeResultDTO struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
