package dto

// CreatePostDTO 新建帖子的请求体，title/content/category 必填
type CreatePostDTO struct {
	Title         string            `json:"title" validate:"required,min=5,max=200"`
	Content       string            `json:"content" validate:"required,min=10"`
	Excerpt       string            `json:"excerpt" validate:"omitempty,max=500"`
	Category      string            `json:"category" validate:"required,mongodb"`
	Tags          []string          `json:"tags" validate:"omitempty,dive,min=1,max=30"`
	FeaturedImage *FeaturedImageDTO `json:"featuredImage" validate:"omitempty"`
	Status        string            `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsSticky      *bool             `json:"isSticky"`
	AllowComments *bool             `json:"allowComments"`
}
