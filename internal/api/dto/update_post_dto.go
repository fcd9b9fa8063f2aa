package dto

// UpdatePostDTO 更新帖子的请求体，所有字段可选，只覆盖出现的字段
type UpdatePostDTO struct {
	Title         *string           `json:"title" validate:"omitempty,min=5,max=200"`
	Content       *string           `json:"content" validate:"omitempty,min=10"`
	Excerpt       *string           `json:"excerpt" validate:"omitempty,max=500"`
	Category      *string           `json:"category" validate:"omitempty,mongodb"`
	Tags          []string          `json:"tags" validate:"omitempty,dive,min=1,max=30"`
	FeaturedImage *FeaturedImageDTO `json:"featuredImage" validate:"omitempty"`
	Status        *string           `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsSticky      *bool             `json:"isSticky"`
	AllowComments *bool             `json:"allowComments"`
}
