package dto

// AddCommentDTO 新增评论请求体
type AddCommentDTO struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
