package dto

// PostQueryDTO 列表查询参数
type PostQueryDTO struct {
	Page     int    `form:"page" validate:"omitempty,gte=1"`
	Limit    int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Category string `form:"category" validate:"omitempty,mongodb"`
	Author   string `form:"author" validate:"omitempty,mongodb"`
	Status   string `form:"status" validate:"omitempty,oneof=draft published archived"`
	Search   string `form:"search" validate:"omitempty,max=200"`
}

// SearchQueryDTO 全文检索参数
type SearchQueryDTO struct {
	Keyword string `form:"q" validate:"required,min=1,max=200"`
	Page    int    `form:"page" validate:"omitempty,gte=1"`
	Limit   int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
}
