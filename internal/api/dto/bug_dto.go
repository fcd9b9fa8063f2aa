package dto

// CreateBugDTO 新建缺陷工单
type CreateBugDTO struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
}

// UpdateBugStatusDTO 更新工单状态
type UpdateBugStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=open in-progress resolved"`
}
