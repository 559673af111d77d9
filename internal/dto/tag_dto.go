package dto

import "github.com/haierkeys/noteful-service/pkg/timex"

// TagDTO 标签数据传输对象
type TagDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// TagCreateRequest 创建标签请求参数
type TagCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagUpdateRequest 修改标签请求参数
type TagUpdateRequest struct {
	Name *string `json:"name" binding:"omitnil,min=1"`
}
