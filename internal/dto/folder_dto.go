package dto

import "github.com/haierkeys/noteful-service/pkg/timex"

// FolderDTO 文件夹数据传输对象
type FolderDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// FolderCreateRequest 创建文件夹请求参数
type FolderCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// FolderUpdateRequest 修改文件夹请求参数
// Name 为 nil 表示不修改，空字符串会被拒绝
type FolderUpdateRequest struct {
	Name *string `json:"name" binding:"omitnil,min=1"`
}
