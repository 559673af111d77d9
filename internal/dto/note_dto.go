package dto

import "github.com/haierkeys/noteful-service/pkg/timex"

// NoteDTO 笔记数据传输对象
// FolderID 与 Tags 为空时不输出
type NoteDTO struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	FolderID  string     `json:"folderId,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// NoteCreateRequest 创建笔记请求参数
type NoteCreateRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content"`
	FolderID string   `json:"folderId" binding:"omitempty,objectid"`
	Tags     []string `json:"tags" binding:"omitempty,dive,objectid"`
}

// NoteUpdateRequest 修改笔记请求参数，只合并出现的字段
// FolderID 为空字符串或 null 时移出文件夹，Tags 为 null 或 [] 时清空标签
type NoteUpdateRequest struct {
	Title    *string            `json:"title" binding:"omitnil,min=1"`
	Content  *string            `json:"content"`
	FolderID Optional[string]   `json:"folderId" binding:"omitempty,objectid"`
	Tags     Optional[[]string] `json:"tags" binding:"omitempty,dive,objectid"`
}
