package domain

import "github.com/haierkeys/noteful-service/pkg/timex"

// Note 笔记领域模型
// FolderID 与 Tags 是弱引用，被引用的文件夹或标签删除时由级联清理
type Note struct {
	ID      string
	Title   string
	Content string
	// FolderID 为空表示不属于任何文件夹
	FolderID string
	// Tags 标签 ID，保持写入顺序且不重复
	Tags      []string
	CreatedAt timex.Time
	UpdatedAt timex.Time
}

// HasFolder 是否属于某个文件夹
func (n *Note) HasFolder() bool {
	return n.FolderID != ""
}

// NoteUpdate 笔记的部分更新，nil 表示保持不变
type NoteUpdate struct {
	Title   *string
	Content *string
	// FolderID 指向空字符串表示移出文件夹
	FolderID *string
	// Tags 指向空切片表示清空标签
	Tags *[]string
}

// IsEmpty 是否没有任何需要更新的字段
func (u *NoteUpdate) IsEmpty() bool {
	return u == nil || (u.Title == nil && u.Content == nil && u.FolderID == nil && u.Tags == nil)
}

// Apply 将更新合并到笔记上（只修改提供的字段）
func (u *NoteUpdate) Apply(n *Note) {
	if u == nil {
		return
	}
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.FolderID != nil {
		n.FolderID = *u.FolderID
	}
	if u.Tags != nil {
		n.Tags = append([]string{}, (*u.Tags)...)
	}
}

// SweepResult 悬空引用清理结果
type SweepResult struct {
	// FolderRefs 清除的文件夹引用数量
	FolderRefs int64
	// TagRefs 移除的标签引用数量
	TagRefs int64
}
