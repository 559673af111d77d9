// Package domain 定义领域模型和接口
package domain

import "context"

// FolderRepository 文件夹仓储接口
// 记录不存在时 GetByID / Rename 返回 gorm.ErrRecordNotFound
type FolderRepository interface {
	// List 按名称升序返回所有文件夹
	List(ctx context.Context) ([]*Folder, error)

	// GetByID 根据ID获取文件夹
	GetByID(ctx context.Context, id string) (*Folder, error)

	// Create 创建文件夹，ID 为空时自动生成
	Create(ctx context.Context, folder *Folder) (*Folder, error)

	// Rename 修改名称并推进 UpdatedAt
	Rename(ctx context.Context, id, name string) (*Folder, error)

	// Delete 删除文件夹，不存在时不报错
	Delete(ctx context.Context, id string) error

	// ExistIDs 返回 ids 中存在的 ID
	ExistIDs(ctx context.Context, ids []string) ([]string, error)
}

// TagRepository 标签仓储接口
// 记录不存在时 GetByID / Rename 返回 gorm.ErrRecordNotFound
type TagRepository interface {
	// List 按名称升序返回所有标签
	List(ctx context.Context) ([]*Tag, error)

	// GetByID 根据ID获取标签
	GetByID(ctx context.Context, id string) (*Tag, error)

	// Create 创建标签，ID 为空时自动生成
	Create(ctx context.Context, tag *Tag) (*Tag, error)

	// Rename 修改名称并推进 UpdatedAt
	Rename(ctx context.Context, id, name string) (*Tag, error)

	// Delete 删除标签，不存在时不报错
	Delete(ctx context.Context, id string) error

	// ExistIDs 返回 ids 中存在的 ID
	ExistIDs(ctx context.Context, ids []string) ([]string, error)
}

// NoteRepository 笔记仓储接口
// 记录不存在时 GetByID / Update 返回 gorm.ErrRecordNotFound
type NoteRepository interface {
	// List 按 UpdatedAt 降序返回所有笔记
	List(ctx context.Context) ([]*Note, error)

	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id string) (*Note, error)

	// Create 创建笔记及其标签引用，ID 为空时自动生成
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 合并部分更新并推进 UpdatedAt
	Update(ctx context.Context, id string, update *NoteUpdate) (*Note, error)

	// Delete 删除笔记及其标签引用，不存在时不报错
	Delete(ctx context.Context, id string) error

	// UnsetFolder 清除所有引用该文件夹的笔记的 FolderID，返回受影响的笔记数
	UnsetFolder(ctx context.Context, folderID string) (int64, error)

	// PullTag 从所有笔记中移除该标签（只移除这一个），返回受影响的笔记数
	PullTag(ctx context.Context, tagID string) (int64, error)

	// SweepDanglingReferences 清除指向不存在的文件夹或标签的引用
	SweepDanglingReferences(ctx context.Context) (*SweepResult, error)
}
