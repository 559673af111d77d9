package model

import "github.com/haierkeys/noteful-service/pkg/timex"

// Note mapped from table <note>
type Note struct {
	ID        string     `gorm:"column:id;primaryKey;type:varchar(24)" json:"id"`
	Title     string     `gorm:"column:title;type:text;not null" json:"title"`
	Content   string     `gorm:"column:content;type:text" json:"content"`
	FolderID  *string    `gorm:"column:folder_id;type:varchar(24);index:idx_note_folder_id" json:"folderId"`
	CreatedAt timex.Time `gorm:"column:created_at;not null;precision:3;autoCreateTime:false" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;not null;precision:3;autoUpdateTime:false;index:idx_note_updated_at" json:"updatedAt"`
}

// NoteTag mapped from table <note_tag>
// 笔记与标签的多对多引用，Position 保存标签在笔记中的顺序
type NoteTag struct {
	NoteID   string `gorm:"column:note_id;primaryKey;type:varchar(24)" json:"noteId"`
	TagID    string `gorm:"column:tag_id;primaryKey;type:varchar(24);index:idx_note_tag_tag_id" json:"tagId"`
	Position int    `gorm:"column:position;not null;default:0" json:"position"`
}
