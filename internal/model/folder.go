package model

import "github.com/haierkeys/noteful-service/pkg/timex"

// Folder mapped from table <folder>
type Folder struct {
	ID        string     `gorm:"column:id;primaryKey;type:varchar(24)" json:"id"`
	Name      string     `gorm:"column:name;type:varchar(191);not null;uniqueIndex:idx_folder_name" json:"name"`
	CreatedAt timex.Time `gorm:"column:created_at;not null;precision:3;autoCreateTime:false" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;not null;precision:3;autoUpdateTime:false" json:"updatedAt"`
}
