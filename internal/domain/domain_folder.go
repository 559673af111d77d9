package domain

import "github.com/haierkeys/noteful-service/pkg/timex"

// Folder 文件夹领域模型
// Name 在所有文件夹中唯一
type Folder struct {
	ID        string
	Name      string
	CreatedAt timex.Time
	UpdatedAt timex.Time
}
