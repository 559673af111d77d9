package domain

import "github.com/haierkeys/noteful-service/pkg/timex"

// Tag 标签领域模型
// Name 在所有标签中唯一
type Tag struct {
	ID        string
	Name      string
	CreatedAt timex.Time
	UpdatedAt timex.Time
}
