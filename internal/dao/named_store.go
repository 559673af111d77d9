package dao

import (
	"context"

	"github.com/haierkeys/noteful-service/pkg/timex"

	"gorm.io/gorm"
)

// namedStore 文件夹与标签共用的存储逻辑
// M 为带 id / name / created_at / updated_at 列且 name 唯一的模型
type namedStore[M any] struct {
	*Dao
}

func (s namedStore[M]) list(ctx context.Context) ([]*M, error) {
	var ms []*M
	err := s.DB(ctx).Order("name ASC").Order("id ASC").Find(&ms).Error
	return ms, err
}

func (s namedStore[M]) getByID(ctx context.Context, id string) (*M, error) {
	m := new(M)
	if err := s.DB(ctx).Where("id = ?", id).First(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s namedStore[M]) create(ctx context.Context, m *M) error {
	return s.DB(ctx).Create(m).Error
}

// rename 更新名称，UpdatedAt 严格晚于旧值
func (s namedStore[M]) rename(ctx context.Context, id, name string) (*M, error) {
	var prev []timex.Time
	if err := s.DB(ctx).Model(new(M)).Where("id = ?", id).Pluck("updated_at", &prev).Error; err != nil {
		return nil, err
	}
	if len(prev) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	result := s.DB(ctx).Model(new(M)).Where("id = ?", id).Updates(map[string]any{
		"name":       name,
		"updated_at": timex.Next(prev[0]),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.getByID(ctx, id)
}

func (s namedStore[M]) delete(ctx context.Context, id string) error {
	return s.DB(ctx).Where("id = ?", id).Delete(new(M)).Error
}

func (s namedStore[M]) existIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []string
	err := s.DB(ctx).Model(new(M)).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}
