package dao

import (
	"context"

	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/model"
	"github.com/haierkeys/noteful-service/pkg/timex"
	"github.com/haierkeys/noteful-service/pkg/util"

	"gorm.io/gorm"
)

type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建笔记仓储
// 标签引用保存在 note_tag 表中，Position 记录写入顺序
func NewNoteRepository(d *Dao) domain.NoteRepository {
	return &noteRepository{dao: d}
}

var _ domain.NoteRepository = (*noteRepository)(nil)

func (r *noteRepository) List(ctx context.Context) ([]*domain.Note, error) {
	var ms []*model.Note
	if err := r.dao.DB(ctx).Order("updated_at DESC").Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return []*domain.Note{}, nil
	}

	// 列表返回全部笔记，所以一次取出全部引用
	var refs []*model.NoteTag
	if err := r.dao.DB(ctx).Order("note_id ASC").Order("position ASC").Find(&refs).Error; err != nil {
		return nil, err
	}
	tags := make(map[string][]string, len(ms))
	for _, ref := range refs {
		tags[ref.NoteID] = append(tags[ref.NoteID], ref.TagID)
	}

	res := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		res = append(res, r.modelToDomain(m, tags[m.ID]))
	}
	return res, nil
}

func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	return r.get(r.dao.DB(ctx), id)
}

func (r *noteRepository) get(db *gorm.DB, id string) (*domain.Note, error) {
	m := &model.Note{}
	if err := db.Where("id = ?", id).First(m).Error; err != nil {
		return nil, err
	}
	tags, err := r.tagIDs(db, id)
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(m, tags), nil
}

func (r *noteRepository) tagIDs(db *gorm.DB, noteID string) ([]string, error) {
	var ids []string
	err := db.Model(&model.NoteTag{}).
		Where("note_id = ?", noteID).
		Order("position ASC").
		Pluck("tag_id", &ids).Error
	return ids, err
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.domainToModel(note)
	if m.ID == "" {
		m.ID = util.NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = timex.Now()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	tags := util.ArrayUnique(note.Tags)

	err := r.dao.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return r.replaceTags(tx, m.ID, tags)
	})
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(m, tags), nil
}

// replaceTags 用 tags 覆盖笔记的全部标签引用
func (r *noteRepository) replaceTags(tx *gorm.DB, noteID string, tags []string) error {
	if err := tx.Where("note_id = ?", noteID).Delete(&model.NoteTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	refs := make([]*model.NoteTag, 0, len(tags))
	for i, tagID := range tags {
		refs = append(refs, &model.NoteTag{NoteID: noteID, TagID: tagID, Position: i})
	}
	return tx.Create(&refs).Error
}

func (r *noteRepository) Update(ctx context.Context, id string, update *domain.NoteUpdate) (*domain.Note, error) {
	var note *domain.Note
	err := r.dao.DB(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.get(tx, id)
		if err != nil {
			return err
		}
		update.Apply(current)
		current.Tags = util.ArrayUnique(current.Tags)
		current.UpdatedAt = timex.Next(current.UpdatedAt)

		m := r.domainToModel(current)
		result := tx.Model(&model.Note{}).Where("id = ?", id).Updates(map[string]any{
			"title":      m.Title,
			"content":    m.Content,
			"folder_id":  m.FolderID,
			"updated_at": m.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if update != nil && update.Tags != nil {
			if err := r.replaceTags(tx, id, current.Tags); err != nil {
				return err
			}
		}
		note = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	return r.dao.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&model.NoteTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Note{}).Error
	})
}

func (r *noteRepository) UnsetFolder(ctx context.Context, folderID string) (int64, error) {
	var affected int64
	err := r.dao.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var noteIDs []string
		if err := tx.Model(&model.Note{}).Where("folder_id = ?", folderID).Pluck("id", &noteIDs).Error; err != nil {
			return err
		}
		n, err := r.advance(tx, noteIDs, map[string]any{"folder_id": nil}, "folder_id = ?", folderID)
		affected = n
		return err
	})
	return affected, err
}

func (r *noteRepository) PullTag(ctx context.Context, tagID string) (int64, error) {
	var affected int64
	err := r.dao.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var noteIDs []string
		if err := tx.Model(&model.NoteTag{}).Where("tag_id = ?", tagID).Pluck("note_id", &noteIDs).Error; err != nil {
			return err
		}
		if len(noteIDs) == 0 {
			return nil
		}
		if _, err := r.advance(tx, noteIDs, nil); err != nil {
			return err
		}
		result := tx.Where("tag_id = ?", tagID).Delete(&model.NoteTag{})
		if result.Error != nil {
			return result.Error
		}
		affected = int64(len(noteIDs))
		return nil
	})
	return affected, err
}

// advance 推进笔记的 UpdatedAt 到 Next(prev) 并写入 extra 中的列，返回实际修改的行数
// cond 为逐行更新时附加的条件，用于跳过读取之后已被改动的行
func (r *noteRepository) advance(tx *gorm.DB, noteIDs []string, extra map[string]any, cond ...any) (int64, error) {
	if len(noteIDs) == 0 {
		return 0, nil
	}
	var rows []model.Note
	if err := tx.Select("id", "updated_at").Where("id IN ?", noteIDs).Find(&rows).Error; err != nil {
		return 0, err
	}

	var affected int64
	for _, row := range rows {
		values := map[string]any{"updated_at": timex.Next(row.UpdatedAt)}
		for k, v := range extra {
			values[k] = v
		}
		q := tx.Model(&model.Note{}).Where("id = ?", row.ID)
		if len(cond) > 0 {
			q = q.Where(cond[0], cond[1:]...)
		}
		result := q.Updates(values)
		if result.Error != nil {
			return affected, result.Error
		}
		affected += result.RowsAffected
	}
	return affected, nil
}

func (r *noteRepository) SweepDanglingReferences(ctx context.Context) (*domain.SweepResult, error) {
	res := &domain.SweepResult{}
	err := r.dao.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var folderNoteIDs []string
		if err := tx.Model(&model.Note{}).
			Where("folder_id IS NOT NULL AND folder_id NOT IN (?)", tx.Model(&model.Folder{}).Select("id")).
			Pluck("id", &folderNoteIDs).Error; err != nil {
			return err
		}
		n, err := r.advance(tx, folderNoteIDs, map[string]any{"folder_id": nil})
		if err != nil {
			return err
		}
		res.FolderRefs = n

		tags := tx.Model(&model.Tag{}).Select("id")
		var noteIDs []string
		if err := tx.Model(&model.NoteTag{}).
			Where("tag_id NOT IN (?)", tags).
			Distinct().
			Pluck("note_id", &noteIDs).Error; err != nil {
			return err
		}
		if _, err := r.advance(tx, noteIDs, nil); err != nil {
			return err
		}
		result := tx.Where("tag_id NOT IN (?)", tx.Model(&model.Tag{}).Select("id")).Delete(&model.NoteTag{})
		if result.Error != nil {
			return result.Error
		}
		res.TagRefs = result.RowsAffected

		// 笔记已删除但残留的引用行
		result = tx.Where("note_id NOT IN (?)", tx.Model(&model.Note{}).Select("id")).Delete(&model.NoteTag{})
		if result.Error != nil {
			return result.Error
		}
		res.TagRefs += result.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *noteRepository) modelToDomain(m *model.Note, tags []string) *domain.Note {
	n := &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Tags:      tags,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.FolderID != nil {
		n.FolderID = *m.FolderID
	}
	return n
}

func (r *noteRepository) domainToModel(d *domain.Note) *model.Note {
	m := &model.Note{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.FolderID != "" {
		folderID := d.FolderID
		m.FolderID = &folderID
	}
	return m
}
