package dao

import (
	"context"

	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/model"
	"github.com/haierkeys/noteful-service/pkg/timex"
	"github.com/haierkeys/noteful-service/pkg/util"
)

type folderRepository struct {
	store namedStore[model.Folder]
}

func NewFolderRepository(d *Dao) domain.FolderRepository {
	return &folderRepository{store: namedStore[model.Folder]{Dao: d}}
}

var _ domain.FolderRepository = (*folderRepository)(nil)

func (r *folderRepository) List(ctx context.Context) ([]*domain.Folder, error) {
	ms, err := r.store.list(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*domain.Folder, 0, len(ms))
	for _, m := range ms {
		res = append(res, r.modelToDomain(m))
	}
	return res, nil
}

func (r *folderRepository) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	m, err := r.store.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(m), nil
}

func (r *folderRepository) Create(ctx context.Context, folder *domain.Folder) (*domain.Folder, error) {
	m := r.domainToModel(folder)
	if m.ID == "" {
		m.ID = util.NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = timex.Now()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	if err := r.store.create(ctx, m); err != nil {
		return nil, err
	}
	return r.modelToDomain(m), nil
}

func (r *folderRepository) Rename(ctx context.Context, id, name string) (*domain.Folder, error) {
	m, err := r.store.rename(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(m), nil
}

func (r *folderRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

func (r *folderRepository) ExistIDs(ctx context.Context, ids []string) ([]string, error) {
	return r.store.existIDs(ctx, ids)
}

func (r *folderRepository) modelToDomain(m *model.Folder) *domain.Folder {
	if m == nil {
		return nil
	}
	return &domain.Folder{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *folderRepository) domainToModel(d *domain.Folder) *model.Folder {
	if d == nil {
		return nil
	}
	return &model.Folder{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
