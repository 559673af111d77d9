package dao

import (
	"context"

	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/model"
	"github.com/haierkeys/noteful-service/pkg/timex"
	"github.com/haierkeys/noteful-service/pkg/util"
)

type tagRepository struct {
	store namedStore[model.Tag]
}

func NewTagRepository(d *Dao) domain.TagRepository {
	return &tagRepository{store: namedStore[model.Tag]{Dao: d}}
}

var _ domain.TagRepository = (*tagRepository)(nil)

func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	ms, err := r.store.list(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*domain.Tag, 0, len(ms))
	for _, m := range ms {
		res = append(res, r.modelToDomain(m))
	}
	return res, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	m, err := r.store.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(m), nil
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	m := r.domainToModel(tag)
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

func (r *tagRepository) Rename(ctx context.Context, id, name string) (*domain.Tag, error) {
	m, err := r.store.rename(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(m), nil
}

func (r *tagRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

func (r *tagRepository) ExistIDs(ctx context.Context, ids []string) ([]string, error) {
	return r.store.existIDs(ctx, ids)
}

func (r *tagRepository) modelToDomain(m *model.Tag) *domain.Tag {
	if m == nil {
		return nil
	}
	return &domain.Tag{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *tagRepository) domainToModel(d *domain.Tag) *model.Tag {
	if d == nil {
		return nil
	}
	return &model.Tag{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
