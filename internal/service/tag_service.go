package service

import (
	"context"

	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/dto"
)

// TagService 标签业务服务接口
type TagService interface {
	List(ctx context.Context) ([]*dto.TagDTO, error)
	Get(ctx context.Context, id string) (*dto.TagDTO, error)
	Create(ctx context.Context, params *dto.TagCreateRequest) (*dto.TagDTO, error)
	Update(ctx context.Context, id string, params *dto.TagUpdateRequest) (*dto.TagDTO, error)
	// Delete 删除标签并从笔记中移除该标签，标签不存在时不报错
	Delete(ctx context.Context, id string) error
}

type tagService struct {
	tagRepo  domain.TagRepository
	noteRepo domain.NoteRepository
	cascade  *CascadeCoordinator
}

func NewTagService(tagRepo domain.TagRepository, noteRepo domain.NoteRepository, cascade *CascadeCoordinator) TagService {
	return &tagService{
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
		cascade:  cascade,
	}
}

func (s *tagService) domainToDTO(t *domain.Tag) *dto.TagDTO {
	if t == nil {
		return nil
	}
	return &dto.TagDTO{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (s *tagService) List(ctx context.Context) ([]*dto.TagDTO, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, mapStoreError(kindTag, err)
	}
	res := make([]*dto.TagDTO, 0, len(tags))
	for _, t := range tags {
		res = append(res, s.domainToDTO(t))
	}
	return res, nil
}

func (s *tagService) Get(ctx context.Context, id string) (*dto.TagDTO, error) {
	if err := checkID(id, "id"); err != nil {
		return nil, err
	}
	t, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(kindTag, err)
	}
	return s.domainToDTO(t), nil
}

func (s *tagService) Create(ctx context.Context, params *dto.TagCreateRequest) (*dto.TagDTO, error) {
	t, err := s.tagRepo.Create(ctx, &domain.Tag{Name: params.Name})
	if err != nil {
		return nil, mapStoreError(kindTag, err)
	}
	return s.domainToDTO(t), nil
}

func (s *tagService) Update(ctx context.Context, id string, params *dto.TagUpdateRequest) (*dto.TagDTO, error) {
	if err := checkID(id, "id"); err != nil {
		return nil, err
	}
	if params == nil || params.Name == nil {
		return s.Get(ctx, id)
	}
	t, err := s.tagRepo.Rename(ctx, id, *params.Name)
	if err != nil {
		return nil, mapStoreError(kindTag, err)
	}
	return s.domainToDTO(t), nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	if err := checkID(id, "id"); err != nil {
		return err
	}
	return s.cascade.Run(ctx, CascadeTag, id, s.tagRepo.Delete, s.noteRepo.PullTag)
}
