package service

import (
	"context"

	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/dto"
	"github.com/haierkeys/noteful-service/pkg/code"
	"github.com/haierkeys/noteful-service/pkg/util"

	"golang.org/x/sync/singleflight"
)

// NoteService 笔记业务服务接口
type NoteService interface {
	List(ctx context.Context) ([]*dto.NoteDTO, error)
	Get(ctx context.Context, id string) (*dto.NoteDTO, error)
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)
	// Update 只合并请求中出现的字段
	Update(ctx context.Context, id string, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)
	Delete(ctx context.Context, id string) error
	// SweepReferences 清除指向已删除文件夹或标签的引用，并发调用会合并为一次
	SweepReferences(ctx context.Context) (*domain.SweepResult, error)
}

type noteService struct {
	noteRepo   domain.NoteRepository
	folderRepo domain.FolderRepository
	tagRepo    domain.TagRepository
	sf         singleflight.Group
}

func NewNoteService(noteRepo domain.NoteRepository, folderRepo domain.FolderRepository, tagRepo domain.TagRepository) NoteService {
	return &noteService{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
	}
}

func (s *noteService) domainToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	res := &dto.NoteDTO{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		FolderID:  n.FolderID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if len(n.Tags) > 0 {
		res.Tags = append([]string{}, n.Tags...)
	}
	return res
}

func (s *noteService) List(ctx context.Context) ([]*dto.NoteDTO, error) {
	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return nil, mapStoreError(kindNote, err)
	}
	res := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		res = append(res, s.domainToDTO(n))
	}
	return res, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*dto.NoteDTO, error) {
	if err := checkID(id, "id"); err != nil {
		return nil, err
	}
	n, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(kindNote, err)
	}
	return s.domainToDTO(n), nil
}

func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	tags := util.ArrayUnique(params.Tags)
	if err := s.checkReferences(ctx, params.FolderID, tags); err != nil {
		return nil, err
	}

	n, err := s.noteRepo.Create(ctx, &domain.Note{
		Title:    params.Title,
		Content:  params.Content,
		FolderID: params.FolderID,
		Tags:     tags,
	})
	if err != nil {
		return nil, mapStoreError(kindNote, err)
	}
	return s.domainToDTO(n), nil
}

func (s *noteService) Update(ctx context.Context, id string, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	if err := checkID(id, "id"); err != nil {
		return nil, err
	}

	update := s.toUpdate(params)
	if update.IsEmpty() {
		return s.Get(ctx, id)
	}

	var folderID string
	var tags []string
	if update.FolderID != nil {
		folderID = *update.FolderID
	}
	if update.Tags != nil {
		tags = *update.Tags
	}
	if err := s.checkReferences(ctx, folderID, tags); err != nil {
		return nil, err
	}

	n, err := s.noteRepo.Update(ctx, id, update)
	if err != nil {
		return nil, mapStoreError(kindNote, err)
	}
	return s.domainToDTO(n), nil
}

// toUpdate 将请求转换为部分更新，null 与空值都表示清除
func (s *noteService) toUpdate(params *dto.NoteUpdateRequest) *domain.NoteUpdate {
	update := &domain.NoteUpdate{}
	if params == nil {
		return update
	}
	update.Title = params.Title
	update.Content = params.Content
	if params.FolderID.Set {
		folderID := params.FolderID.Value
		update.FolderID = &folderID
	}
	if params.Tags.Set {
		tags := util.ArrayUnique(params.Tags.Value)
		if tags == nil {
			tags = []string{}
		}
		update.Tags = &tags
	}
	return update
}

// checkReferences 确认引用的文件夹与标签存在
func (s *noteService) checkReferences(ctx context.Context, folderID string, tags []string) error {
	if folderID != "" {
		found, err := s.folderRepo.ExistIDs(ctx, []string{folderID})
		if err != nil {
			return mapStoreError(kindFolder, err)
		}
		if len(found) == 0 {
			return code.ErrorReferenceMissing.WithArgs("folderId")
		}
	}
	if len(tags) > 0 {
		found, err := s.tagRepo.ExistIDs(ctx, tags)
		if err != nil {
			return mapStoreError(kindTag, err)
		}
		if len(found) != len(tags) {
			return code.ErrorReferenceMissing.WithArgs("tags")
		}
	}
	return nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if err := checkID(id, "id"); err != nil {
		return err
	}
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return mapStoreError(kindNote, err)
	}
	return nil
}

func (s *noteService) SweepReferences(ctx context.Context) (*domain.SweepResult, error) {
	v, err, _ := s.sf.Do("sweep", func() (any, error) {
		return s.noteRepo.SweepDanglingReferences(ctx)
	})
	if err != nil {
		return nil, mapStoreError(kindNote, err)
	}
	return v.(*domain.SweepResult), nil
}
