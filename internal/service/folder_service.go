package service

import (
	"context"

	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/dto"
)

// FolderService 文件夹业务服务接口
type FolderService interface {
	List(ctx context.Context) ([]*dto.FolderDTO, error)
	Get(ctx context.Context, id string) (*dto.FolderDTO, error)
	Create(ctx context.Context, params *dto.FolderCreateRequest) (*dto.FolderDTO, error)
	Update(ctx context.Context, id string, params *dto.FolderUpdateRequest) (*dto.FolderDTO, error)
	// Delete 删除文件夹并清除笔记中的引用，文件夹不存在时不报错
	Delete(ctx context.Context, id string) error
}

type folderService struct {
	folderRepo domain.FolderRepository
	noteRepo   domain.NoteRepository
	cascade    *CascadeCoordinator
}

func NewFolderService(folderRepo domain.FolderRepository, noteRepo domain.NoteRepository, cascade *CascadeCoordinator) FolderService {
	return &folderService{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		cascade:    cascade,
	}
}

func (s *folderService) domainToDTO(f *domain.Folder) *dto.FolderDTO {
	if f == nil {
		return nil
	}
	return &dto.FolderDTO{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (s *folderService) List(ctx context.Context) ([]*dto.FolderDTO, error) {
	folders, err := s.folderRepo.List(ctx)
	if err != nil {
		return nil, mapStoreError(kindFolder, err)
	}
	res := make([]*dto.FolderDTO, 0, len(folders))
	for _, f := range folders {
		res = append(res, s.domainToDTO(f))
	}
	return res, nil
}

func (s *folderService) Get(ctx context.Context, id string) (*dto.FolderDTO, error) {
	if err := checkID(id, "id"); err != nil {
		return nil, err
	}
	f, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(kindFolder, err)
	}
	return s.domainToDTO(f), nil
}

func (s *folderService) Create(ctx context.Context, params *dto.FolderCreateRequest) (*dto.FolderDTO, error) {
	f, err := s.folderRepo.Create(ctx, &domain.Folder{Name: params.Name})
	if err != nil {
		return nil, mapStoreError(kindFolder, err)
	}
	return s.domainToDTO(f), nil
}

func (s *folderService) Update(ctx context.Context, id string, params *dto.FolderUpdateRequest) (*dto.FolderDTO, error) {
	if err := checkID(id, "id"); err != nil {
		return nil, err
	}
	// 没有提供 name 时原样返回
	if params == nil || params.Name == nil {
		return s.Get(ctx, id)
	}
	f, err := s.folderRepo.Rename(ctx, id, *params.Name)
	if err != nil {
		return nil, mapStoreError(kindFolder, err)
	}
	return s.domainToDTO(f), nil
}

func (s *folderService) Delete(ctx context.Context, id string) error {
	if err := checkID(id, "id"); err != nil {
		return err
	}
	return s.cascade.Run(ctx, CascadeFolder, id, s.folderRepo.Delete, s.noteRepo.UnsetFolder)
}
