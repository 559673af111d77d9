// Package seed 重建数据表并写入示例数据
package seed

import (
	"context"
	"embed"
	"encoding/json"

	"github.com/haierkeys/noteful-service/internal/dao"
	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/model"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:embed data/*.json
var dataFS embed.FS

// Data 示例数据
type Data struct {
	Folders []*domain.Folder
	Tags    []*domain.Tag
	Notes   []*domain.Note
}

// Result 写入数量
type Result struct {
	Folders int
	Tags    int
	Notes   int
}

type namedRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type noteRecord struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	FolderID string   `json:"folderId"`
	Tags     []string `json:"tags"`
}

// Load 读取内置的示例数据
func Load() (*Data, error) {
	var folders, tags []namedRecord
	var notes []noteRecord

	if err := readJSON("data/folders.json", &folders); err != nil {
		return nil, err
	}
	if err := readJSON("data/tags.json", &tags); err != nil {
		return nil, err
	}
	if err := readJSON("data/notes.json", &notes); err != nil {
		return nil, err
	}

	data := &Data{}
	for _, f := range folders {
		data.Folders = append(data.Folders, &domain.Folder{ID: f.ID, Name: f.Name})
	}
	for _, t := range tags {
		data.Tags = append(data.Tags, &domain.Tag{ID: t.ID, Name: t.Name})
	}
	for _, n := range notes {
		data.Notes = append(data.Notes, &domain.Note{
			ID:       n.ID,
			Title:    n.Title,
			Content:  n.Content,
			FolderID: n.FolderID,
			Tags:     n.Tags,
		})
	}
	return data, nil
}

func readJSON(name string, v any) error {
	b, err := dataFS.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "read %s", name)
	}
	return errors.Wrapf(json.Unmarshal(b, v), "decode %s", name)
}

// Run 删除并重建所有表，然后并发写入文件夹、标签和笔记
func Run(ctx context.Context, db *gorm.DB, data *Data, lg *zap.Logger) (*Result, error) {
	if lg == nil {
		lg = zap.NewNop()
	}

	if err := model.DropAll(db.WithContext(ctx)); err != nil {
		return nil, errors.Wrap(err, "drop tables")
	}
	if err := model.AutoMigrate(db.WithContext(ctx)); err != nil {
		return nil, errors.Wrap(err, "migrate tables")
	}

	d := dao.New(db, dao.WithLogger(lg))
	folderRepo := dao.NewFolderRepository(d)
	tagRepo := dao.NewTagRepository(d)
	noteRepo := dao.NewNoteRepository(d)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, f := range data.Folders {
			if _, err := folderRepo.Create(gctx, f); err != nil {
				return errors.Wrapf(err, "insert folder %s", f.ID)
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, t := range data.Tags {
			if _, err := tagRepo.Create(gctx, t); err != nil {
				return errors.Wrapf(err, "insert tag %s", t.ID)
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, n := range data.Notes {
			if _, err := noteRepo.Create(gctx, n); err != nil {
				return errors.Wrapf(err, "insert note %s", n.ID)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Folders: len(data.Folders), Tags: len(data.Tags), Notes: len(data.Notes)}
	lg.Info("seed done",
		zap.Int("folders", res.Folders),
		zap.Int("tags", res.Tags),
		zap.Int("notes", res.Notes),
	)
	return res, nil
}
