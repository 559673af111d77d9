package service

import (
	"github.com/haierkeys/noteful-service/internal/dao"
	"github.com/haierkeys/noteful-service/pkg/code"
	apperrors "github.com/haierkeys/noteful-service/pkg/errors"
	"github.com/haierkeys/noteful-service/pkg/util"
)

// entityKind 实体类型对应的错误码
type entityKind struct {
	name      string
	notFound  *code.Code
	duplicate *code.Code
}

var (
	kindFolder = entityKind{name: "folder", notFound: code.ErrorFolderNotFound, duplicate: code.ErrorFolderNameExists}
	kindTag    = entityKind{name: "tag", notFound: code.ErrorTagNotFound, duplicate: code.ErrorTagNameExists}
	kindNote   = entityKind{name: "note", notFound: code.ErrorNoteNotFound}
)

// mapStoreError 将存储层错误转换为对客户端可见的错误
// 唯一约束冲突 -> DuplicateName，记录不存在 -> NotFound，其余 -> StoreFailure
func mapStoreError(kind entityKind, err error) error {
	switch {
	case err == nil:
		return nil
	case kind.duplicate != nil && dao.IsDuplicateKey(err):
		return apperrors.Wrap(kind.duplicate, err)
	case dao.IsNotFound(err):
		return apperrors.Wrap(kind.notFound, err)
	}
	return apperrors.Wrap(code.ErrorStoreFailure, err)
}

// checkID 在访问存储前校验标识格式
func checkID(id, field string) error {
	if !util.IsValidID(id) {
		return code.ErrorInvalidID.WithArgs(field)
	}
	return nil
}
