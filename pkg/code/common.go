package code

import "net/http"

// Taxonomy names carried in error responses
// 错误响应中携带的错误分类名称
const (
	NameInvalidIdentifier = "InvalidIdentifier"
	NameMissingField      = "MissingField"
	NameDuplicateName     = "DuplicateName"
	NameNotFound          = "NotFound"
	NameStoreFailure      = "StoreFailure"
	NameInvalidParams     = "InvalidParams"
	NameTooManyRequests   = "TooManyRequests"
	NameInternal          = "InternalError"
)

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal  = NewError(500, http.StatusInternalServerError, NameInternal, lang{en: "Internal Server Error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI     = NewError(404, http.StatusNotFound, NameNotFound, lang{en: "Not Found", zh_cn: "资源不存在"})
	ErrorInvalidParams   = NewError(400, http.StatusBadRequest, NameInvalidParams, lang{en: "Invalid request body", zh_cn: "请求参数错误"})
	ErrorTooManyRequests = NewError(429, http.StatusTooManyRequests, NameTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})

	// Field and identifier validation
	// 字段与标识校验
	ErrorInvalidID        = NewError(1001, http.StatusBadRequest, NameInvalidIdentifier, lang{en: "The `%s` is not valid", zh_cn: "`%s` 不是合法的标识"})
	ErrorMissingField     = NewError(1002, http.StatusBadRequest, NameMissingField, lang{en: "Missing `%s` in request body", zh_cn: "请求体缺少 `%s`"})
	ErrorReferenceMissing = NewError(1003, http.StatusBadRequest, NameInvalidIdentifier, lang{en: "The `%s` does not exist", zh_cn: "`%s` 指向的记录不存在"})

	// Uniqueness
	// 唯一性冲突
	ErrorFolderNameExists = NewError(2001, http.StatusBadRequest, NameDuplicateName, lang{en: "The folder name already exists", zh_cn: "文件夹名称已存在"})
	ErrorTagNameExists    = NewError(2002, http.StatusBadRequest, NameDuplicateName, lang{en: "The tag name already exists", zh_cn: "标签名称已存在"})

	// Missing documents
	// 记录不存在
	ErrorFolderNotFound = NewError(3001, http.StatusNotFound, NameNotFound, lang{en: "Folder not found", zh_cn: "文件夹不存在"})
	ErrorTagNotFound    = NewError(3002, http.StatusNotFound, NameNotFound, lang{en: "Tag not found", zh_cn: "标签不存在"})
	ErrorNoteNotFound   = NewError(3003, http.StatusNotFound, NameNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})

	// Persistence
	// 存储层错误
	ErrorStoreFailure = NewError(5001, http.StatusInternalServerError, NameStoreFailure, lang{en: "Internal Server Error", zh_cn: "服务器内部错误"})
)
