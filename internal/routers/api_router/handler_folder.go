package api_router

import (
	"github.com/haierkeys/noteful-service/internal/app"
	"github.com/haierkeys/noteful-service/internal/dto"
	pkgapp "github.com/haierkeys/noteful-service/pkg/app"
	apperrors "github.com/haierkeys/noteful-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// FolderHandler folder API router handler
// FolderHandler 文件夹 API 路由处理器
type FolderHandler struct {
	*Handler
}

// NewFolderHandler creates FolderHandler instance
// NewFolderHandler 创建 FolderHandler 实例
func NewFolderHandler(a *app.App) *FolderHandler {
	return &FolderHandler{Handler: NewHandler(a)}
}

// List retrieves all folders sorted by name
// @Summary Get folder list
// @Tags Folder
// @Produce json
// @Success 200 {array} dto.FolderDTO "Success"
// @Router /api/folders [get]
func (h *FolderHandler) List(c *gin.Context) {
	res, err := h.App.FolderService.List(c.Request.Context())
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

// Get retrieves a folder by id
// @Summary Get folder
// @Tags Folder
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} dto.FolderDTO "Success"
// @Failure 400 {object} pkgapp.Res "InvalidIdentifier"
// @Failure 404 {object} pkgapp.Res "NotFound"
// @Router /api/folders/{id} [get]
func (h *FolderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.App.FolderService.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

// Create creates a folder
// @Summary Create folder
// @Tags Folder
// @Accept json
// @Produce json
// @Param params body dto.FolderCreateRequest true "Create Parameters"
// @Success 201 {object} dto.FolderDTO "Created"
// @Failure 400 {object} pkgapp.Res "MissingField / DuplicateName"
// @Router /api/folders [post]
func (h *FolderHandler) Create(c *gin.Context) {
	var params dto.FolderCreateRequest
	if !bindParams(c, &params) {
		return
	}
	res, err := h.App.FolderService.Create(c.Request.Context(), &params)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToCreated(res, res.ID)
}

// Update renames a folder
// @Summary Update folder
// @Tags Folder
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Param params body dto.FolderUpdateRequest true "Update Parameters"
// @Success 200 {object} dto.FolderDTO "Success"
// @Failure 400 {object} pkgapp.Res "InvalidIdentifier / MissingField / DuplicateName"
// @Router /api/folders/{id} [put]
func (h *FolderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var params dto.FolderUpdateRequest
	if !bindParams(c, &params) {
		return
	}
	res, err := h.App.FolderService.Update(c.Request.Context(), id, &params)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

// Delete deletes a folder and clears it from every note
// @Summary Delete folder
// @Tags Folder
// @Param id path string true "Folder ID"
// @Success 204 "No Content"
// @Failure 400 {object} pkgapp.Res "InvalidIdentifier"
// @Router /api/folders/{id} [delete]
func (h *FolderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.App.FolderService.Delete(c.Request.Context(), id); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToNoContent()
}
