package api_router

import (
	"github.com/haierkeys/noteful-service/internal/app"
	"github.com/haierkeys/noteful-service/internal/dto"
	pkgapp "github.com/haierkeys/noteful-service/pkg/app"
	apperrors "github.com/haierkeys/noteful-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TagHandler 标签 API 路由处理器
type TagHandler struct {
	*Handler
}

func NewTagHandler(a *app.App) *TagHandler {
	return &TagHandler{Handler: NewHandler(a)}
}

// List 按名称升序返回所有标签
func (h *TagHandler) List(c *gin.Context) {
	res, err := h.App.TagService.List(c.Request.Context())
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.App.TagService.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

func (h *TagHandler) Create(c *gin.Context) {
	var params dto.TagCreateRequest
	if !bindParams(c, &params) {
		return
	}
	res, err := h.App.TagService.Create(c.Request.Context(), &params)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToCreated(res, res.ID)
}

func (h *TagHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var params dto.TagUpdateRequest
	if !bindParams(c, &params) {
		return
	}
	res, err := h.App.TagService.Update(c.Request.Context(), id, &params)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

// Delete 删除标签，并从所有笔记中移除该标签
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.App.TagService.Delete(c.Request.Context(), id); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToNoContent()
}
