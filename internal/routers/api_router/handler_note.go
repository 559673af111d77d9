package api_router

import (
	"github.com/haierkeys/noteful-service/internal/app"
	"github.com/haierkeys/noteful-service/internal/dto"
	pkgapp "github.com/haierkeys/noteful-service/pkg/app"
	apperrors "github.com/haierkeys/noteful-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteHandler note API router handler
// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler creates NoteHandler instance
// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// List retrieves all notes, most recently updated first
// @Summary Get note list
// @Tags Note
// @Produce json
// @Success 200 {array} dto.NoteDTO "Success"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	res, err := h.App.NoteService.List(c.Request.Context())
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

// Get retrieves a note by id
// @Summary Get note
// @Tags Note
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} dto.NoteDTO "Success"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.App.NoteService.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

// Create creates a note
// @Summary Create note
// @Tags Note
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "Create Parameters"
// @Success 201 {object} dto.NoteDTO "Created"
// @Router /api/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var params dto.NoteCreateRequest
	if !bindParams(c, &params) {
		return
	}
	res, err := h.App.NoteService.Create(c.Request.Context(), &params)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToCreated(res, res.ID)
}

// Update merges the supplied fields into a note
// @Summary Update note
// @Tags Note
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param params body dto.NoteUpdateRequest true "Update Parameters"
// @Success 200 {object} dto.NoteDTO "Success"
// @Router /api/notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var params dto.NoteUpdateRequest
	if !bindParams(c, &params) {
		return
	}
	res, err := h.App.NoteService.Update(c.Request.Context(), id, &params)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToDocument(res)
}

// Delete deletes a note
// @Summary Delete note
// @Tags Note
// @Param id path string true "Note ID"
// @Success 204 "No Content"
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.App.NoteService.Delete(c.Request.Context(), id); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToNoContent()
}
