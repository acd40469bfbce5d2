package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/internal/middleware"
	"github.com/weiwangfds/arsongs/internal/response"
	"github.com/weiwangfds/arsongs/internal/service/songrequest"
)

// SongRequestHandler 点歌请求处理器
type SongRequestHandler struct {
	requests songrequest.SongRequestService
}

// NewSongRequestHandler 创建点歌请求处理器实例
func NewSongRequestHandler(requests songrequest.SongRequestService) *SongRequestHandler {
	return &SongRequestHandler{requests: requests}
}

// List 我的点歌请求
// @Summary 我的点歌请求
// @Tags 点歌
// @Produce json
// @Security TokenAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(24)
// @Success 200 {object} response.Response{data=response.PageData{list=[]database.SongRequest}}
// @Router /api/v1/song-requests/handle [get]
func (h *SongRequestHandler) List(c *gin.Context) {
	p := response.ParsePageNumber(c, songrequest.DefaultPageSize, songrequest.MaxPageSize)
	requests, total, err := h.requests.ListOwn(c.Request.Context(), middleware.CurrentUserID(c), p.Page, p.PageSize)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithPage(c, requests, total, p.Page, p.PageSize)
}

// Create 提交点歌请求
// @Summary 提交点歌请求
// @Tags 点歌
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body songrequest.CreateRequest true "歌曲名称和描述"
// @Success 201 {object} response.Response{data=database.SongRequest}
// @Failure 400 {object} response.ErrorResponse "参数错误"
// @Router /api/v1/song-requests/handle [post]
func (h *SongRequestHandler) Create(c *gin.Context) {
	var req songrequest.CreateRequest
	if !bindJSON(c, &req) {
		return
	}
	request, err := h.requests.Create(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, request)
}

// Get 点歌请求详情
// @Summary 点歌请求详情
// @Tags 点歌
// @Produce json
// @Security TokenAuth
// @Param id path int true "点歌请求ID"
// @Success 200 {object} response.Response{data=database.SongRequest}
// @Failure 404 {object} response.ErrorResponse "点歌请求不存在"
// @Router /api/v1/song-requests/handle/{id} [get]
func (h *SongRequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	request, err := h.requests.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, request)
}

// Update 修改点歌请求
// @Summary 修改点歌请求
// @Tags 点歌
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "点歌请求ID"
// @Param body body songrequest.UpdateRequest true "要修改的字段"
// @Success 200 {object} response.Response{data=database.SongRequest}
// @Failure 404 {object} response.ErrorResponse "点歌请求不存在"
// @Router /api/v1/song-requests/handle/{id} [put]
func (h *SongRequestHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req songrequest.UpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	request, err := h.requests.Update(c.Request.Context(), middleware.CurrentUserID(c), id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, request)
}

// Delete 删除点歌请求
// @Summary 删除点歌请求
// @Tags 点歌
// @Security TokenAuth
// @Param id path int true "点歌请求ID"
// @Success 204 "已删除"
// @Failure 404 {object} response.ErrorResponse "点歌请求不存在"
// @Router /api/v1/song-requests/handle/{id} [delete]
func (h *SongRequestHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.requests.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// Reopen 重新打开点歌请求
// @Summary 重新打开点歌请求
// @Description 状态恢复为 Pending 并清空答复
// @Tags 点歌
// @Produce json
// @Security TokenAuth
// @Param id path int true "点歌请求ID"
// @Success 200 {object} response.Response{data=database.SongRequest}
// @Failure 404 {object} response.ErrorResponse "点歌请求不存在"
// @Router /api/v1/song-requests/handle/{id}/reopen [post]
func (h *SongRequestHandler) Reopen(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	request, err := h.requests.Reopen(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, request)
}
