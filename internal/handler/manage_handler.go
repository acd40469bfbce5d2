package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/internal/response"
	"github.com/weiwangfds/arsongs/internal/service/catalog"
	"github.com/weiwangfds/arsongs/internal/service/songrequest"
)

// ManageHandler 曲库管理处理器，仅管理员可访问
type ManageHandler struct {
	manage   catalog.ManageService
	requests songrequest.SongRequestService
}

// NewManageHandler 创建曲库管理处理器实例
func NewManageHandler(manage catalog.ManageService, requests songrequest.SongRequestService) *ManageHandler {
	return &ManageHandler{manage: manage, requests: requests}
}

// CreateAlbum 创建专辑
// @Summary 创建专辑
// @Description 缩略图路径由编号、标题和年份生成
// @Tags 曲库管理
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body catalog.CreateAlbumRequest true "专辑信息"
// @Success 201 {object} response.Response{data=database.Album}
// @Failure 400 {object} response.ErrorResponse "参数错误或编号、标题已存在"
// @Failure 403 {object} response.ErrorResponse "不是管理员"
// @Router /api/v1/manage/albums [post]
func (h *ManageHandler) CreateAlbum(c *gin.Context) {
	var req catalog.CreateAlbumRequest
	if !bindJSON(c, &req) {
		return
	}
	album, err := h.manage.CreateAlbum(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, album)
}

// CreateArtist 创建歌手
// @Summary 创建歌手
// @Tags 曲库管理
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body catalog.CreateArtistRequest true "歌手信息"
// @Success 201 {object} response.Response{data=database.Artist}
// @Failure 400 {object} response.ErrorResponse "参数错误或名称已存在"
// @Router /api/v1/manage/artists [post]
func (h *ManageHandler) CreateArtist(c *gin.Context) {
	var req catalog.CreateArtistRequest
	if !bindJSON(c, &req) {
		return
	}
	artist, err := h.manage.CreateArtist(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, artist)
}

// CreateTag 创建标签
// @Summary 创建标签
// @Tags 曲库管理
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body catalog.CreateTagRequest true "标签信息"
// @Success 201 {object} response.Response{data=database.Tag}
// @Failure 400 {object} response.ErrorResponse "参数错误或名称已存在"
// @Router /api/v1/manage/tags [post]
func (h *ManageHandler) CreateTag(c *gin.Context) {
	var req catalog.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.manage.CreateTag(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, tag)
}

// CreateSong 创建歌曲
// @Summary 创建歌曲
// @Description 标题、文件路径和歌词路径自动生成
// @Tags 曲库管理
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body catalog.CreateSongRequest true "歌曲信息"
// @Success 201 {object} response.Response{data=database.Song}
// @Failure 400 {object} response.ErrorResponse "参数错误或标题已存在"
// @Failure 404 {object} response.ErrorResponse "专辑、歌手或标签不存在"
// @Router /api/v1/manage/songs [post]
func (h *ManageHandler) CreateSong(c *gin.Context) {
	var req catalog.CreateSongRequest
	if !bindJSON(c, &req) {
		return
	}
	song, err := h.manage.CreateSong(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, song)
}

// UpdateSong 更新歌曲
// @Summary 更新歌曲元数据
// @Description 标题和文件路径不会改变
// @Tags 曲库管理
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "歌曲ID"
// @Param body body catalog.UpdateSongRequest true "要修改的字段"
// @Success 200 {object} response.Response{data=database.Song}
// @Failure 404 {object} response.ErrorResponse "歌曲不存在"
// @Router /api/v1/manage/songs/{id} [put]
func (h *ManageHandler) UpdateSong(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.UpdateSongRequest
	if !bindJSON(c, &req) {
		return
	}
	song, err := h.manage.UpdateSong(c.Request.Context(), id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, song)
}

// DeleteAlbum 删除专辑
// @Summary 删除专辑及其歌曲
// @Description 先删除远程缩略图和音频文件，远程删除失败不影响数据库删除
// @Tags 曲库管理
// @Security TokenAuth
// @Param id path int true "专辑ID"
// @Success 204 "已删除"
// @Failure 404 {object} response.ErrorResponse "专辑不存在"
// @Router /api/v1/manage/albums/{id} [delete]
func (h *ManageHandler) DeleteAlbum(c *gin.Context) {
	h.delete(c, h.manage.DeleteAlbum)
}

// DeleteArtist 删除歌手
// @Summary 删除歌手
// @Tags 曲库管理
// @Security TokenAuth
// @Param id path int true "歌手ID"
// @Success 204 "已删除"
// @Failure 404 {object} response.ErrorResponse "歌手不存在"
// @Router /api/v1/manage/artists/{id} [delete]
func (h *ManageHandler) DeleteArtist(c *gin.Context) {
	h.delete(c, h.manage.DeleteArtist)
}

// DeleteTag 删除标签
// @Summary 删除标签
// @Tags 曲库管理
// @Security TokenAuth
// @Param id path int true "标签ID"
// @Success 204 "已删除"
// @Failure 404 {object} response.ErrorResponse "标签不存在"
// @Router /api/v1/manage/tags/{id} [delete]
func (h *ManageHandler) DeleteTag(c *gin.Context) {
	h.delete(c, h.manage.DeleteTag)
}

// DeleteSong 删除歌曲
// @Summary 删除歌曲
// @Tags 曲库管理
// @Security TokenAuth
// @Param id path int true "歌曲ID"
// @Success 204 "已删除"
// @Failure 404 {object} response.ErrorResponse "歌曲不存在"
// @Router /api/v1/manage/songs/{id} [delete]
func (h *ManageHandler) DeleteSong(c *gin.Context) {
	h.delete(c, h.manage.DeleteSong)
}

// AnswerSongRequest 答复点歌请求
// @Summary 答复点歌请求
// @Tags 曲库管理
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "点歌请求ID"
// @Param body body songrequest.AnswerRequest true "状态和答复"
// @Success 200 {object} response.Response{data=database.SongRequest}
// @Failure 404 {object} response.ErrorResponse "点歌请求不存在"
// @Router /api/v1/manage/song-requests/{id}/answer [post]
func (h *ManageHandler) AnswerSongRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req songrequest.AnswerRequest
	if !bindJSON(c, &req) {
		return
	}
	request, err := h.requests.Answer(c.Request.Context(), id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, request)
}

func (h *ManageHandler) delete(c *gin.Context, fn func(ctx context.Context, id uint) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}
