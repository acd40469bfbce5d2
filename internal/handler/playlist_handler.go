package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/middleware"
	"github.com/weiwangfds/arsongs/internal/response"
	"github.com/weiwangfds/arsongs/internal/service/playlist"
)

// PlaylistHandler 歌单处理器
type PlaylistHandler struct {
	playlists playlist.PlaylistService
	cfg       config.ContentConfig
}

// NewPlaylistHandler 创建歌单处理器实例
func NewPlaylistHandler(playlists playlist.PlaylistService, cfg config.ContentConfig) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, cfg: cfg}
}

// Create 创建歌单
// @Summary 创建歌单
// @Tags 歌单
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body playlist.CreatePlaylistRequest true "歌单信息"
// @Success 201 {object} response.Response{data=database.Playlist}
// @Failure 400 {object} response.ErrorResponse "参数错误"
// @Router /api/v1/playlists [post]
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req playlist.CreatePlaylistRequest
	if !bindJSON(c, &req) {
		return
	}
	pl, err := h.playlists.Create(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, pl)
}

// ListOwn 我的歌单
// @Summary 我的歌单
// @Tags 歌单
// @Produce json
// @Security TokenAuth
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.Playlist}}
// @Router /api/v1/playlists [get]
func (h *PlaylistHandler) ListOwn(c *gin.Context) {
	p := response.ParseOffsetPage(c, h.cfg.PageDefaultLimit, h.cfg.PageMaxLimit)
	playlists, total, err := h.playlists.ListOwn(c.Request.Context(), middleware.CurrentUserID(c), p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, playlists, total, p)
}

// Get 歌单详情
// @Summary 歌单详情
// @Tags 歌单
// @Produce json
// @Param id path int true "歌单ID"
// @Success 200 {object} response.Response{data=database.Playlist}
// @Failure 403 {object} response.ErrorResponse "私有歌单"
// @Failure 404 {object} response.ErrorResponse "歌单不存在"
// @Router /api/v1/playlists/{id} [get]
func (h *PlaylistHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pl, err := h.playlists.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, pl)
}

// Update 更新歌单
// @Summary 更新歌单
// @Tags 歌单
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "歌单ID"
// @Param body body playlist.UpdatePlaylistRequest true "要修改的字段"
// @Success 200 {object} response.Response{data=database.Playlist}
// @Failure 403 {object} response.ErrorResponse "不是歌单所有者"
// @Failure 404 {object} response.ErrorResponse "歌单不存在"
// @Router /api/v1/playlists/{id} [put]
func (h *PlaylistHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req playlist.UpdatePlaylistRequest
	if !bindJSON(c, &req) {
		return
	}
	pl, err := h.playlists.Update(c.Request.Context(), middleware.CurrentUserID(c), id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, pl)
}

// Delete 删除歌单
// @Summary 删除歌单
// @Tags 歌单
// @Security TokenAuth
// @Param id path int true "歌单ID"
// @Success 204 "已删除"
// @Failure 403 {object} response.ErrorResponse "不是歌单所有者"
// @Failure 404 {object} response.ErrorResponse "歌单不存在"
// @Router /api/v1/playlists/{id} [delete]
func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.playlists.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// AddSongs 向歌单追加歌曲
// @Summary 向歌单追加歌曲
// @Description 按请求顺序追加，已在歌单中的歌曲会被跳过
// @Tags 歌单
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "歌单ID"
// @Param body body playlist.AddSongsRequest true "歌曲ID列表"
// @Success 201 {object} response.Response{data=[]database.PlaylistSong}
// @Failure 403 {object} response.ErrorResponse "不是歌单所有者"
// @Failure 404 {object} response.ErrorResponse "歌单或歌曲不存在"
// @Router /api/v1/playlists/{id}/songs [post]
func (h *PlaylistHandler) AddSongs(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req playlist.AddSongsRequest
	if !bindJSON(c, &req) {
		return
	}
	entries, err := h.playlists.AddSongs(c.Request.Context(), middleware.CurrentUserID(c), id, req.SongIDs)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, entries)
}

// ListSongs 歌单中的歌曲
// @Summary 歌单中的歌曲
// @Tags 歌单
// @Produce json
// @Param id path int true "歌单ID"
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.PlaylistSong}}
// @Failure 403 {object} response.ErrorResponse "私有歌单"
// @Router /api/v1/playlists/{id}/songs [get]
func (h *PlaylistHandler) ListSongs(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p := response.ParseOffsetPage(c, h.cfg.PageDefaultLimit, h.cfg.PageMaxLimit)
	entries, total, err := h.playlists.ListSongs(c.Request.Context(), middleware.CurrentUserID(c), id, p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, entries, total, p)
}

// RemoveEntry 从歌单中移除条目
// @Summary 从歌单中移除条目
// @Tags 歌单
// @Security TokenAuth
// @Param id path int true "歌单ID"
// @Param entry_id path int true "条目ID"
// @Success 204 "已移除"
// @Failure 404 {object} response.ErrorResponse "条目不存在"
// @Router /api/v1/playlists/{id}/songs/{entry_id} [delete]
func (h *PlaylistHandler) RemoveEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}
	if err := h.playlists.RemoveEntry(c.Request.Context(), middleware.CurrentUserID(c), id, entryID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// Seek 播放导航
// @Summary 播放导航
// @Description 返回当前条目及前后条目，按条目ID顺序；loop=true 时首尾相连
// @Tags 歌单
// @Produce json
// @Param id path int true "歌单ID"
// @Param current query int false "当前条目ID"
// @Param loop query bool false "循环播放"
// @Success 200 {object} response.Response{data=playlist.SeekResult}
// @Failure 403 {object} response.ErrorResponse "私有歌单"
// @Failure 404 {object} response.ErrorResponse "当前条目不在歌单中"
// @Router /api/v1/playlists/{id}/seek [get]
func (h *PlaylistHandler) Seek(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	current, ok := queryID(c, "current")
	if !ok {
		return
	}
	result, err := h.playlists.Seek(c.Request.Context(), middleware.CurrentUserID(c), id, current, queryBool(c, "loop"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// Random 歌单中的随机条目
// @Summary 歌单中的随机条目
// @Tags 歌单
// @Produce json
// @Param id path int true "歌单ID"
// @Success 200 {object} response.Response{data=database.PlaylistSong}
// @Failure 404 {object} response.ErrorResponse "歌单为空"
// @Router /api/v1/playlists/{id}/random [get]
func (h *PlaylistHandler) Random(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entry, err := h.playlists.Random(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, entry)
}
