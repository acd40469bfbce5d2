package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/middleware"
	"github.com/weiwangfds/arsongs/internal/response"
	"github.com/weiwangfds/arsongs/internal/service/catalog"
	"github.com/weiwangfds/arsongs/internal/service/engagement"
	"github.com/weiwangfds/arsongs/internal/service/search"
)

// latestPlaylistsMax 最近歌单接口的数量上限
const latestPlaylistsMax = 50

// ContentHandler 内容处理器
// 曲库浏览、搜索、首页轮播、喜欢和播放记录
type ContentHandler struct {
	catalog    catalog.CatalogService
	slides     catalog.SlideService
	engagement engagement.EngagementService
	search     search.SearchService
	cfg        config.ContentConfig
}

// NewContentHandler 创建内容处理器实例
// 参数:
//   catalogService - 曲库浏览服务
//   slideService - 首页轮播服务
//   engagementService - 喜欢与播放记录服务
//   searchService - 全局搜索服务
//   cfg - 分页和搜索数量配置
func NewContentHandler(
	catalogService catalog.CatalogService,
	slideService catalog.SlideService,
	engagementService engagement.EngagementService,
	searchService search.SearchService,
	cfg config.ContentConfig,
) *ContentHandler {
	return &ContentHandler{
		catalog:    catalogService,
		slides:     slideService,
		engagement: engagementService,
		search:     searchService,
		cfg:        cfg,
	}
}

// LikeRequest 喜欢歌曲请求
type LikeRequest struct {
	SongID uint `json:"song_id" binding:"required" example:"12"`
}

// LikedStatus 是否已喜欢
type LikedStatus struct {
	Liked bool `json:"liked"`
}

func (h *ContentHandler) page(c *gin.Context) response.OffsetPage {
	return response.ParseOffsetPage(c, h.cfg.PageDefaultLimit, h.cfg.PageMaxLimit)
}

// ListAlbums 专辑列表
// @Summary 专辑列表
// @Tags 曲库
// @Produce json
// @Param title query string false "标题包含"
// @Param year query int false "发行年份"
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.Album}}
// @Failure 400 {object} response.ErrorResponse "参数错误"
// @Router /api/v1/content/albums [get]
func (h *ContentHandler) ListAlbums(c *gin.Context) {
	filter := catalog.AlbumFilter{Title: c.Query("title")}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, errors.Invalid("year", "year must be an integer"))
			return
		}
		filter.Year = year
	}
	p := h.page(c)
	albums, total, err := h.catalog.ListAlbums(c.Request.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, albums, total, p)
}

// GetAlbum 专辑详情
// @Summary 专辑详情
// @Tags 曲库
// @Produce json
// @Param id path int true "专辑ID"
// @Success 200 {object} response.Response{data=database.Album}
// @Failure 404 {object} response.ErrorResponse "专辑不存在"
// @Router /api/v1/content/albums/{id} [get]
func (h *ContentHandler) GetAlbum(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	album, err := h.catalog.GetAlbum(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, album)
}

// ListArtists 歌手列表
// @Summary 歌手列表
// @Tags 曲库
// @Produce json
// @Param name query string false "名称包含"
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.Artist}}
// @Router /api/v1/content/artists [get]
func (h *ContentHandler) ListArtists(c *gin.Context) {
	p := h.page(c)
	artists, total, err := h.catalog.ListArtists(c.Request.Context(), c.Query("name"), p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, artists, total, p)
}

// GetArtist 歌手详情
// @Summary 歌手详情
// @Tags 曲库
// @Produce json
// @Param id path int true "歌手ID"
// @Success 200 {object} response.Response{data=database.Artist}
// @Failure 404 {object} response.ErrorResponse "歌手不存在"
// @Router /api/v1/content/artists/{id} [get]
func (h *ContentHandler) GetArtist(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	artist, err := h.catalog.GetArtist(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, artist)
}

// ListTags 标签列表
// @Summary 标签列表
// @Tags 曲库
// @Produce json
// @Param name query string false "名称包含"
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.Tag}}
// @Router /api/v1/content/tags [get]
func (h *ContentHandler) ListTags(c *gin.Context) {
	p := h.page(c)
	tags, total, err := h.catalog.ListTags(c.Request.Context(), c.Query("name"), p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, tags, total, p)
}

// GetTag 标签详情
// @Summary 标签详情
// @Tags 曲库
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response{data=database.Tag}
// @Failure 404 {object} response.ErrorResponse "标签不存在"
// @Router /api/v1/content/tags/{id} [get]
func (h *ContentHandler) GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag, err := h.catalog.GetTag(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tag)
}

// ListSongs 歌曲列表
// @Summary 歌曲列表
// @Description 按专辑、歌手、标签ID和名称过滤
// @Tags 曲库
// @Produce json
// @Param album query int false "专辑ID"
// @Param artist query int false "歌手ID"
// @Param tag query int false "标签ID"
// @Param name query string false "名称包含"
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.Song}}
// @Failure 400 {object} response.ErrorResponse "参数错误"
// @Router /api/v1/content/songs [get]
func (h *ContentHandler) ListSongs(c *gin.Context) {
	var filter catalog.SongFilter
	var ok bool
	if filter.AlbumID, ok = queryID(c, "album"); !ok {
		return
	}
	if filter.ArtistID, ok = queryID(c, "artist"); !ok {
		return
	}
	if filter.TagID, ok = queryID(c, "tag"); !ok {
		return
	}
	filter.Name = c.Query("name")

	p := h.page(c)
	songs, total, err := h.catalog.ListSongs(c.Request.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, songs, total, p)
}

// GetSong 歌曲详情
// @Summary 歌曲详情
// @Description 除非 just_get=true，否则记录一次播放；登录用户同时写入播放记录
// @Tags 曲库
// @Produce json
// @Param id path int true "歌曲ID"
// @Param just_get query bool false "只读取，不记录播放"
// @Success 200 {object} response.Response{data=database.Song}
// @Failure 404 {object} response.ErrorResponse "歌曲不存在"
// @Router /api/v1/content/songs/{id} [get]
func (h *ContentHandler) GetSong(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	song, err := h.catalog.GetSong(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if !h.recordPlay(c, song) {
		return
	}
	response.Success(c, song)
}

// RandomSong 随机歌曲
// @Summary 随机歌曲
// @Description 随机返回一首歌曲，播放记录规则与歌曲详情相同
// @Tags 曲库
// @Produce json
// @Param just_get query bool false "只读取，不记录播放"
// @Success 200 {object} response.Response{data=database.Song}
// @Failure 404 {object} response.ErrorResponse "曲库为空"
// @Router /api/v1/content/songs/random [get]
func (h *ContentHandler) RandomSong(c *gin.Context) {
	song, err := h.catalog.RandomSong(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if !h.recordPlay(c, song) {
		return
	}
	response.Success(c, song)
}

// recordPlay 记录播放，失败时输出错误并返回false
func (h *ContentHandler) recordPlay(c *gin.Context, song *database.Song) bool {
	if queryBool(c, "just_get") {
		return true
	}
	if err := h.engagement.RecordPlay(c.Request.Context(), middleware.CurrentUserID(c), song.ID); err != nil {
		response.HandleError(c, err)
		return false
	}
	song.PlayCount++
	return true
}

// SearchSongs 歌曲筛选
// @Summary 歌曲筛选
// @Description search_by: 1 名称, 2 歌手, 3 专辑, 4 标签, 5 专辑年份；sort_by: 1 最新, 2 播放最多, 3 专辑年份最新
// @Tags 搜索
// @Produce json
// @Param q query string false "搜索词"
// @Param search_by query int false "筛选字段" Enums(1,2,3,4,5)
// @Param sort_by query int false "排序方式" Enums(1,2,3)
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.Song}}
// @Failure 400 {object} response.ErrorResponse "参数错误"
// @Router /api/v1/content/songs/search [get]
func (h *ContentHandler) SearchSongs(c *gin.Context) {
	query, err := catalog.ParseSongQuery(c.Query("q"), c.Query("search_by"), c.Query("sort_by"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	p := h.page(c)
	songs, total, err := h.catalog.SearchSongs(c.Request.Context(), query, p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, songs, total, p)
}

// Search 全局搜索
// @Summary 全局搜索
// @Description 同一首歌只出现在 history、songs、liked_songs 中优先级最高的一个列表
// @Tags 搜索
// @Produce json
// @Param q query string true "搜索词"
// @Param limit query int false "每类结果数量" default(5)
// @Success 200 {object} response.Response{data=search.Result}
// @Failure 400 {object} response.ErrorResponse "缺少搜索词"
// @Router /api/v1/content/search [get]
func (h *ContentHandler) Search(c *gin.Context) {
	limit := response.ClampLimit(c.Query("limit"), h.cfg.SearchDefaultLimit, h.cfg.SearchMaxLimit)
	result, err := h.search.Search(c.Request.Context(), middleware.CurrentUserID(c), c.Query("q"), limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// LatestPlaylists 最近更新的公开歌单
// @Summary 最近更新的公开歌单
// @Tags 歌单
// @Produce json
// @Param limit query int false "数量" default(10)
// @Success 200 {object} response.Response{data=[]database.Playlist}
// @Router /api/v1/content/latest-playlists [get]
func (h *ContentHandler) LatestPlaylists(c *gin.Context) {
	limit := response.ClampLimit(c.Query("limit"), h.cfg.PageDefaultLimit, latestPlaylistsMax)
	playlists, err := h.catalog.LatestPlaylists(c.Request.Context(), limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, playlists)
}

// GetSlides 首页轮播
// @Summary 首页轮播
// @Tags 曲库
// @Produce json
// @Success 200 {object} response.Response{data=[]catalog.Slide}
// @Router /api/v1/content/get-slides [get]
func (h *ContentHandler) GetSlides(c *gin.Context) {
	response.Success(c, h.slides.Slides())
}

// ListLiked 喜欢的歌曲
// @Summary 喜欢的歌曲
// @Tags 喜欢
// @Produce json
// @Security TokenAuth
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.UserLikedSong}}
// @Failure 401 {object} response.ErrorResponse "未登录"
// @Router /api/v1/content/liked-songs [get]
func (h *ContentHandler) ListLiked(c *gin.Context) {
	p := h.page(c)
	records, total, err := h.engagement.ListLiked(c.Request.Context(), middleware.CurrentUserID(c), p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, records, total, p)
}

// Like 喜欢歌曲
// @Summary 喜欢歌曲
// @Tags 喜欢
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body LikeRequest true "歌曲ID"
// @Success 201 {object} response.Response{data=database.UserLikedSong}
// @Failure 400 {object} response.ErrorResponse "已经喜欢过"
// @Failure 404 {object} response.ErrorResponse "歌曲不存在"
// @Router /api/v1/content/liked-songs [post]
func (h *ContentHandler) Like(c *gin.Context) {
	var req LikeRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.engagement.Like(c.Request.Context(), middleware.CurrentUserID(c), req.SongID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, record)
}

// IsLiked 是否已喜欢
// @Summary 是否已喜欢
// @Tags 喜欢
// @Produce json
// @Security TokenAuth
// @Param song_id path int true "歌曲ID"
// @Success 200 {object} response.Response{data=LikedStatus}
// @Router /api/v1/content/liked-songs/{song_id} [get]
func (h *ContentHandler) IsLiked(c *gin.Context) {
	songID, ok := pathID(c, "song_id")
	if !ok {
		return
	}
	liked, err := h.engagement.IsLiked(c.Request.Context(), middleware.CurrentUserID(c), songID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, LikedStatus{Liked: liked})
}

// Unlike 取消喜欢
// @Summary 取消喜欢
// @Tags 喜欢
// @Security TokenAuth
// @Param song_id path int true "歌曲ID"
// @Success 204 "已取消"
// @Failure 404 {object} response.ErrorResponse "没有喜欢过该歌曲"
// @Router /api/v1/content/liked-songs/{song_id} [delete]
func (h *ContentHandler) Unlike(c *gin.Context) {
	songID, ok := pathID(c, "song_id")
	if !ok {
		return
	}
	if err := h.engagement.Unlike(c.Request.Context(), middleware.CurrentUserID(c), songID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// ListHistory 播放记录
// @Summary 播放记录
// @Tags 播放记录
// @Produce json
// @Security TokenAuth
// @Param limit query int false "数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response{data=response.OffsetData{list=[]database.UserSongHistory}}
// @Router /api/v1/content/history [get]
func (h *ContentHandler) ListHistory(c *gin.Context) {
	p := h.page(c)
	records, total, err := h.engagement.ListHistory(c.Request.Context(), middleware.CurrentUserID(c), p.Limit, p.Offset)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithOffset(c, records, total, p)
}

// DeleteHistory 删除一条播放记录
// @Summary 删除一条播放记录
// @Tags 播放记录
// @Security TokenAuth
// @Param id path int true "播放记录ID"
// @Success 204 "已删除"
// @Failure 404 {object} response.ErrorResponse "播放记录不存在"
// @Router /api/v1/content/history/{id} [delete]
func (h *ContentHandler) DeleteHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.engagement.DeleteHistory(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// ClearHistory 清空播放记录
// @Summary 清空播放记录
// @Tags 播放记录
// @Security TokenAuth
// @Success 204 "已清空"
// @Router /api/v1/content/history [delete]
func (h *ContentHandler) ClearHistory(c *gin.Context) {
	if _, err := h.engagement.ClearHistory(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}
