package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/internal/response"
	"github.com/weiwangfds/arsongs/internal/service/share"
)

// ShareHandler 分享页处理器
type ShareHandler struct {
	share share.ShareService
}

// NewShareHandler 创建分享页处理器实例
func NewShareHandler(shareService share.ShareService) *ShareHandler {
	return &ShareHandler{share: shareService}
}

// Song 歌曲分享页
// @Summary 歌曲分享页
// @Description 爬虫返回带 Open Graph 标签的HTML，其他请求重定向到前端应用
// @Tags 分享
// @Produce html
// @Param id path int true "歌曲ID"
// @Success 200 {string} string "HTML"
// @Success 302 "重定向到前端应用"
// @Failure 404 {object} response.ErrorResponse "歌曲不存在"
// @Router /share/content/songs/{id} [get]
func (h *ShareHandler) Song(c *gin.Context) { h.render(c, share.KindSong) }

// Playlist 歌单分享页，私有歌单按不存在处理
// @Summary 歌单分享页
// @Tags 分享
// @Produce html
// @Param id path int true "歌单ID"
// @Success 200 {string} string "HTML"
// @Failure 404 {object} response.ErrorResponse "歌单不存在或为私有"
// @Router /share/content/playlists/{id} [get]
func (h *ShareHandler) Playlist(c *gin.Context) { h.render(c, share.KindPlaylist) }

// Album 专辑分享页
// @Summary 专辑分享页
// @Tags 分享
// @Produce html
// @Param id path int true "专辑ID"
// @Success 200 {string} string "HTML"
// @Failure 404 {object} response.ErrorResponse "专辑不存在"
// @Router /share/content/albums/{id} [get]
func (h *ShareHandler) Album(c *gin.Context) { h.render(c, share.KindAlbum) }

// Artist 歌手分享页
// @Summary 歌手分享页
// @Tags 分享
// @Produce html
// @Param id path int true "歌手ID"
// @Success 200 {string} string "HTML"
// @Failure 404 {object} response.ErrorResponse "歌手不存在"
// @Router /share/content/artists/{id} [get]
func (h *ShareHandler) Artist(c *gin.Context) { h.render(c, share.KindArtist) }

func (h *ShareHandler) render(c *gin.Context, kind share.Kind) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !share.IsBot(c.GetHeader("User-Agent")) {
		c.Redirect(http.StatusFound, h.share.RedirectURL(kind, id))
		return
	}
	page, err := h.share.Render(c.Request.Context(), kind, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
