// Package share 渲染分享链接的社交预览页面
// 爬虫得到带 Open Graph 标签的HTML，普通用户被重定向到前端应用
package share

import (
	"context"
	stderrors "errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"gorm.io/gorm"
)

// Kind 分享内容类型
type Kind string

// 支持分享的内容类型，取值与前端路由一致
const (
	KindSong     Kind = "song"
	KindPlaylist Kind = "playlist"
	KindAlbum    Kind = "album"
	KindArtist   Kind = "artist"
)

// botSignatures 爬虫User-Agent特征，小写
var botSignatures = []string{
	"bot", "spider", "crawler", "curl", "facebookexternalhit",
	"whatsapp", "discord", "telegram", "linkedin", "webexteams",
}

// IsBot 根据User-Agent判断请求方是否为爬虫
func IsBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, sig := range botSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}

// FormatDuration 将秒数格式化为 mm:ss
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Meta 预览页的 Open Graph 数据
type Meta struct {
	Title       string
	Description string
	Image       string
	URL         string
	Type        string
	// 以下仅歌曲使用
	Musician    string
	ReleaseDate string
	Duration    string
}

// ShareService 分享页服务接口
type ShareService interface {
	// RedirectURL 返回内容在前端应用中的地址
	RedirectURL(kind Kind, id uint) string

	// Render 渲染内容的预览HTML
	// 参数:
	//   ctx - 请求上下文
	//   kind - 内容类型
	//   id - 内容ID
	// 返回:
	//   string - HTML文档
	//   error - 内容不存在（包括私有歌单）时返回对应的未找到错误
	Render(ctx context.Context, kind Kind, id uint) (string, error)
}

// shareService 分享页服务实现
type shareService struct {
	db    *gorm.DB
	app   string
	media string
}

// NewShareService 创建分享页服务实例
func NewShareService(db *gorm.DB, cfg config.ShareConfig) ShareService {
	return &shareService{
		db:    db,
		app:   strings.TrimRight(cfg.AppBaseURL, "/"),
		media: strings.TrimRight(cfg.MediaBaseURL, "/"),
	}
}

func (s *shareService) RedirectURL(kind Kind, id uint) string {
	return fmt.Sprintf("%s/%s/%d", s.app, kind, id)
}

func (s *shareService) Render(ctx context.Context, kind Kind, id uint) (string, error) {
	var (
		meta *Meta
		err  error
	)
	switch kind {
	case KindSong:
		meta, err = s.songMeta(ctx, id)
	case KindPlaylist:
		meta, err = s.playlistMeta(ctx, id)
	case KindAlbum:
		meta, err = s.albumMeta(ctx, id)
	case KindArtist:
		meta, err = s.artistMeta(ctx, id)
	default:
		return "", errors.Of(errors.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	meta.URL = s.RedirectURL(kind, id)
	return RenderHTML(meta), nil
}

func (s *shareService) songMeta(ctx context.Context, id uint) (*Meta, error) {
	var song database.Song
	err := s.db.WithContext(ctx).Scopes(database.WithSongRelations("")).First(&song, id).Error
	if err != nil {
		return nil, lookupError(err, errors.ErrSongNotFound)
	}

	names := make([]string, len(song.Artists))
	for i, a := range song.Artists {
		names[i] = a.Name
	}
	parts := []string{song.Album.Title, strconv.Itoa(song.Album.Year)}
	if len(names) > 0 {
		parts = append(parts, names[0])
	}
	parts = append(parts, FormatDuration(song.Duration))

	return &Meta{
		Title:       song.OriginalName,
		Description: strings.Join(parts, " • "),
		Image:       s.mediaURL(song.Album.Thumbnail300x300),
		Type:        "music.song",
		Musician:    strings.Join(names, ", "),
		ReleaseDate: strconv.Itoa(song.Album.Year),
		Duration:    FormatDuration(song.Duration),
	}, nil
}

func (s *shareService) playlistMeta(ctx context.Context, id uint) (*Meta, error) {
	var playlist database.Playlist
	err := s.db.WithContext(ctx).Preload("User").
		Where("privacy_type = ?", database.PrivacyPublic).
		First(&playlist, id).Error
	if err != nil {
		return nil, lookupError(err, errors.ErrPlaylistNotFound)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&database.PlaylistSong{}).Where("playlist_id = ?", id).Count(&count).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	meta := &Meta{
		Title:       playlist.Name,
		Description: fmt.Sprintf("Playlist by %s • %d songs", playlist.User.Username, count),
		Type:        "music.playlist",
	}

	// 以第一首歌的专辑封面作为预览图
	var first database.PlaylistSong
	err = s.db.WithContext(ctx).Preload("Song.Album").
		Where("playlist_id = ?", id).Order("id ASC").Take(&first).Error
	if err == nil {
		meta.Image = s.mediaURL(first.Song.Album.Thumbnail300x300)
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return meta, nil
}

func (s *shareService) albumMeta(ctx context.Context, id uint) (*Meta, error) {
	var album database.Album
	if err := s.db.WithContext(ctx).First(&album, id).Error; err != nil {
		return nil, lookupError(err, errors.ErrAlbumNotFound)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&database.Song{}).Where("album_id = ?", id).Count(&count).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return &Meta{
		Title:       album.Title,
		Description: fmt.Sprintf("Album • %d • %d songs", album.Year, count),
		Image:       s.mediaURL(album.Thumbnail300x300),
		Type:        "music.album",
		ReleaseDate: strconv.Itoa(album.Year),
	}, nil
}

func (s *shareService) artistMeta(ctx context.Context, id uint) (*Meta, error) {
	var artist database.Artist
	if err := s.db.WithContext(ctx).First(&artist, id).Error; err != nil {
		return nil, lookupError(err, errors.ErrArtistNotFound)
	}
	var count int64
	err := s.db.WithContext(ctx).Table("song_artists").Where("artist_id = ?", id).Count(&count).Error
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return &Meta{
		Title:       artist.Name,
		Description: fmt.Sprintf("Artist • %d songs", count),
		Image:       s.mediaURL(artist.Thumbnail300x300),
		Type:        "profile",
	}, nil
}

// mediaURL 拼接媒体资源访问地址，path 已经是编码后的路径
func (s *shareService) mediaURL(path string) string {
	if path == "" {
		return ""
	}
	return s.media + "/" + strings.TrimLeft(path, "/")
}

// RenderHTML 生成带 Open Graph 标签的最简HTML文档，所有值都会转义
func RenderHTML(meta *Meta) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <title>" + html.EscapeString(meta.Title) + "</title>\n")
	writeProperty(&b, "og:title", meta.Title)
	writeProperty(&b, "og:description", meta.Description)
	writeProperty(&b, "og:image", meta.Image)
	writeProperty(&b, "og:url", meta.URL)
	writeProperty(&b, "og:type", meta.Type)
	writeProperty(&b, "music:musician", meta.Musician)
	writeProperty(&b, "music:release_date", meta.ReleaseDate)
	writeProperty(&b, "music:duration", meta.Duration)
	b.WriteString("</head>\n</html>\n")
	return b.String()
}

func writeProperty(b *strings.Builder, property, content string) {
	if content == "" {
		return
	}
	fmt.Fprintf(b, "    <meta property=\"%s\" content=\"%s\">\n", property, html.EscapeString(content))
}

func lookupError(err error, code errors.ErrorCode) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Of(code)
	}
	return errors.Wrap(errors.ErrDatabaseQuery, "", err)
}
