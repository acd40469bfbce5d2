// Package catalog 提供曲库浏览、歌曲筛选、首页轮播和曲库管理
package catalog

import (
	"context"
	stderrors "errors"

	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"gorm.io/gorm"
)

// CatalogService 曲库浏览服务接口
type CatalogService interface {
	// ListAlbums 获取专辑列表
	// 参数:
	//   filter - 标题包含匹配和年份过滤
	//   limit, offset - 分页参数
	// 返回:
	//   []database.Album - 专辑列表，按ID倒序
	//   int64 - 总数量
	//   error - 错误信息
	ListAlbums(ctx context.Context, filter AlbumFilter, limit, offset int) ([]database.Album, int64, error)
	GetAlbum(ctx context.Context, id uint) (*database.Album, error)

	// ListArtists 获取歌手列表，name 不为空时按名称包含匹配
	ListArtists(ctx context.Context, name string, limit, offset int) ([]database.Artist, int64, error)
	GetArtist(ctx context.Context, id uint) (*database.Artist, error)

	// ListTags 获取标签列表，name 不为空时按名称包含匹配
	ListTags(ctx context.Context, name string, limit, offset int) ([]database.Tag, int64, error)
	GetTag(ctx context.Context, id uint) (*database.Tag, error)

	// ListSongs 按专辑、歌手、标签和名称过滤歌曲
	ListSongs(ctx context.Context, filter SongFilter, limit, offset int) ([]database.Song, int64, error)

	// GetSong 获取歌曲详情，包含专辑、歌手和标签
	GetSong(ctx context.Context, id uint) (*database.Song, error)

	// RandomSong 随机获取一首歌曲
	RandomSong(ctx context.Context) (*database.Song, error)

	// SearchSongs 按选择的字段筛选并排序歌曲
	SearchSongs(ctx context.Context, query SongQuery, limit, offset int) ([]database.Song, int64, error)

	// LatestPlaylists 最近更新的公开歌单
	LatestPlaylists(ctx context.Context, limit int) ([]database.Playlist, error)
}

// AlbumFilter 专辑过滤条件
type AlbumFilter struct {
	Title string
	Year  int // 0 表示不过滤
}

// SongFilter 歌曲过滤条件，零值字段不参与过滤
type SongFilter struct {
	AlbumID  uint
	ArtistID uint
	TagID    uint
	Name     string
}

// catalogService 曲库浏览服务实现
type catalogService struct {
	db *gorm.DB
}

// NewCatalogService 创建曲库浏览服务实例
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) ListAlbums(ctx context.Context, filter AlbumFilter, limit, offset int) ([]database.Album, int64, error) {
	query := s.db.WithContext(ctx).Model(&database.Album{})
	if filter.Title != "" {
		query = query.Scopes(database.ContainsFold("title", filter.Title))
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	albums := []database.Album{}
	if err := query.Order("id DESC").Scopes(database.Paginate(limit, offset)).Find(&albums).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return albums, total, nil
}

func (s *catalogService) GetAlbum(ctx context.Context, id uint) (*database.Album, error) {
	var album database.Album
	if err := s.db.WithContext(ctx).First(&album, id).Error; err != nil {
		return nil, notFound(err, errors.ErrAlbumNotFound)
	}
	return &album, nil
}

func (s *catalogService) ListArtists(ctx context.Context, name string, limit, offset int) ([]database.Artist, int64, error) {
	query := s.db.WithContext(ctx).Model(&database.Artist{})
	if name != "" {
		query = query.Scopes(database.ContainsFold("name", name))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	artists := []database.Artist{}
	if err := query.Order("id DESC").Scopes(database.Paginate(limit, offset)).Find(&artists).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return artists, total, nil
}

func (s *catalogService) GetArtist(ctx context.Context, id uint) (*database.Artist, error) {
	var artist database.Artist
	if err := s.db.WithContext(ctx).First(&artist, id).Error; err != nil {
		return nil, notFound(err, errors.ErrArtistNotFound)
	}
	return &artist, nil
}

func (s *catalogService) ListTags(ctx context.Context, name string, limit, offset int) ([]database.Tag, int64, error) {
	query := s.db.WithContext(ctx).Model(&database.Tag{})
	if name != "" {
		query = query.Scopes(database.ContainsFold("name", name))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	tags := []database.Tag{}
	if err := query.Order("id ASC").Scopes(database.Paginate(limit, offset)).Find(&tags).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return tags, total, nil
}

func (s *catalogService) GetTag(ctx context.Context, id uint) (*database.Tag, error) {
	var tag database.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, notFound(err, errors.ErrTagNotFound)
	}
	return &tag, nil
}

func (s *catalogService) ListSongs(ctx context.Context, filter SongFilter, limit, offset int) ([]database.Song, int64, error) {
	query := s.db.WithContext(ctx).Model(&database.Song{})
	if filter.AlbumID != 0 {
		query = query.Where("songs.album_id = ?", filter.AlbumID)
	}
	if filter.ArtistID != 0 {
		query = query.Where("songs.id IN (SELECT song_id FROM song_artists WHERE artist_id = ?)", filter.ArtistID)
	}
	if filter.TagID != 0 {
		query = query.Where("songs.id IN (SELECT song_id FROM song_tags WHERE tag_id = ?)", filter.TagID)
	}
	if filter.Name != "" {
		query = query.Scopes(database.ContainsFold("songs.original_name", filter.Name))
	}
	return s.findSongs(query, "songs.id DESC", limit, offset)
}

// findSongs 统计总数并按排序分页加载歌曲及其关联
func (s *catalogService) findSongs(query *gorm.DB, order string, limit, offset int) ([]database.Song, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	songs := []database.Song{}
	err := query.Order(order).
		Scopes(database.Paginate(limit, offset), database.WithSongRelations("")).
		Find(&songs).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return songs, total, nil
}

func (s *catalogService) GetSong(ctx context.Context, id uint) (*database.Song, error) {
	var song database.Song
	err := s.db.WithContext(ctx).Scopes(database.WithSongRelations("")).First(&song, id).Error
	if err != nil {
		return nil, notFound(err, errors.ErrSongNotFound)
	}
	return &song, nil
}

func (s *catalogService) RandomSong(ctx context.Context) (*database.Song, error) {
	var song database.Song
	err := s.db.WithContext(ctx).
		Scopes(database.WithSongRelations("")).
		Order("RANDOM()").
		Take(&song).Error
	if err != nil {
		return nil, notFound(err, errors.ErrSongNotFound)
	}
	return &song, nil
}

func (s *catalogService) LatestPlaylists(ctx context.Context, limit int) ([]database.Playlist, error) {
	playlists := []database.Playlist{}
	err := s.db.WithContext(ctx).
		Where("privacy_type = ?", database.PrivacyPublic).
		Order("updated_at DESC").
		Limit(limit).
		Find(&playlists).Error
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return playlists, nil
}

// notFound 把记录不存在转换为指定错误码
func notFound(err error, code errors.ErrorCode) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Of(code)
	}
	return errors.Wrap(errors.ErrDatabaseQuery, "", err)
}
