package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
	"github.com/weiwangfds/arsongs/internal/service/storage"
	"gorm.io/gorm"
)

// ManageService 曲库管理服务接口，仅管理员可用
// 删除专辑、歌手和歌曲时先删除远程文件，远程删除失败只记录日志
type ManageService interface {
	CreateAlbum(ctx context.Context, req *CreateAlbumRequest) (*database.Album, error)
	CreateArtist(ctx context.Context, req *CreateArtistRequest) (*database.Artist, error)
	CreateTag(ctx context.Context, req *CreateTagRequest) (*database.Tag, error)

	// CreateSong 创建歌曲
	// 标题和文件路径由专辑编号和显示名生成，歌词路径由歌曲ID生成
	CreateSong(ctx context.Context, req *CreateSongRequest) (*database.Song, error)

	// UpdateSong 更新歌曲元数据，文件相关字段保持不变
	UpdateSong(ctx context.Context, id uint, req *UpdateSongRequest) (*database.Song, error)

	// DeleteAlbum 删除专辑及其全部歌曲
	DeleteAlbum(ctx context.Context, id uint) error
	DeleteArtist(ctx context.Context, id uint) error
	DeleteTag(ctx context.Context, id uint) error
	DeleteSong(ctx context.Context, id uint) error
}

// CreateAlbumRequest 创建专辑请求
type CreateAlbumRequest struct {
	Code  string `json:"code" binding:"required,max=255"`
	Title string `json:"title" binding:"required,max=255"`
	Year  int    `json:"year" binding:"required,min=1,max=9999"`
}

// CreateArtistRequest 创建歌手请求
type CreateArtistRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CreateSongRequest 创建歌曲请求
type CreateSongRequest struct {
	AlbumID      uint    `json:"album_id" binding:"required"`
	OriginalName string  `json:"original_name" binding:"required,max=255"`
	Duration     float64 `json:"duration" binding:"min=0"`
	ArtistIDs    []uint  `json:"artist_ids"`
	TagIDs       []uint  `json:"tag_ids"`
}

// UpdateSongRequest 更新歌曲请求，nil 字段保持不变
type UpdateSongRequest struct {
	OriginalName *string  `json:"original_name" binding:"omitempty,max=255"`
	Duration     *float64 `json:"duration" binding:"omitempty,min=0"`
	AlbumID      *uint    `json:"album_id"`
	ArtistIDs    *[]uint  `json:"artist_ids"`
	TagIDs       *[]uint  `json:"tag_ids"`
}

// manageService 曲库管理服务实现
type manageService struct {
	db     *gorm.DB
	assets storage.AssetStore
}

// NewManageService 创建曲库管理服务实例
// 参数:
//   db - 数据库连接
//   assets - 远程资源存储
func NewManageService(db *gorm.DB, assets storage.AssetStore) ManageService {
	return &manageService{db: db, assets: assets}
}

func (s *manageService) CreateAlbum(ctx context.Context, req *CreateAlbumRequest) (*database.Album, error) {
	album := &database.Album{
		Code:  strings.TrimSpace(req.Code),
		Title: strings.TrimSpace(req.Title),
		Year:  req.Year,
	}
	db := s.db.WithContext(ctx)
	if err := s.ensureUnique(db, &database.Album{}, "code", album.Code); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(db, &database.Album{}, "title", album.Title); err != nil {
		return nil, err
	}
	if err := db.Create(album).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseInsert, "", err)
	}
	logger.Infof("专辑已创建: id=%d code=%s", album.ID, album.Code)
	return album, nil
}

func (s *manageService) CreateArtist(ctx context.Context, req *CreateArtistRequest) (*database.Artist, error) {
	artist := &database.Artist{Name: strings.TrimSpace(req.Name)}
	db := s.db.WithContext(ctx)
	if err := s.ensureUnique(db, &database.Artist{}, "name", artist.Name); err != nil {
		return nil, err
	}
	if err := db.Create(artist).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseInsert, "", err)
	}
	logger.Infof("歌手已创建: id=%d name=%s", artist.ID, artist.Name)
	return artist, nil
}

func (s *manageService) CreateTag(ctx context.Context, req *CreateTagRequest) (*database.Tag, error) {
	tag := &database.Tag{Name: strings.TrimSpace(req.Name)}
	db := s.db.WithContext(ctx)
	if err := s.ensureUnique(db, &database.Tag{}, "name", tag.Name); err != nil {
		return nil, err
	}
	if err := db.Create(tag).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseInsert, "", err)
	}
	return tag, nil
}

func (s *manageService) CreateSong(ctx context.Context, req *CreateSongRequest) (*database.Song, error) {
	var song database.Song
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var album database.Album
		if err := tx.First(&album, req.AlbumID).Error; err != nil {
			return notFound(err, errors.ErrAlbumNotFound)
		}

		name := strings.TrimSpace(req.OriginalName)
		title := fmt.Sprintf("%s - %s.mp3", album.Code, name)
		if err := s.ensureUnique(tx, &database.Song{}, "title", title); err != nil {
			return err
		}
		if err := ensureAllExist(tx, &database.Artist{}, req.ArtistIDs, errors.ErrArtistNotFound); err != nil {
			return err
		}
		if err := ensureAllExist(tx, &database.Tag{}, req.TagIDs, errors.ErrTagNotFound); err != nil {
			return err
		}

		song = database.Song{
			AlbumID:      album.ID,
			Album:        album,
			OriginalName: name,
			Duration:     req.Duration,
		}
		if err := tx.Omit("Album", "Artists", "Tags").Create(&song).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseInsert, "", err)
		}
		return replaceSongLinks(tx, song.ID, &req.ArtistIDs, &req.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("歌曲已创建: id=%d title=%s", song.ID, song.Title)
	return s.loadSong(ctx, song.ID)
}

func (s *manageService) UpdateSong(ctx context.Context, id uint, req *UpdateSongRequest) (*database.Song, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var song database.Song
		if err := tx.First(&song, id).Error; err != nil {
			return notFound(err, errors.ErrSongNotFound)
		}

		updates := map[string]interface{}{}
		if req.OriginalName != nil {
			updates["original_name"] = strings.TrimSpace(*req.OriginalName)
		}
		if req.Duration != nil {
			updates["duration"] = *req.Duration
		}
		if req.AlbumID != nil {
			var count int64
			if err := tx.Model(&database.Album{}).Where("id = ?", *req.AlbumID).Count(&count).Error; err != nil {
				return errors.Wrap(errors.ErrDatabaseQuery, "", err)
			}
			if count == 0 {
				return errors.Of(errors.ErrAlbumNotFound)
			}
			updates["album_id"] = *req.AlbumID
		}
		if req.ArtistIDs != nil {
			if err := ensureAllExist(tx, &database.Artist{}, *req.ArtistIDs, errors.ErrArtistNotFound); err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			if err := ensureAllExist(tx, &database.Tag{}, *req.TagIDs, errors.ErrTagNotFound); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&song).Updates(updates).Error; err != nil {
				return errors.Wrap(errors.ErrDatabaseUpdate, "", err)
			}
		}
		return replaceSongLinks(tx, song.ID, req.ArtistIDs, req.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.loadSong(ctx, id)
}

func (s *manageService) DeleteAlbum(ctx context.Context, id uint) error {
	var album database.Album
	if err := s.db.WithContext(ctx).First(&album, id).Error; err != nil {
		return notFound(err, errors.ErrAlbumNotFound)
	}
	var songs []database.Song
	if err := s.db.WithContext(ctx).Where("album_id = ?", id).Find(&songs).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}

	storage.RemoveQuietly(ctx, s.assets, "Delete PNG file "+album.Title, album.AssetPaths()...)
	songIDs := make([]uint, 0, len(songs))
	for i := range songs {
		songIDs = append(songIDs, songs[i].ID)
		storage.RemoveQuietly(ctx, s.assets, "Delete MP3 file "+songs[i].Title, songs[i].AssetPath())
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteSongRows(tx, songIDs); err != nil {
			return err
		}
		return tx.Delete(&database.Album{}, id).Error
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, "", err)
	}
	logger.Infof("专辑已删除: id=%d, 歌曲数=%d", id, len(songIDs))
	return nil
}

func (s *manageService) DeleteArtist(ctx context.Context, id uint) error {
	var artist database.Artist
	if err := s.db.WithContext(ctx).First(&artist, id).Error; err != nil {
		return notFound(err, errors.ErrArtistNotFound)
	}

	storage.RemoveQuietly(ctx, s.assets, "Delete PNG file "+artist.Name, artist.AssetPaths()...)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM song_artists WHERE artist_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&database.Artist{}, id).Error
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, "", err)
	}
	logger.Infof("歌手已删除: id=%d", id)
	return nil
}

func (s *manageService) DeleteTag(ctx context.Context, id uint) error {
	var tag database.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return notFound(err, errors.ErrTagNotFound)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM song_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&database.Tag{}, id).Error
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, "", err)
	}
	return nil
}

func (s *manageService) DeleteSong(ctx context.Context, id uint) error {
	var song database.Song
	if err := s.db.WithContext(ctx).First(&song, id).Error; err != nil {
		return notFound(err, errors.ErrSongNotFound)
	}

	storage.RemoveQuietly(ctx, s.assets, "Delete MP3 file "+song.Title, song.AssetPath())

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteSongRows(tx, []uint{id})
	}); err != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, "", err)
	}
	logger.Infof("歌曲已删除: id=%d title=%s", id, song.Title)
	return nil
}

// deleteSongRows 删除歌曲及所有引用它的记录
func deleteSongRows(tx *gorm.DB, songIDs []uint) error {
	if len(songIDs) == 0 {
		return nil
	}
	statements := []string{
		"DELETE FROM song_artists WHERE song_id IN ?",
		"DELETE FROM song_tags WHERE song_id IN ?",
		"DELETE FROM playlist_songs WHERE song_id IN ?",
		"DELETE FROM user_song_histories WHERE song_id IN ?",
		"DELETE FROM user_liked_songs WHERE song_id IN ?",
		"DELETE FROM songs WHERE id IN ?",
	}
	for _, stmt := range statements {
		if err := tx.Exec(stmt, songIDs).Error; err != nil {
			return err
		}
	}
	return nil
}

// replaceSongLinks 重建歌曲的歌手和标签关联，nil 表示不修改
func replaceSongLinks(tx *gorm.DB, songID uint, artistIDs, tagIDs *[]uint) error {
	if artistIDs != nil {
		if err := tx.Exec("DELETE FROM song_artists WHERE song_id = ?", songID).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseUpdate, "", err)
		}
		for _, id := range uniqueIDs(*artistIDs) {
			if err := tx.Exec("INSERT INTO song_artists (song_id, artist_id) VALUES (?, ?)", songID, id).Error; err != nil {
				return errors.Wrap(errors.ErrDatabaseInsert, "", err)
			}
		}
	}
	if tagIDs != nil {
		if err := tx.Exec("DELETE FROM song_tags WHERE song_id = ?", songID).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseUpdate, "", err)
		}
		for _, id := range uniqueIDs(*tagIDs) {
			if err := tx.Exec("INSERT INTO song_tags (song_id, tag_id) VALUES (?, ?)", songID, id).Error; err != nil {
				return errors.Wrap(errors.ErrDatabaseInsert, "", err)
			}
		}
	}
	return nil
}

// ensureUnique 检查列值是否已被占用
func (s *manageService) ensureUnique(db *gorm.DB, model interface{}, column, value string) error {
	var count int64
	if err := db.Model(model).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	if count > 0 {
		return errors.Of(errors.ErrCatalogAlreadyExists).WithField(column)
	}
	return nil
}

// ensureAllExist 检查所有ID都存在
func ensureAllExist(db *gorm.DB, model interface{}, ids []uint, code errors.ErrorCode) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := db.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	if count != int64(len(ids)) {
		return errors.Of(code)
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *manageService) loadSong(ctx context.Context, id uint) (*database.Song, error) {
	var song database.Song
	if err := s.db.WithContext(ctx).Scopes(database.WithSongRelations("")).First(&song, id).Error; err != nil {
		return nil, notFound(err, errors.ErrSongNotFound)
	}
	return &song, nil
}
