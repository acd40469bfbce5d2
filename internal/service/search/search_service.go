// Package search 实现全局搜索
package search

import (
	"context"
	"strings"

	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
	"gorm.io/gorm"
)

// DefaultLimit 每类结果的默认数量
const DefaultLimit = 5

// Result 全局搜索结果，每个列表都存在（可能为空）
type Result struct {
	History    []database.UserSongHistory `json:"history"`
	Songs      []database.Song            `json:"songs"`
	LikedSongs []database.UserLikedSong   `json:"liked_songs"`
	Artists    []database.Artist          `json:"artists"`
	Albums     []database.Album           `json:"albums"`
	Playlists  []database.Playlist        `json:"playlists"`
	Tags       []database.Tag             `json:"tags"`
}

// SearchService 全局搜索服务接口
type SearchService interface {
	// Search 搜索歌曲、歌手、专辑、歌单和标签
	// 歌曲按 播放记录 > 曲库 > 喜欢 的优先级去重，同一首歌只出现在优先级最高的列表中；
	// 匿名用户没有播放记录和喜欢，只能搜到公开歌单
	// 参数:
	//   ctx - 请求上下文
	//   userID - 当前用户ID，0 表示匿名
	//   q - 搜索词，不区分大小写的包含匹配
	//   limit - 每类结果的最大数量
	// 返回:
	//   *Result - 搜索结果
	//   error - q 为空时返回参数错误
	Search(ctx context.Context, userID uint, q string, limit int) (*Result, error)
}

// searchService 全局搜索服务实现
type searchService struct {
	db *gorm.DB
}

// NewSearchService 创建全局搜索服务实例
func NewSearchService(db *gorm.DB) SearchService {
	return &searchService{db: db}
}

func (s *searchService) Search(ctx context.Context, userID uint, q string, limit int) (*Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errors.Invalid("q", "q is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	db := s.db.WithContext(ctx)
	result := &Result{
		History:    []database.UserSongHistory{},
		Songs:      []database.Song{},
		LikedSongs: []database.UserLikedSong{},
		Artists:    []database.Artist{},
		Albums:     []database.Album{},
		Playlists:  []database.Playlist{},
		Tags:       []database.Tag{},
	}

	// 已经出现在更高优先级列表中的歌曲
	var seen []uint

	if userID != 0 {
		err := db.Where("user_id = ?", userID).
			Where("song_id IN (?)", matchingSongIDs(db, q, false)).
			Order("accessed_at DESC, id DESC").
			Limit(limit).
			Scopes(database.WithSongRelations("Song")).
			Find(&result.History).Error
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
		}
		for _, h := range result.History {
			seen = append(seen, h.SongID)
		}
	}

	songs := db.Model(&database.Song{}).Scopes(database.SongMatches(q, true))
	if len(seen) > 0 {
		songs = songs.Where("songs.id NOT IN ?", seen)
	}
	err := songs.Order("songs.id DESC").
		Limit(limit).
		Scopes(database.WithSongRelations("")).
		Find(&result.Songs).Error
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	for _, song := range result.Songs {
		seen = append(seen, song.ID)
	}

	if userID != 0 {
		liked := db.Where("user_id = ?", userID).
			Where("song_id IN (?)", matchingSongIDs(db, q, false))
		if len(seen) > 0 {
			liked = liked.Where("song_id NOT IN ?", seen)
		}
		err := liked.Order("liked_at DESC, id DESC").
			Limit(limit).
			Scopes(database.WithSongRelations("Song")).
			Find(&result.LikedSongs).Error
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
		}
	}

	if err := db.Scopes(database.ContainsFold("name", q)).Order("id DESC").Limit(limit).Find(&result.Artists).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	if err := db.Scopes(database.ContainsFold("title", q)).Order("id DESC").Limit(limit).Find(&result.Albums).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	if err := db.Scopes(database.ContainsFold("name", q)).Order("id ASC").Limit(limit).Find(&result.Tags).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}

	playlists := db.Scopes(database.ContainsFold("name", q))
	if userID != 0 {
		playlists = playlists.Where("privacy_type = ? OR user_id = ?", database.PrivacyPublic, userID)
	} else {
		playlists = playlists.Where("privacy_type = ?", database.PrivacyPublic)
	}
	if err := playlists.Order("updated_at DESC, id DESC").Limit(limit).Find(&result.Playlists).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}

	logger.Debugf("搜索 q=%q user=%d: history=%d songs=%d liked=%d", q, userID, len(result.History), len(result.Songs), len(result.LikedSongs))
	return result, nil
}

// matchingSongIDs 匹配搜索词的歌曲ID子查询
func matchingSongIDs(db *gorm.DB, q string, withLyrics bool) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&database.Song{}).
		Select("songs.id").
		Scopes(database.SongMatches(q, withLyrics))
}
