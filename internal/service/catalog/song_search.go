package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
)

// SearchBy 歌曲筛选字段
type SearchBy int

const (
	SearchByNone      SearchBy = 0
	SearchByName      SearchBy = 1
	SearchByArtist    SearchBy = 2
	SearchByAlbum     SearchBy = 3
	SearchByTag       SearchBy = 4
	SearchByAlbumYear SearchBy = 5
)

// SortBy 歌曲排序方式
type SortBy int

const (
	SortByNewest     SortBy = 1 // ID倒序
	SortByMostPlayed SortBy = 2 // 播放次数倒序
	SortByAlbumYear  SortBy = 3 // 专辑年份倒序
)

// SongQuery 歌曲筛选条件
type SongQuery struct {
	Q        string
	SearchBy SearchBy
	SortBy   SortBy
	year     int
}

// ParseSongQuery 解析并校验筛选参数
// 参数:
//   q - 搜索文本
//   searchBy - 1=名称 2=歌手 3=专辑 4=标签 5=专辑年份，为空且 q 不为空时按名称
//   sortBy - 1=最新 2=最多播放 3=专辑年份最新，为空时为1
// 返回:
//   SongQuery - 校验后的筛选条件
//   error - 取值非法或按年份筛选时 q 不是整数
func ParseSongQuery(q, searchBy, sortBy string) (SongQuery, error) {
	query := SongQuery{Q: strings.TrimSpace(q), SortBy: SortByNewest}

	if searchBy != "" {
		n, err := strconv.Atoi(searchBy)
		if err != nil || n < int(SearchByName) || n > int(SearchByAlbumYear) {
			return SongQuery{}, errors.Invalid("search_by", "search_by must be one of 1, 2, 3, 4, 5")
		}
		query.SearchBy = SearchBy(n)
	} else if query.Q != "" {
		query.SearchBy = SearchByName
	}

	if sortBy != "" {
		n, err := strconv.Atoi(sortBy)
		if err != nil || n < int(SortByNewest) || n > int(SortByAlbumYear) {
			return SongQuery{}, errors.Invalid("sort_by", "sort_by must be one of 1, 2, 3")
		}
		query.SortBy = SortBy(n)
	}

	if query.SearchBy == SearchByAlbumYear && query.Q != "" {
		year, err := strconv.Atoi(query.Q)
		if err != nil {
			return SongQuery{}, errors.Invalid("q", "q must be an integer when searching by album year")
		}
		query.year = year
	}
	return query, nil
}

func (s *catalogService) SearchSongs(ctx context.Context, sq SongQuery, limit, offset int) ([]database.Song, int64, error) {
	query := s.db.WithContext(ctx).Model(&database.Song{})

	if sq.Q != "" {
		switch sq.SearchBy {
		case SearchByName:
			query = query.Scopes(database.ContainsFold("songs.original_name", sq.Q))
		case SearchByArtist:
			query = query.Scopes(database.SongsByArtistName(sq.Q))
		case SearchByAlbum:
			query = query.Scopes(database.SongsByAlbumTitle(sq.Q))
		case SearchByTag:
			query = query.Scopes(database.SongsByTagName(sq.Q))
		case SearchByAlbumYear:
			query = query.Where("songs.album_id IN (SELECT albums.id FROM albums WHERE albums.year = ?)", sq.year)
		}
	}

	order := "songs.id DESC"
	switch sq.SortBy {
	case SortByMostPlayed:
		order = "songs.play_count DESC, songs.id DESC"
	case SortByAlbumYear:
		query = query.Joins("JOIN albums AS sort_album ON sort_album.id = songs.album_id")
		order = "sort_album.year DESC, songs.id DESC"
	}
	return s.findSongs(query, order, limit, offset)
}
