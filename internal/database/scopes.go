package database

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscaper 转义LIKE通配符，配合 ESCAPE '\' 使用
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern 生成包含匹配模式，只转义通配符
// 大小写折叠由SQL中的 LOWER() 对列和模式两侧同时完成
func ContainsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// likeFold 列值不区分大小写地匹配 LIKE 模式
func likeFold(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '\\'"
}

// Paginate 按 limit/offset 分页
func Paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset < 0 {
			offset = 0
		}
		return db.Limit(limit).Offset(offset)
	}
}

// ContainsFold 列值不区分大小写地包含 q
func ContainsFold(column, q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(likeFold(column), ContainsPattern(q))
	}
}

// WithSongRelations 预加载歌曲的专辑、歌手和标签
// prefix 为空表示查询对象本身是歌曲，否则为关联名，例如 "Song"
func WithSongRelations(prefix string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p := ""
		if prefix != "" {
			p = prefix + "."
			db = db.Preload(prefix)
		}
		return db.Preload(p + "Album").Preload(p + "Artists").Preload(p + "Tags")
	}
}

// 歌曲关联字段的子查询
const (
	songsByAlbumTitle = "songs.album_id IN (SELECT albums.id FROM albums WHERE LOWER(albums.title) LIKE LOWER(?) ESCAPE '\\')"
	songsByArtistName = "songs.id IN (SELECT song_artists.song_id FROM song_artists JOIN artists ON artists.id = song_artists.artist_id WHERE LOWER(artists.name) LIKE LOWER(?) ESCAPE '\\')"
	songsByTagName    = "songs.id IN (SELECT song_tags.song_id FROM song_tags JOIN tags ON tags.id = song_tags.tag_id WHERE LOWER(tags.name) LIKE LOWER(?) ESCAPE '\\')"
)

// SongMatches 歌曲的显示名、专辑标题、任一歌手名或任一标签名包含 q
// withLyrics 为 true 时同时匹配歌词路径
// 查询中需要能以 songs 引用歌曲表
func SongMatches(q string, withLyrics bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		pattern := ContainsPattern(q)
		cond := db.Session(&gorm.Session{NewDB: true}).
			Where(likeFold("songs.original_name"), pattern)
		if withLyrics {
			cond = cond.Or(likeFold("songs.lyrics_ref"), pattern)
		}
		cond = cond.
			Or(songsByAlbumTitle, pattern).
			Or(songsByArtistName, pattern).
			Or(songsByTagName, pattern)
		return db.Where(cond)
	}
}

// SongsByAlbumTitle 专辑标题包含 q
func SongsByAlbumTitle(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(songsByAlbumTitle, ContainsPattern(q))
	}
}

// SongsByArtistName 任一歌手名包含 q
func SongsByArtistName(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(songsByArtistName, ContainsPattern(q))
	}
}

// SongsByTagName 任一标签名包含 q
func SongsByTagName(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(songsByTagName, ContainsPattern(q))
	}
}
