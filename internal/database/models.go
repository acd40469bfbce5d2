// Package database 定义了数据库相关的模型和结构体
// 包含曲库、用户行为、歌单、账户和点歌请求等核心数据模型
package database

// 此文件保留作为数据库模型包的入口文件
// 具体的模型定义已拆分到以下文件：
// - catalog_models.go: 曲库模型（Album, Artist, Tag, Song）
// - engagement_models.go: 用户行为模型（UserSongHistory, UserLikedSong）
// - playlist_models.go: 歌单模型（Playlist, PlaylistSong）
// - account_models.go: 账户模型（User, AuthToken）
// - songrequest_models.go: 点歌请求模型（SongRequest）

// AllModels 返回需要迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&AuthToken{},
		&Album{},
		&Artist{},
		&Tag{},
		&Song{},
		&UserSongHistory{},
		&UserLikedSong{},
		&Playlist{},
		&PlaylistSong{},
		&SongRequest{},
	}
}
