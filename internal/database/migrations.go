package database

import (
	"github.com/weiwangfds/arsongs/internal/logger"
	"gorm.io/gorm"
)

// Migrate 执行全部表结构迁移并创建复合索引
// 参数: db *gorm.DB - GORM数据库连接实例
// 返回值: error - 迁移失败时返回错误信息
func Migrate(db *gorm.DB) error {
	logger.Debugf("开始执行数据库迁移...")

	if err := db.AutoMigrate(AllModels()...); err != nil {
		return err
	}

	if err := createIndexes(db); err != nil {
		return err
	}

	logger.Debugf("数据库迁移完成")
	return nil
}

// createIndexes 创建查询所需的复合索引
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// 歌单前后曲定位：按歌单过滤后按条目ID取相邻记录
		"CREATE INDEX IF NOT EXISTS idx_playlist_songs_playlist_entry ON playlist_songs(playlist_id, id)",
		// 用户播放记录按访问时间倒序
		"CREATE INDEX IF NOT EXISTS idx_history_user_accessed ON user_song_histories(user_id, accessed_at DESC)",
		// 用户喜欢列表按时间倒序
		"CREATE INDEX IF NOT EXISTS idx_liked_user_liked_at ON user_liked_songs(user_id, liked_at DESC)",
		// 公开歌单按更新时间倒序
		"CREATE INDEX IF NOT EXISTS idx_playlists_privacy_updated ON playlists(privacy_type, updated_at DESC)",
		// 歌曲关联表反向查询
		"CREATE INDEX IF NOT EXISTS idx_song_artists_artist ON song_artists(artist_id)",
		"CREATE INDEX IF NOT EXISTS idx_song_tags_tag ON song_tags(tag_id)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			logger.Errorf("创建索引失败: %s, 错误: %v", indexSQL, err)
			return err
		}
	}
	return nil
}
