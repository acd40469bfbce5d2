package database

import (
	"time"

	"gorm.io/gorm"
)

// UserSongHistory 用户播放记录
// 每个 (用户, 歌曲) 只有一行，重复播放时累加次数并刷新访问时间
type UserSongHistory struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_history_user_song" json:"-"`
	SongID     uint      `gorm:"not null;uniqueIndex:idx_history_user_song;index" json:"-"`
	Song       Song      `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE" json:"song"`
	AccessedAt time.Time `gorm:"not null;index" json:"accessed_at"`
	Count      int64     `gorm:"not null;default:0" json:"count"`
}

// TableName 指定UserSongHistory模型对应的数据库表名
func (UserSongHistory) TableName() string {
	return "user_song_histories"
}

// UserLikedSong 用户喜欢的歌曲
// 创建和删除时原子地增减歌曲的 liked_count
type UserLikedSong struct {
	ID      uint      `gorm:"primarykey" json:"id"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_liked_user_song" json:"-"`
	SongID  uint      `gorm:"not null;uniqueIndex:idx_liked_user_song;index" json:"-"`
	Song    Song      `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE" json:"song"`
	LikedAt time.Time `gorm:"not null;autoCreateTime;index" json:"liked_at"`
}

// TableName 指定UserLikedSong模型对应的数据库表名
func (UserLikedSong) TableName() string {
	return "user_liked_songs"
}

// AfterCreate 歌曲喜欢数加一
func (l *UserLikedSong) AfterCreate(tx *gorm.DB) error {
	return adjustLikedCount(tx, l.SongID, 1)
}

// AfterDelete 歌曲喜欢数减一
func (l *UserLikedSong) AfterDelete(tx *gorm.DB) error {
	return adjustLikedCount(tx, l.SongID, -1)
}

func adjustLikedCount(tx *gorm.DB, songID uint, delta int) error {
	return tx.Model(&Song{}).
		Where("id = ?", songID).
		UpdateColumn("liked_count", gorm.Expr("liked_count + ?", delta)).Error
}
