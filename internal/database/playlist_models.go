package database

import "time"

// 歌单可见性
const (
	PrivacyPrivate = "Private"
	PrivacyPublic  = "Public"
)

// Playlist 歌单模型
type Playlist struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	PrivacyType string    `gorm:"not null;size:7;default:Private;index" json:"privacy_type"` // Private 或 Public
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`
}

// TableName 指定Playlist模型对应的数据库表名
func (Playlist) TableName() string {
	return "playlists"
}

// IsPublic 是否公开
func (p *Playlist) IsPublic() bool {
	return p.PrivacyType == PrivacyPublic
}

// VisibleTo 歌单对指定用户是否可见，userID 为0表示匿名用户
func (p *Playlist) VisibleTo(userID uint) bool {
	return p.IsPublic() || (userID != 0 && p.UserID == userID)
}

// ValidPrivacyType 检查可见性取值
func ValidPrivacyType(v string) bool {
	return v == PrivacyPrivate || v == PrivacyPublic
}

// PlaylistSong 歌单条目
// 条目ID的升序即播放顺序
type PlaylistSong struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	PlaylistID uint      `gorm:"not null;index" json:"playlist_id"`
	SongID     uint      `gorm:"not null;index" json:"-"`
	Song       Song      `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE" json:"song"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName 指定PlaylistSong模型对应的数据库表名
func (PlaylistSong) TableName() string {
	return "playlist_songs"
}
