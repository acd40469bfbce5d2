package database

// 点歌请求状态
const (
	SongRequestPending  = "Pending"
	SongRequestAccepted = "Accepted"
	SongRequestRejected = "Rejected"
)

// SongRequest 用户提交的点歌请求
type SongRequest struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user"`
	User        User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string  `gorm:"not null;size:255" json:"name"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Status      string  `gorm:"not null;size:10;default:Pending" json:"status"`
	Answer      *string `gorm:"type:text" json:"answer"`
}

// TableName 指定SongRequest模型对应的数据库表名
func (SongRequest) TableName() string {
	return "song_requests"
}

// ValidSongRequestStatus 检查状态取值
func ValidSongRequestStatus(s string) bool {
	switch s {
	case SongRequestPending, SongRequestAccepted, SongRequestRejected:
		return true
	}
	return false
}
