package database

import "time"

// User 用户模型
// 注册后处于未激活状态，邮箱验证通过后激活
type User struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Username   string     `gorm:"not null;uniqueIndex;size:150" json:"username"`
	Email      string     `gorm:"not null;uniqueIndex;size:254" json:"email"`
	Password   string     `gorm:"not null;size:255" json:"-"` // bcrypt哈希
	IsActive   bool       `gorm:"not null;default:false" json:"is_active"`
	IsStaff    bool       `gorm:"not null;default:false" json:"is_staff"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt  time.Time  `json:"-"`
}

// TableName 指定User模型对应的数据库表名
func (User) TableName() string {
	return "users"
}

// AuthToken 访问令牌，每个用户最多一个
type AuthToken struct {
	Key       string    `gorm:"primaryKey;size:40" json:"key"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定AuthToken模型对应的数据库表名
func (AuthToken) TableName() string {
	return "auth_tokens"
}
