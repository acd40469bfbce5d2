package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 缩略图尺寸目录
const (
	thumbnailSmall = "300x300"
	thumbnailLarge = "1200x1200"
)

// Album 专辑模型
// 缩略图路径在创建时根据编号、标题和年份生成，之后不再改变
type Album struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	Code               string    `gorm:"not null;uniqueIndex;size:255" json:"code"`                 // 专辑编号，唯一
	Title              string    `gorm:"not null;uniqueIndex;size:255" json:"title"`                // 专辑标题，唯一
	Year               int       `gorm:"not null;index" json:"year"`                                // 发行年份
	Thumbnail300x300   string    `gorm:"column:thumbnail_300;not null;size:1024" json:"thumbnail300x300"`
	Thumbnail1200x1200 string    `gorm:"column:thumbnail_1200;not null;size:1024" json:"thumbnail1200x1200"`
	CreatedAt          time.Time `json:"-"`
}

// TableName 指定Album模型对应的数据库表名
func (Album) TableName() string {
	return "albums"
}

// BeforeCreate 生成专辑缩略图路径
func (a *Album) BeforeCreate(tx *gorm.DB) error {
	filename := fmt.Sprintf("%s - %s (%d).png", a.Code, a.Title, a.Year)
	a.Thumbnail300x300 = thumbnailPath("album-images", thumbnailSmall, filename)
	a.Thumbnail1200x1200 = thumbnailPath("album-images", thumbnailLarge, filename)
	return nil
}

// AssetPaths 返回专辑在远程存储中的文件路径（已解码）
func (a *Album) AssetPaths() []string {
	return []string{UnquoteAssetPath(a.Thumbnail300x300), UnquoteAssetPath(a.Thumbnail1200x1200)}
}

// Artist 歌手模型
type Artist struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	Name               string    `gorm:"not null;uniqueIndex;size:255" json:"name"`
	Thumbnail300x300   string    `gorm:"column:thumbnail_300;not null;size:1024" json:"thumbnail300x300"`
	Thumbnail1200x1200 string    `gorm:"column:thumbnail_1200;not null;size:1024" json:"thumbnail1200x1200"`
	CreatedAt          time.Time `json:"-"`
}

// TableName 指定Artist模型对应的数据库表名
func (Artist) TableName() string {
	return "artists"
}

// BeforeCreate 生成歌手缩略图路径
func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	filename := a.Name + ".png"
	a.Thumbnail300x300 = thumbnailPath("artist-images", thumbnailSmall, filename)
	a.Thumbnail1200x1200 = thumbnailPath("artist-images", thumbnailLarge, filename)
	return nil
}

// AssetPaths 返回歌手在远程存储中的文件路径（已解码）
func (a *Artist) AssetPaths() []string {
	return []string{UnquoteAssetPath(a.Thumbnail300x300), UnquoteAssetPath(a.Thumbnail1200x1200)}
}

// Tag 标签模型
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null;uniqueIndex;size:255" json:"name"`
}

// TableName 指定Tag模型对应的数据库表名
func (Tag) TableName() string {
	return "tags"
}

// Song 歌曲模型
// Title、FileRef 和 LyricsRef 只在首次插入时生成：
// Title = "{专辑编号} - {显示名}.mp3"，FileRef = 编码后的 "songs-file/{Title}"，
// LyricsRef = "lrc/{ID}.lrc"，之后的更新不会修改这三个字段
type Song struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"not null;uniqueIndex;size:255" json:"title"`
	FileRef      string    `gorm:"column:file_ref;not null;size:1024" json:"url"`
	OriginalName string    `gorm:"not null;size:255" json:"original_name"` // 显示名称
	LyricsRef    string    `gorm:"column:lyrics_ref;not null;size:1024" json:"lyrics"`
	Duration     float64   `gorm:"not null;default:0" json:"duration"` // 时长（秒）
	PlayCount    int64     `gorm:"not null;default:0;index" json:"count"`
	LikedCount   int64     `gorm:"not null;default:0" json:"liked_count"`
	AlbumID      uint      `gorm:"not null;index" json:"-"`
	Album        Album     `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"album"`
	Artists      []Artist  `gorm:"many2many:song_artists;constraint:OnDelete:CASCADE" json:"artists"`
	Tags         []Tag     `gorm:"many2many:song_tags;constraint:OnDelete:CASCADE" json:"tags"`
	CreatedAt    time.Time `json:"-"`
}

// TableName 指定Song模型对应的数据库表名
func (Song) TableName() string {
	return "songs"
}

// immutableSongColumns 创建后不可修改的列
var immutableSongColumns = []string{"title", "file_ref", "lyrics_ref"}

// BeforeCreate 根据专辑编号和显示名生成标题与文件路径
func (s *Song) BeforeCreate(tx *gorm.DB) error {
	code := s.Album.Code
	if code == "" {
		var album Album
		if err := tx.Select("code").First(&album, s.AlbumID).Error; err != nil {
			return fmt.Errorf("load album %d for song: %w", s.AlbumID, err)
		}
		code = album.Code
	}
	s.Title = fmt.Sprintf("%s - %s.mp3", code, s.OriginalName)
	s.FileRef = QuoteAssetPath("songs-file/" + s.Title)
	return nil
}

// AfterCreate 主键生成后写入歌词路径
func (s *Song) AfterCreate(tx *gorm.DB) error {
	s.LyricsRef = fmt.Sprintf("lrc/%d.lrc", s.ID)
	return tx.Model(&Song{}).Where("id = ?", s.ID).UpdateColumn("lyrics_ref", s.LyricsRef).Error
}

// BeforeUpdate 阻止更新文件相关字段
func (s *Song) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.Omits = append(tx.Statement.Omits, immutableSongColumns...)
	return nil
}

// AssetPath 返回歌曲音频在远程存储中的文件路径（已解码）
func (s *Song) AssetPath() string {
	return UnquoteAssetPath(s.FileRef)
}

// thumbnailPath 组装并编码缩略图路径
func thumbnailPath(root, size, filename string) string {
	return QuoteAssetPath(root + "/" + size + "/" + filename)
}
