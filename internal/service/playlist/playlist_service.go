// Package playlist 提供歌单的增删改查、条目管理和播放导航
package playlist

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
	"gorm.io/gorm"
)

// CreatePlaylistRequest 创建歌单请求
type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Road trip"`
	PrivacyType string `json:"privacy_type" binding:"omitempty,oneof=Private Public" example:"Private"`
}

// UpdatePlaylistRequest 更新歌单请求，未提供的字段保持不变
type UpdatePlaylistRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	PrivacyType *string `json:"privacy_type" binding:"omitempty,oneof=Private Public"`
}

// AddSongsRequest 向歌单追加歌曲
type AddSongsRequest struct {
	SongIDs []uint `json:"song_ids" binding:"required,min=1"`
}

// SeekResult 播放导航结果，缺失的条目为 nil
type SeekResult struct {
	Previous *database.PlaylistSong `json:"previous"`
	Current  *database.PlaylistSong `json:"current"`
	Next     *database.PlaylistSong `json:"next"`
}

// PlaylistService 歌单服务接口
// 所有方法的 userID 为0表示匿名用户；匿名用户只能读取公开歌单
type PlaylistService interface {
	// Create 创建歌单，默认私有
	Create(ctx context.Context, userID uint, req *CreatePlaylistRequest) (*database.Playlist, error)

	// ListOwn 当前用户的歌单，按更新时间倒序
	ListOwn(ctx context.Context, userID uint, limit, offset int) ([]database.Playlist, int64, error)

	// Get 获取歌单，不可见时返回 ErrPlaylistForbidden
	Get(ctx context.Context, userID, id uint) (*database.Playlist, error)

	// Update 更新歌单，仅所有者
	Update(ctx context.Context, userID, id uint, req *UpdatePlaylistRequest) (*database.Playlist, error)

	// Delete 删除歌单及其条目，仅所有者
	Delete(ctx context.Context, userID, id uint) error

	// AddSongs 按请求顺序追加歌曲
	// 已在歌单中的歌曲和请求中重复的歌曲会被跳过；任一歌曲不存在时整体失败
	// 参数:
	//   userID - 当前用户，必须是歌单所有者
	//   id - 歌单ID
	//   songIDs - 要追加的歌曲ID
	// 返回:
	//   []database.PlaylistSong - 新增的条目
	//   error - 歌曲不存在返回 ErrSongNotFound，非所有者返回 ErrPlaylistForbidden
	AddSongs(ctx context.Context, userID, id uint, songIDs []uint) ([]database.PlaylistSong, error)

	// ListSongs 歌单条目，按条目ID升序即播放顺序
	ListSongs(ctx context.Context, userID, id uint, limit, offset int) ([]database.PlaylistSong, int64, error)

	// RemoveEntry 删除歌单中的一个条目，仅所有者
	RemoveEntry(ctx context.Context, userID, id, entryID uint) error

	// Seek 返回当前条目及其前后条目
	// current 为0时 next 为第一个条目，previous 和 current 为空；
	// loop 为 true 时缺失的 previous 用最后一个条目代替，缺失的 next 用第一个条目代替
	Seek(ctx context.Context, userID, id, current uint, loop bool) (*SeekResult, error)

	// Random 随机返回歌单中的一个条目，歌单为空时返回 ErrPlaylistEmpty
	Random(ctx context.Context, userID, id uint) (*database.PlaylistSong, error)
}

// playlistService 歌单服务实现
type playlistService struct {
	db *gorm.DB
}

// NewPlaylistService 创建歌单服务实例
func NewPlaylistService(db *gorm.DB) PlaylistService {
	return &playlistService{db: db}
}

func (s *playlistService) Create(ctx context.Context, userID uint, req *CreatePlaylistRequest) (*database.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.Invalid("name", "name must not be blank")
	}
	privacy := req.PrivacyType
	if privacy == "" {
		privacy = database.PrivacyPrivate
	}
	if !database.ValidPrivacyType(privacy) {
		return nil, errors.Invalid("privacy_type", "privacy_type must be Private or Public")
	}

	playlist := database.Playlist{UserID: userID, Name: name, PrivacyType: privacy}
	if err := s.db.WithContext(ctx).Create(&playlist).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseInsert, "", err)
	}
	logger.Infof("用户 %d 创建歌单: id=%d name=%s", userID, playlist.ID, playlist.Name)
	return &playlist, nil
}

func (s *playlistService) ListOwn(ctx context.Context, userID uint, limit, offset int) ([]database.Playlist, int64, error) {
	query := s.db.WithContext(ctx).Model(&database.Playlist{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	playlists := []database.Playlist{}
	err := query.Order("updated_at DESC, id DESC").
		Scopes(database.Paginate(limit, offset)).
		Find(&playlists).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return playlists, total, nil
}

func (s *playlistService) Get(ctx context.Context, userID, id uint) (*database.Playlist, error) {
	playlist, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !playlist.VisibleTo(userID) {
		return nil, errors.Of(errors.ErrPlaylistForbidden)
	}
	return playlist, nil
}

func (s *playlistService) Update(ctx context.Context, userID, id uint, req *UpdatePlaylistRequest) (*database.Playlist, error) {
	playlist, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.Invalid("name", "name must not be blank")
		}
		updates["name"] = name
	}
	if req.PrivacyType != nil {
		if !database.ValidPrivacyType(*req.PrivacyType) {
			return nil, errors.Invalid("privacy_type", "privacy_type must be Private or Public")
		}
		updates["privacy_type"] = *req.PrivacyType
	}
	if len(updates) == 0 {
		return playlist, nil
	}

	if err := s.db.WithContext(ctx).Model(playlist).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseUpdate, "", err)
	}
	return s.find(ctx, id)
}

func (s *playlistService) Delete(ctx context.Context, userID, id uint) error {
	playlist, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&database.PlaylistSong{}).Error; err != nil {
			return err
		}
		return tx.Delete(playlist).Error
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, "", err)
	}
	logger.Infof("用户 %d 删除歌单: id=%d", userID, id)
	return nil
}

func (s *playlistService) AddSongs(ctx context.Context, userID, id uint, songIDs []uint) ([]database.PlaylistSong, error) {
	playlist, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if len(songIDs) == 0 {
		return nil, errors.Invalid("song_ids", "song_ids must not be empty")
	}

	entries := []database.PlaylistSong{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var known []uint
		if err := tx.Model(&database.Song{}).Where("id IN ?", songIDs).Pluck("id", &known).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseQuery, "", err)
		}
		var present []uint
		if err := tx.Model(&database.PlaylistSong{}).
			Where("playlist_id = ? AND song_id IN ?", playlist.ID, songIDs).
			Pluck("song_id", &present).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseQuery, "", err)
		}

		exists := toSet(known)
		skip := toSet(present)
		for _, songID := range songIDs {
			if !exists[songID] {
				return errors.Of(errors.ErrSongNotFound).WithField("song_ids")
			}
			if skip[songID] {
				continue
			}
			skip[songID] = true
			entries = append(entries, database.PlaylistSong{PlaylistID: playlist.ID, SongID: songID})
		}
		if len(entries) == 0 {
			return nil
		}
		// 逐条插入保证条目ID与请求顺序一致
		for i := range entries {
			if err := tx.Omit("Song").Create(&entries[i]).Error; err != nil {
				return errors.Wrap(errors.ErrDatabaseInsert, "", err)
			}
		}
		return touch(tx, playlist.ID)
	})
	if err != nil {
		return nil, err
	}

	if len(entries) > 0 {
		ids := make([]uint, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		entries = entries[:0]
		err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").
			Scopes(database.WithSongRelations("Song")).
			Find(&entries).Error
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
		}
	}
	logger.Debugf("歌单 %d 新增 %d 首歌曲", id, len(entries))
	return entries, nil
}

func (s *playlistService) ListSongs(ctx context.Context, userID, id uint, limit, offset int) ([]database.PlaylistSong, int64, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, 0, err
	}
	query := s.db.WithContext(ctx).Model(&database.PlaylistSong{}).Where("playlist_id = ?", id)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	entries := []database.PlaylistSong{}
	err := query.Order("id ASC").
		Scopes(database.Paginate(limit, offset), database.WithSongRelations("Song")).
		Find(&entries).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return entries, total, nil
}

func (s *playlistService) RemoveEntry(ctx context.Context, userID, id, entryID uint) error {
	playlist, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND playlist_id = ?", entryID, playlist.ID).Delete(&database.PlaylistSong{})
		if result.Error != nil {
			return errors.Wrap(errors.ErrDatabaseDelete, "", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.Of(errors.ErrPlaylistEntryNotFound)
		}
		return touch(tx, playlist.ID)
	})
}

func (s *playlistService) Seek(ctx context.Context, userID, id, current uint, loop bool) (*SeekResult, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	result := &SeekResult{}

	if current == 0 {
		next, err := s.entry(db, id, "", "id ASC")
		if err != nil {
			return nil, err
		}
		result.Next = next
		return result, nil
	}

	cur, err := s.entry(db, id, "id = ?", "id ASC", current)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, errors.Of(errors.ErrPlaylistEntryNotFound).WithField("current")
	}
	result.Current = cur

	if result.Previous, err = s.entry(db, id, "id < ?", "id DESC", current); err != nil {
		return nil, err
	}
	if result.Next, err = s.entry(db, id, "id > ?", "id ASC", current); err != nil {
		return nil, err
	}

	if loop {
		if result.Previous == nil {
			if result.Previous, err = s.entry(db, id, "", "id DESC"); err != nil {
				return nil, err
			}
		}
		if result.Next == nil {
			if result.Next, err = s.entry(db, id, "", "id ASC"); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func (s *playlistService) Random(ctx context.Context, userID, id uint) (*database.PlaylistSong, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	entry, err := s.entry(s.db.WithContext(ctx), id, "", "RANDOM()")
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.Of(errors.ErrPlaylistEmpty)
	}
	return entry, nil
}

// entry 按条件和排序取歌单中的一个条目，不存在时返回 nil
func (s *playlistService) entry(db *gorm.DB, playlistID uint, cond, order string, args ...interface{}) (*database.PlaylistSong, error) {
	query := db.Where("playlist_id = ?", playlistID)
	if cond != "" {
		query = query.Where(cond, args...)
	}

	var entry database.PlaylistSong
	err := query.Order(order).Limit(1).
		Scopes(database.WithSongRelations("Song")).
		Take(&entry).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return &entry, nil
}

func (s *playlistService) find(ctx context.Context, id uint) (*database.Playlist, error) {
	var playlist database.Playlist
	if err := s.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Of(errors.ErrPlaylistNotFound)
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return &playlist, nil
}

// owned 获取歌单并确认当前用户是所有者
// 对不可见的歌单同样返回 403，与读取接口保持一致
func (s *playlistService) owned(ctx context.Context, userID, id uint) (*database.Playlist, error) {
	playlist, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID == 0 || playlist.UserID != userID {
		return nil, errors.Of(errors.ErrPlaylistForbidden)
	}
	return playlist, nil
}

// touch 刷新歌单更新时间，使其出现在最近更新列表前面
func touch(tx *gorm.DB, playlistID uint) error {
	err := tx.Model(&database.Playlist{}).Where("id = ?", playlistID).Update("updated_at", time.Now()).Error
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseUpdate, "", err)
	}
	return nil
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
