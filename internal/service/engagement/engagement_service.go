// Package engagement 维护用户的播放记录和喜欢的歌曲
package engagement

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementService 播放记录与喜欢服务接口
type EngagementService interface {
	// RecordPlay 记录一次播放
	// 歌曲播放次数加一；userID 不为0时同时写入播放记录，
	// 新记录次数为1，已有记录次数加一并刷新访问时间，两者在同一事务内完成
	// 参数:
	//   ctx - 请求上下文
	//   userID - 用户ID，0 表示匿名用户
	//   songID - 歌曲ID
	// 返回:
	//   error - 歌曲不存在时返回 ErrSongNotFound
	RecordPlay(ctx context.Context, userID, songID uint) error

	// Like 喜欢歌曲，已喜欢时返回 ErrSongAlreadyLiked
	Like(ctx context.Context, userID, songID uint) (*database.UserLikedSong, error)

	// Unlike 取消喜欢，未喜欢时返回 ErrSongNotLiked
	Unlike(ctx context.Context, userID, songID uint) error

	// IsLiked 是否已喜欢
	IsLiked(ctx context.Context, userID, songID uint) (bool, error)

	// ListLiked 喜欢的歌曲，按喜欢时间倒序
	ListLiked(ctx context.Context, userID uint, limit, offset int) ([]database.UserLikedSong, int64, error)

	// ListHistory 播放记录，按访问时间倒序
	ListHistory(ctx context.Context, userID uint, limit, offset int) ([]database.UserSongHistory, int64, error)

	// DeleteHistory 删除自己的一条播放记录
	DeleteHistory(ctx context.Context, userID, historyID uint) error

	// ClearHistory 清空自己的播放记录，返回删除的条数
	ClearHistory(ctx context.Context, userID uint) (int64, error)
}

// engagementService 播放记录与喜欢服务实现
type engagementService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEngagementService 创建服务实例
func NewEngagementService(db *gorm.DB) EngagementService {
	return &engagementService{db: db, now: time.Now}
}

func (s *engagementService) RecordPlay(ctx context.Context, userID, songID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&database.Song{}).
			Where("id = ?", songID).
			UpdateColumn("play_count", gorm.Expr("play_count + ?", 1))
		if result.Error != nil {
			return errors.Wrap(errors.ErrDatabaseUpdate, "", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.Of(errors.ErrSongNotFound)
		}
		if userID == 0 {
			return nil
		}

		now := s.now()
		history := database.UserSongHistory{
			UserID:     userID,
			SongID:     songID,
			AccessedAt: now,
			Count:      1,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "song_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":       gorm.Expr("user_song_histories.count + 1"),
				"accessed_at": now,
			}),
		}).Create(&history).Error
		if err != nil {
			return errors.Wrap(errors.ErrDatabaseInsert, "", err)
		}
		return nil
	})
}

func (s *engagementService) Like(ctx context.Context, userID, songID uint) (*database.UserLikedSong, error) {
	db := s.db.WithContext(ctx)

	var song database.Song
	if err := db.Select("id").First(&song, songID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Of(errors.ErrSongNotFound).WithField("song_id")
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}

	liked, err := s.IsLiked(ctx, userID, songID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, errors.Of(errors.ErrSongAlreadyLiked).WithField("song_id")
	}

	record := database.UserLikedSong{UserID: userID, SongID: songID}
	if err := db.Create(&record).Error; err != nil {
		// 并发重复喜欢由唯一索引拦截
		if liked, _ := s.IsLiked(ctx, userID, songID); liked {
			return nil, errors.Of(errors.ErrSongAlreadyLiked).WithField("song_id")
		}
		return nil, errors.Wrap(errors.ErrDatabaseInsert, "", err)
	}

	if err := db.Scopes(database.WithSongRelations("Song")).First(&record, record.ID).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	logger.Debugf("用户 %d 喜欢歌曲 %d", userID, songID)
	return &record, nil
}

func (s *engagementService) Unlike(ctx context.Context, userID, songID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record database.UserLikedSong
		err := tx.Where("user_id = ? AND song_id = ?", userID, songID).First(&record).Error
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Of(errors.ErrSongNotLiked)
			}
			return errors.Wrap(errors.ErrDatabaseQuery, "", err)
		}
		if err := tx.Delete(&record).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseDelete, "", err)
		}
		return nil
	})
}

func (s *engagementService) IsLiked(ctx context.Context, userID, songID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&database.UserLikedSong{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return count > 0, nil
}

func (s *engagementService) ListLiked(ctx context.Context, userID uint, limit, offset int) ([]database.UserLikedSong, int64, error) {
	query := s.db.WithContext(ctx).Model(&database.UserLikedSong{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	records := []database.UserLikedSong{}
	err := query.Order("liked_at DESC, id DESC").
		Scopes(database.Paginate(limit, offset), database.WithSongRelations("Song")).
		Find(&records).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return records, total, nil
}

func (s *engagementService) ListHistory(ctx context.Context, userID uint, limit, offset int) ([]database.UserSongHistory, int64, error) {
	query := s.db.WithContext(ctx).Model(&database.UserSongHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	records := []database.UserSongHistory{}
	err := query.Order("accessed_at DESC, id DESC").
		Scopes(database.Paginate(limit, offset), database.WithSongRelations("Song")).
		Find(&records).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return records, total, nil
}

func (s *engagementService) DeleteHistory(ctx context.Context, userID, historyID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", historyID, userID).
		Delete(&database.UserSongHistory{})
	if result.Error != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, "", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.Of(errors.ErrHistoryNotFound)
	}
	return nil
}

func (s *engagementService) ClearHistory(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&database.UserSongHistory{})
	if result.Error != nil {
		return 0, errors.Wrap(errors.ErrDatabaseDelete, "", result.Error)
	}
	logger.Debugf("用户 %d 清空播放记录 %d 条", userID, result.RowsAffected)
	return result.RowsAffected, nil
}
