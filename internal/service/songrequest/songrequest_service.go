// Package songrequest 处理用户提交的点歌请求
package songrequest

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
	"gorm.io/gorm"
)

// 列表分页参数
const (
	DefaultPageSize = 24
	MaxPageSize     = 40
)

// CreateRequest 提交点歌请求
type CreateRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Clair de Lune"`
	Description string `json:"description" binding:"required" example:"Debussy, piano version please"`
}

// UpdateRequest 修改点歌请求，未提供的字段保持不变
type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// AnswerRequest 管理员答复点歌请求
type AnswerRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Accepted Rejected" example:"Accepted"`
	Answer string `json:"answer" example:"Added to the catalog"`
}

// SongRequestService 点歌请求服务接口
type SongRequestService interface {
	// ListOwn 当前用户的点歌请求，按ID倒序
	ListOwn(ctx context.Context, userID uint, page, pageSize int) ([]database.SongRequest, int64, error)

	// Create 提交点歌请求，状态为 Pending
	Create(ctx context.Context, userID uint, req *CreateRequest) (*database.SongRequest, error)

	// Get 获取任意点歌请求
	Get(ctx context.Context, id uint) (*database.SongRequest, error)

	// Update 修改自己的点歌请求，状态和答复只能由管理员修改
	Update(ctx context.Context, userID, id uint, req *UpdateRequest) (*database.SongRequest, error)

	// Delete 删除自己的点歌请求
	Delete(ctx context.Context, userID, id uint) error

	// Reopen 将自己的点歌请求重新置为 Pending 并清空答复
	Reopen(ctx context.Context, userID, id uint) (*database.SongRequest, error)

	// Answer 管理员设置状态和答复
	Answer(ctx context.Context, id uint, req *AnswerRequest) (*database.SongRequest, error)
}

// songRequestService 点歌请求服务实现
type songRequestService struct {
	db *gorm.DB
}

// NewSongRequestService 创建点歌请求服务实例
func NewSongRequestService(db *gorm.DB) SongRequestService {
	return &songRequestService{db: db}
}

func (s *songRequestService) ListOwn(ctx context.Context, userID uint, page, pageSize int) ([]database.SongRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	query := s.db.WithContext(ctx).Model(&database.SongRequest{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	requests := []database.SongRequest{}
	err := query.Order("id DESC").
		Scopes(database.Paginate(pageSize, (page-1)*pageSize)).
		Find(&requests).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return requests, total, nil
}

func (s *songRequestService) Create(ctx context.Context, userID uint, req *CreateRequest) (*database.SongRequest, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.Invalid("name", "name must not be blank")
	}
	request := database.SongRequest{
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		Status:      database.SongRequestPending,
	}
	if err := s.db.WithContext(ctx).Omit("User").Create(&request).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseInsert, "", err)
	}
	logger.Infof("用户 %d 提交点歌请求: id=%d name=%s", userID, request.ID, request.Name)
	return &request, nil
}

func (s *songRequestService) Get(ctx context.Context, id uint) (*database.SongRequest, error) {
	var request database.SongRequest
	if err := s.db.WithContext(ctx).First(&request, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Of(errors.ErrSongRequestNotFound)
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return &request, nil
}

func (s *songRequestService) Update(ctx context.Context, userID, id uint, req *UpdateRequest) (*database.SongRequest, error) {
	request, err := s.own(ctx, userID, id)
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
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return request, nil
	}
	if err := s.db.WithContext(ctx).Model(request).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseUpdate, "", err)
	}
	return s.Get(ctx, id)
}

func (s *songRequestService) Delete(ctx context.Context, userID, id uint) error {
	request, err := s.own(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(request).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, "", err)
	}
	return nil
}

func (s *songRequestService) Reopen(ctx context.Context, userID, id uint) (*database.SongRequest, error) {
	request, err := s.own(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(request).Updates(map[string]interface{}{
		"status": database.SongRequestPending,
		"answer": nil,
	}).Error
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseUpdate, "", err)
	}
	logger.Infof("点歌请求重新打开: id=%d", id)
	return s.Get(ctx, id)
}

func (s *songRequestService) Answer(ctx context.Context, id uint, req *AnswerRequest) (*database.SongRequest, error) {
	if !database.ValidSongRequestStatus(req.Status) {
		return nil, errors.Invalid("status", "status must be Pending, Accepted or Rejected")
	}
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var answer interface{}
	if strings.TrimSpace(req.Answer) != "" {
		answer = req.Answer
	}
	err = s.db.WithContext(ctx).Model(request).Updates(map[string]interface{}{
		"status": req.Status,
		"answer": answer,
	}).Error
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseUpdate, "", err)
	}
	logger.Infof("点歌请求已答复: id=%d status=%s", id, req.Status)
	return s.Get(ctx, id)
}

// own 获取当前用户自己的点歌请求，他人的请求按不存在处理
func (s *songRequestService) own(ctx context.Context, userID, id uint) (*database.SongRequest, error) {
	var request database.SongRequest
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&request).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Of(errors.ErrSongRequestNotFound)
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return &request, nil
}
