// Package account 提供账户注册、邮箱验证、密码重置和令牌登录
// 账户状态：未注册 -> 待验证（未激活，已签发验证码）-> 已激活
package account

import (
	"context"
	"encoding/hex"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
	"github.com/weiwangfds/arsongs/internal/service/mail"
	"github.com/weiwangfds/arsongs/internal/service/otp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService 账户服务接口
type AccountService interface {
	// Register 注册新账户
	// 新账户处于未激活状态，并向邮箱发送验证码；
	// 验证码签发失败只记录日志，账户仍然创建成功
	// 参数:
	//   ctx - 请求上下文
	//   req - 注册请求
	// 返回:
	//   *database.User - 新建的用户
	//   error - 用户名或邮箱已存在时返回 ErrUserAlreadyExists
	Register(ctx context.Context, req *RegisterRequest) (*database.User, error)

	// ResendVerificationOTP 重新发送邮箱验证码
	// 账户不存在返回 ErrUserNotFound，已激活返回 ErrAccountAlreadyActive，
	// 已有未过期的验证码返回 ErrOTPOutstanding
	ResendVerificationOTP(ctx context.Context, email string) error

	// VerifyEmail 校验验证码并激活账户
	VerifyEmail(ctx context.Context, req *VerifyEmailRequest) error

	// RequestPasswordReset 发送重置密码验证码
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword 校验验证码并设置新密码，同时吊销已有令牌
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error

	// Login 用户名密码登录，返回用户的访问令牌
	// 令牌不存在时创建，Created 表示本次是否新建
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)

	// Logout 退出登录，allDevices 为 true 时删除令牌使所有设备下线
	Logout(ctx context.Context, userID uint, allDevices bool) error

	// Authenticate 根据令牌查询用户
	Authenticate(ctx context.Context, key string) (*database.User, error)

	// CreateAdmin 创建已激活的管理员账户
	CreateAdmin(ctx context.Context, req *RegisterRequest) (*database.User, error)
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// EmailRequest 只包含邮箱的请求
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,numeric"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LogoutRequest 退出登录请求
type LogoutRequest struct {
	LogoutAllDevices bool `json:"logout_all_devices"`
}

// UserInfo 登录返回的用户信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserInfo 从用户模型提取对外展示的信息
func NewUserInfo(user *database.User) UserInfo {
	if user == nil {
		return UserInfo{}
	}
	return UserInfo{ID: user.ID, Username: user.Username, Email: user.Email}
}

// LoginResult 登录结果
type LoginResult struct {
	User    UserInfo `json:"user"`
	Token   string   `json:"token"`
	Created bool     `json:"created"`
}

// accountService 账户服务实现
type accountService struct {
	db   *gorm.DB
	otp  otp.OTPService
	mail mail.MailService
	now  func() time.Time
}

// NewAccountService 创建账户服务实例
// 参数:
//   db - 数据库连接
//   otpService - 验证码服务
//   mailService - 邮件通知服务
func NewAccountService(db *gorm.DB, otpService otp.OTPService, mailService mail.MailService) AccountService {
	return &accountService{
		db:   db,
		otp:  otpService,
		mail: mailService,
		now:  time.Now,
	}
}

func (s *accountService) Register(ctx context.Context, req *RegisterRequest) (*database.User, error) {
	user, err := s.createUser(ctx, req, false, false)
	if err != nil {
		return nil, err
	}

	// 残留的验证码来自同一邮箱此前被删除的账户
	s.otp.Invalidate(user.Email, otp.PurposeVerifyEmail)
	// 账户已创建，验证码签发失败时用户可以通过重新发送验证码继续激活
	if code, err := s.otp.Issue(user.Email, otp.PurposeVerifyEmail); err != nil {
		logger.Warnf("注册验证码签发失败: id=%d email=%s, 错误: %v", user.ID, user.Email, err)
	} else {
		s.mail.SendVerificationOTP(user.Email, code)
	}

	logger.Infof("新用户注册: id=%d username=%s", user.ID, user.Username)
	return user, nil
}

func (s *accountService) CreateAdmin(ctx context.Context, req *RegisterRequest) (*database.User, error) {
	user, err := s.createUser(ctx, req, true, true)
	if err != nil {
		return nil, err
	}
	logger.Infof("管理员账户已创建: id=%d username=%s", user.ID, user.Username)
	return user, nil
}

// createUser 检查唯一性并创建用户
func (s *accountService) createUser(ctx context.Context, req *RegisterRequest, active, staff bool) (*database.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" {
		return nil, errors.Invalid("username", "username is required")
	}
	if email == "" {
		return nil, errors.Invalid("email", "email is required")
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&database.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	if count > 0 {
		return nil, errors.Of(errors.ErrUserAlreadyExists).WithField("username")
	}
	if err := db.Model(&database.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	if count > 0 {
		return nil, errors.Of(errors.ErrUserAlreadyExists).WithField("email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternalServer, "", err)
	}

	user := &database.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		IsActive: active,
		IsStaff:  staff,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseInsert, "", err)
	}
	return user, nil
}

func (s *accountService) ResendVerificationOTP(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsActive {
		return errors.Of(errors.ErrAccountAlreadyActive)
	}

	code, err := s.otp.Issue(user.Email, otp.PurposeVerifyEmail)
	if err != nil {
		return err
	}
	s.mail.SendVerificationOTP(user.Email, code)
	return nil
}

func (s *accountService) VerifyEmail(ctx context.Context, req *VerifyEmailRequest) error {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user.IsActive {
		return errors.Of(errors.ErrAccountAlreadyActive)
	}
	if err := s.otp.Verify(user.Email, otp.PurposeVerifyEmail, req.OTP); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(user).Update("is_active", true).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseUpdate, "", err)
	}
	s.mail.SendEmailVerified(user.Email)

	logger.Infof("账户已激活: id=%d username=%s", user.ID, user.Username)
	return nil
}

func (s *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	code, err := s.otp.Issue(user.Email, otp.PurposeResetPassword)
	if err != nil {
		return err
	}
	s.mail.SendPasswordResetOTP(user.Email, code)
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := s.otp.Verify(user.Email, otp.PurposeResetPassword, req.OTP); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternalServer, "", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).Delete(&database.AuthToken{}).Error
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseTransaction, "", err)
	}
	s.mail.SendPasswordChanged(user.Email)

	logger.Infof("密码已重置: id=%d", user.ID)
	return nil
}

func (s *accountService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	db := s.db.WithContext(ctx)

	var user database.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Of(errors.ErrInvalidCredentials)
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errors.Of(errors.ErrInvalidCredentials)
	}
	if !user.IsActive {
		return nil, errors.Of(errors.ErrAccountInactive)
	}

	var token database.AuthToken
	created := false
	err := db.Where("user_id = ?", user.ID).First(&token).Error
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		token = database.AuthToken{Key: newTokenKey(), UserID: user.ID}
		if err := db.Create(&token).Error; err != nil {
			return nil, errors.Wrap(errors.ErrDatabaseInsert, "", err)
		}
		created = true
	case err != nil:
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}

	now := s.now()
	if err := db.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		logger.Warnf("更新最后登录时间失败: user=%d, 错误: %v", user.ID, err)
	}

	return &LoginResult{
		User:    NewUserInfo(&user),
		Token:   token.Key,
		Created: created,
	}, nil
}

func (s *accountService) Logout(ctx context.Context, userID uint, allDevices bool) error {
	if !allDevices {
		return nil
	}
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&database.AuthToken{})
	if result.Error != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, "", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.Of(errors.ErrTokenInvalid)
	}
	return nil
}

func (s *accountService) Authenticate(ctx context.Context, key string) (*database.User, error) {
	if key == "" {
		return nil, errors.Of(errors.ErrTokenInvalid)
	}
	var token database.AuthToken
	err := s.db.WithContext(ctx).Preload("User").Where(&database.AuthToken{Key: key}).First(&token).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Of(errors.ErrTokenInvalid)
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	if !token.User.IsActive {
		return nil, errors.Of(errors.ErrAccountInactive)
	}
	return &token.User, nil
}

// findByEmail 按邮箱查询用户，邮箱不区分大小写
func (s *accountService) findByEmail(ctx context.Context, email string) (*database.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.Invalid("email", "email is required")
	}
	var user database.User
	err := s.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Of(errors.ErrUserNotFound).WithField("email")
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, "", err)
	}
	return &user, nil
}

// newTokenKey 生成40位十六进制令牌
func newTokenKey() string {
	a, b := uuid.New(), uuid.New()
	return hex.EncodeToString(append(a[:], b[:4]...))
}
