package account

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/service/otp"
	"gorm.io/gorm"
)

// recordingMail 记录发送的邮件
type recordingMail struct {
	mu       sync.Mutex
	codes    map[string]string
	verified []string
	changed  []string
}

func newRecordingMail() *recordingMail {
	return &recordingMail{codes: map[string]string{}}
}

func (m *recordingMail) SendVerificationOTP(to, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes["verify:"+to] = code
}

func (m *recordingMail) SendEmailVerified(to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verified = append(m.verified, to)
}

func (m *recordingMail) SendPasswordResetOTP(to, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes["reset:"+to] = code
}

func (m *recordingMail) SendPasswordChanged(to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changed = append(m.changed, to)
}

func (m *recordingMail) Wait() {}

// failingOTP 签发总是失败，校验委托给真实的验证码服务
type failingOTP struct {
	otp.OTPService
	issued int
}

func (f *failingOTP) Issue(string, otp.Purpose) (string, error) {
	f.issued++
	return "", errors.Of(errors.ErrInternalServer)
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func setupService(t *testing.T) (AccountService, *recordingMail, *clock, *gorm.DB) {
	db, err := database.NewMemoryDB(t.Name())
	require.NoError(t, err)

	clk := &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	mails := newRecordingMail()
	svc := NewAccountService(db, otp.NewOTPService(6, 2*time.Minute, otp.WithClock(clk.Now)), mails)
	return svc, mails, clk, db
}

func register(t *testing.T, svc AccountService) *database.User {
	user, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "listener",
		Email:    "listener@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	return user
}

// TestRegister 测试注册流程
func TestRegister(t *testing.T) {
	svc, mails, _, _ := setupService(t)
	ctx := context.Background()

	user := register(t, svc)
	assert.False(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.Len(t, mails.codes["verify:listener@example.com"], 6)

	t.Run("用户名重复", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{Username: "listener", Email: "other@example.com", Password: "s3cret-pass"})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrUserAlreadyExists))
		appErr, _ := errors.GetAppError(err)
		assert.Equal(t, "username", appErr.Field)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{Username: "other", Email: "Listener@Example.com", Password: "s3cret-pass"})
		assert.True(t, errors.HasCode(err, errors.ErrUserAlreadyExists))
	})

	t.Run("未激活账户不能登录", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Username: "listener", Password: "s3cret-pass"})
		assert.True(t, errors.HasCode(err, errors.ErrAccountInactive))
	})
}

// TestVerifyEmail 测试邮箱验证
func TestVerifyEmail(t *testing.T) {
	svc, mails, clk, db := setupService(t)
	ctx := context.Background()
	register(t, svc)
	code := mails.codes["verify:listener@example.com"]

	t.Run("验证码未过期时不能重新发送", func(t *testing.T) {
		err := svc.ResendVerificationOTP(ctx, "listener@example.com")
		assert.True(t, errors.HasCode(err, errors.ErrOTPOutstanding))
	})

	t.Run("错误验证码不会激活账户", func(t *testing.T) {
		wrong := "000000"
		if code == wrong {
			wrong = "999999"
		}
		err := svc.VerifyEmail(ctx, &VerifyEmailRequest{Email: "listener@example.com", OTP: wrong})
		assert.True(t, errors.HasCode(err, errors.ErrOTPInvalid))

		var user database.User
		require.NoError(t, db.First(&user, "username = ?", "listener").Error)
		assert.False(t, user.IsActive)
	})

	t.Run("过期验证码不会激活账户", func(t *testing.T) {
		clk.now = clk.now.Add(3 * time.Minute)
		err := svc.VerifyEmail(ctx, &VerifyEmailRequest{Email: "listener@example.com", OTP: code})
		assert.True(t, errors.HasCode(err, errors.ErrOTPInvalid))
	})

	t.Run("过期后重新发送并激活", func(t *testing.T) {
		require.NoError(t, svc.ResendVerificationOTP(ctx, "listener@example.com"))
		fresh := mails.codes["verify:listener@example.com"]

		require.NoError(t, svc.VerifyEmail(ctx, &VerifyEmailRequest{Email: "listener@example.com", OTP: fresh}))
		assert.Equal(t, []string{"listener@example.com"}, mails.verified)

		var user database.User
		require.NoError(t, db.First(&user, "username = ?", "listener").Error)
		assert.True(t, user.IsActive)

		err := svc.VerifyEmail(ctx, &VerifyEmailRequest{Email: "listener@example.com", OTP: fresh})
		assert.True(t, errors.HasCode(err, errors.ErrAccountAlreadyActive))
	})

	t.Run("已激活账户不能重新发送", func(t *testing.T) {
		err := svc.ResendVerificationOTP(ctx, "listener@example.com")
		assert.True(t, errors.HasCode(err, errors.ErrAccountAlreadyActive))
	})

	t.Run("未注册邮箱", func(t *testing.T) {
		err := svc.ResendVerificationOTP(ctx, "nobody@example.com")
		assert.True(t, errors.HasCode(err, errors.ErrUserNotFound))
	})
}

// TestLoginLogout 测试登录、令牌认证和退出
func TestLoginLogout(t *testing.T) {
	svc, _, _, db := setupService(t)
	ctx := context.Background()
	_, err := svc.CreateAdmin(ctx, &RegisterRequest{Username: "admin", Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)

	first, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Len(t, first.Token, 40)
	assert.Equal(t, "admin", first.User.Username)

	second, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Token, second.Token)

	var user database.User
	require.NoError(t, db.First(&user, first.User.ID).Error)
	assert.NotNil(t, user.LastLogin)

	_, err = svc.Login(ctx, &LoginRequest{Username: "admin", Password: "wrong"})
	assert.True(t, errors.HasCode(err, errors.ErrInvalidCredentials))
	_, err = svc.Login(ctx, &LoginRequest{Username: "ghost", Password: "admin-pass"})
	assert.True(t, errors.HasCode(err, errors.ErrInvalidCredentials))

	authed, err := svc.Authenticate(ctx, first.Token)
	require.NoError(t, err)
	assert.True(t, authed.IsStaff)

	require.NoError(t, svc.Logout(ctx, authed.ID, false))
	_, err = svc.Authenticate(ctx, first.Token)
	assert.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, authed.ID, true))
	_, err = svc.Authenticate(ctx, first.Token)
	assert.True(t, errors.HasCode(err, errors.ErrTokenInvalid))
}

// TestResetPassword 测试重置密码
func TestResetPassword(t *testing.T) {
	svc, mails, _, db := setupService(t)
	ctx := context.Background()
	_, err := svc.CreateAdmin(ctx, &RegisterRequest{Username: "admin", Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)
	login, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)

	err = svc.RequestPasswordReset(ctx, "missing@example.com")
	assert.True(t, errors.HasCode(err, errors.ErrUserNotFound))

	require.NoError(t, svc.RequestPasswordReset(ctx, "admin@example.com"))
	err = svc.RequestPasswordReset(ctx, "admin@example.com")
	assert.True(t, errors.HasCode(err, errors.ErrOTPOutstanding))

	code := mails.codes["reset:admin@example.com"]
	require.NoError(t, svc.ResetPassword(ctx, &ResetPasswordRequest{Email: "admin@example.com", OTP: code, NewPassword: "brand-new-pass"}))
	assert.Equal(t, []string{"admin@example.com"}, mails.changed)

	var tokens int64
	require.NoError(t, db.Model(&database.AuthToken{}).Where("user_id = ?", login.User.ID).Count(&tokens).Error)
	assert.Zero(t, tokens)

	_, err = svc.Login(ctx, &LoginRequest{Username: "admin", Password: "admin-pass"})
	assert.True(t, errors.HasCode(err, errors.ErrInvalidCredentials))
	_, err = svc.Login(ctx, &LoginRequest{Username: "admin", Password: "brand-new-pass"})
	assert.NoError(t, err)

	err = svc.ResetPassword(ctx, &ResetPasswordRequest{Email: "admin@example.com", OTP: code, NewPassword: "another-pass"})
	assert.True(t, errors.HasCode(err, errors.ErrOTPInvalid))
}

// TestRegisterIssueFailure 测试验证码签发失败时注册仍然成功，之后可以重新发送
func TestRegisterIssueFailure(t *testing.T) {
	db, err := database.NewMemoryDB(t.Name())
	require.NoError(t, err)

	codes := &failingOTP{OTPService: otp.NewOTPService(6, 2*time.Minute)}
	mails := newRecordingMail()
	svc := NewAccountService(db, codes, mails)

	user := register(t, svc)
	assert.False(t, user.IsActive)
	assert.Equal(t, 1, codes.issued)
	assert.Empty(t, mails.codes)

	var stored database.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.False(t, stored.IsActive)

	// 换用可用的验证码服务后重新发送即可激活
	svc = NewAccountService(db, otp.NewOTPService(6, 2*time.Minute), mails)
	require.NoError(t, svc.ResendVerificationOTP(context.Background(), user.Email))
	code := mails.codes["verify:"+user.Email]
	require.Len(t, code, 6)
	require.NoError(t, svc.VerifyEmail(context.Background(), &VerifyEmailRequest{Email: user.Email, OTP: code}))
}
