package otp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/arsongs/internal/errors"
)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService() (OTPService, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewOTPService(6, 2*time.Minute, WithClock(clock.Now)), clock
}

// TestIssue 测试签发验证码
func TestIssue(t *testing.T) {
	svc, clock := newTestService()

	t.Run("验证码为6位数字", func(t *testing.T) {
		code, err := svc.Issue("user@example.com", PurposeVerifyEmail)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	})

	t.Run("未过期时重复申请被拒绝", func(t *testing.T) {
		_, err := svc.Issue("USER@example.com", PurposeVerifyEmail)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrOTPOutstanding))
	})

	t.Run("不同用途互不影响", func(t *testing.T) {
		_, err := svc.Issue("user@example.com", PurposeResetPassword)
		assert.NoError(t, err)
	})

	t.Run("过期后可以重新申请", func(t *testing.T) {
		clock.Advance(2 * time.Minute)
		_, err := svc.Issue("user@example.com", PurposeVerifyEmail)
		assert.NoError(t, err)
	})
}

// TestVerify 测试校验验证码
func TestVerify(t *testing.T) {
	t.Run("正确验证码只能使用一次", func(t *testing.T) {
		svc, _ := newTestService()
		code, err := svc.Issue("a@example.com", PurposeVerifyEmail)
		require.NoError(t, err)

		require.NoError(t, svc.Verify("a@example.com", PurposeVerifyEmail, code))
		err = svc.Verify("a@example.com", PurposeVerifyEmail, code)
		assert.True(t, errors.HasCode(err, errors.ErrOTPInvalid))
	})

	t.Run("错误验证码不会使验证码失效", func(t *testing.T) {
		svc, _ := newTestService()
		code, err := svc.Issue("b@example.com", PurposeVerifyEmail)
		require.NoError(t, err)

		wrong := "000000"
		if code == wrong {
			wrong = "111111"
		}
		err = svc.Verify("b@example.com", PurposeVerifyEmail, wrong)
		assert.True(t, errors.HasCode(err, errors.ErrOTPInvalid))
		assert.NoError(t, svc.Verify("b@example.com", PurposeVerifyEmail, code))
	})

	t.Run("用途不匹配", func(t *testing.T) {
		svc, _ := newTestService()
		code, err := svc.Issue("c@example.com", PurposeResetPassword)
		require.NoError(t, err)

		err = svc.Verify("c@example.com", PurposeVerifyEmail, code)
		assert.True(t, errors.HasCode(err, errors.ErrOTPInvalid))
	})

	t.Run("过期验证码", func(t *testing.T) {
		svc, clock := newTestService()
		code, err := svc.Issue("d@example.com", PurposeVerifyEmail)
		require.NoError(t, err)

		clock.Advance(2*time.Minute + time.Second)
		err = svc.Verify("d@example.com", PurposeVerifyEmail, code)
		assert.True(t, errors.HasCode(err, errors.ErrOTPInvalid))
	})

	t.Run("失效后无法校验", func(t *testing.T) {
		svc, _ := newTestService()
		code, err := svc.Issue("e@example.com", PurposeVerifyEmail)
		require.NoError(t, err)

		svc.Invalidate("e@example.com", PurposeVerifyEmail)
		err = svc.Verify("e@example.com", PurposeVerifyEmail, code)
		assert.True(t, errors.HasCode(err, errors.ErrOTPInvalid))
	})
}
