// Package otp 管理邮箱一次性验证码
// 验证码按 (邮箱, 用途) 存储，过期时间由签发时间显式判断，缓存自身的过期只用于回收内存
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/weiwangfds/arsongs/internal/errors"
)

// Purpose 验证码用途
type Purpose string

const (
	PurposeVerifyEmail   Purpose = "verify_email"
	PurposeResetPassword Purpose = "reset_password"
)

// Entry 一条已签发的验证码
type Entry struct {
	Code     string
	IssuedAt time.Time
	Purpose  Purpose
}

// OTPService 验证码服务接口
type OTPService interface {
	// Issue 签发新的验证码
	// 同一邮箱同一用途存在未过期的验证码时返回 ErrOTPOutstanding
	Issue(email string, purpose Purpose) (string, error)

	// Verify 校验验证码，成功后验证码立即失效
	// 验证码不存在、已过期或不匹配时返回 ErrOTPInvalid
	Verify(email string, purpose Purpose, code string) error

	// Invalidate 使验证码失效
	Invalidate(email string, purpose Purpose)
}

// otpService 验证码服务实现
type otpService struct {
	mu     sync.Mutex
	store  *cache.Cache
	ttl    time.Duration
	length int
	now    func() time.Time
}

// Option 验证码服务选项
type Option func(*otpService)

// WithClock 替换时钟，测试中用于模拟过期
func WithClock(now func() time.Time) Option {
	return func(s *otpService) {
		s.now = now
	}
}

// NewOTPService 创建验证码服务实例
// 参数:
//   - length: 验证码位数
//   - ttl: 有效期
func NewOTPService(length int, ttl time.Duration, opts ...Option) OTPService {
	s := &otpService{
		store:  cache.New(ttl+time.Minute, 5*time.Minute),
		ttl:    ttl,
		length: length,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func key(email string, purpose Purpose) string {
	return string(purpose) + ":" + strings.ToLower(strings.TrimSpace(email))
}

func (s *otpService) Issue(email string, purpose Purpose) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(email, purpose)
	if entry, ok := s.lookup(k); ok && !s.expired(entry) {
		return "", errors.Of(errors.ErrOTPOutstanding)
	}

	code, err := generateCode(s.length)
	if err != nil {
		return "", errors.Wrap(errors.ErrInternalServer, "生成验证码失败", err)
	}
	s.store.Set(k, Entry{Code: code, IssuedAt: s.now(), Purpose: purpose}, cache.DefaultExpiration)
	return code, nil
}

func (s *otpService) Verify(email string, purpose Purpose, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(email, purpose)
	entry, ok := s.lookup(k)
	if !ok {
		return errors.Of(errors.ErrOTPInvalid).WithField("otp")
	}
	if s.expired(entry) {
		s.store.Delete(k)
		return errors.Of(errors.ErrOTPInvalid).WithField("otp")
	}
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return errors.Of(errors.ErrOTPInvalid).WithField("otp")
	}
	s.store.Delete(k)
	return nil
}

func (s *otpService) Invalidate(email string, purpose Purpose) {
	s.store.Delete(key(email, purpose))
}

func (s *otpService) lookup(k string) (Entry, bool) {
	v, ok := s.store.Get(k)
	if !ok {
		return Entry{}, false
	}
	entry, ok := v.(Entry)
	return entry, ok
}

func (s *otpService) expired(entry Entry) bool {
	return !s.now().Before(entry.IssuedAt.Add(s.ttl))
}

// generateCode 生成指定位数的数字验证码
func generateCode(length int) (string, error) {
	max := big.NewInt(10)
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
