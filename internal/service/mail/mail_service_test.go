package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/arsongs/config"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// TestMailService 测试通知邮件内容
func TestMailService(t *testing.T) {
	sender := &recordingSender{}
	svc := NewMailService(sender, time.Second)

	svc.SendVerificationOTP("a@example.com", "123456")
	svc.SendPasswordResetOTP("b@example.com", "654321")
	svc.SendEmailVerified("a@example.com")
	svc.SendPasswordChanged("b@example.com")
	svc.Wait()

	require.Len(t, sender.sent, 4)
	bySubject := map[string]Message{}
	for _, m := range sender.sent {
		bySubject[m.Subject] = m
	}

	assert.Contains(t, bySubject["OTP to verify email"].Body, "123456")
	assert.Equal(t, "a@example.com", bySubject["OTP to verify email"].To)
	assert.Contains(t, bySubject["Password Reset OTP"].Body, "654321")
	assert.Equal(t, "b@example.com", bySubject["Password Reset Successfully"].To)
	assert.Contains(t, bySubject, "Email Verified Successfully")
}

// TestMailServiceSwallowsErrors 测试发送失败不会影响调用方
func TestMailServiceSwallowsErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewMailService(sender, 0)

	assert.NotPanics(t, func() {
		svc.SendEmailVerified("a@example.com")
		svc.Wait()
	})
	assert.Empty(t, sender.sent)
}

// TestNewSender 测试根据配置选择投递实现
func TestNewSender(t *testing.T) {
	assert.IsType(t, LogSender{}, NewSender(config.MailConfig{Enabled: false}))

	s := NewSender(config.MailConfig{Enabled: true, Host: "smtp.example.com", Port: 587, Username: "noreply@example.com"})
	smtp, ok := s.(*SMTPSender)
	require.True(t, ok)
	assert.Equal(t, "noreply@example.com", smtp.from)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, smtp.Send(ctx, Message{To: "x@example.com"}), context.Canceled)
}
