// Package mail 提供账户相关的邮件通知
// 邮件在后台协程中发送，发送失败只记录日志，不影响调用方的业务流程
package mail

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/logger"
	"gopkg.in/gomail.v2"
)

// Message 一封待发送的邮件
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender 邮件投递接口
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// MailService 账户通知邮件服务接口
type MailService interface {
	// SendVerificationOTP 发送邮箱验证码
	SendVerificationOTP(to, code string)
	// SendEmailVerified 通知邮箱验证成功
	SendEmailVerified(to string)
	// SendPasswordResetOTP 发送重置密码验证码
	SendPasswordResetOTP(to, code string)
	// SendPasswordChanged 通知密码已重置
	SendPasswordChanged(to string)
	// Wait 等待所有后台发送结束
	Wait()
}

// mailService 邮件服务实现
type mailService struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewMailService 创建邮件服务实例
// 参数:
//   - sender: 邮件投递实现
//   - timeout: 单封邮件发送超时，<=0 表示不限制
func NewMailService(sender Sender, timeout time.Duration) MailService {
	return &mailService{sender: sender, timeout: timeout}
}

// NewSender 根据配置创建邮件投递实现
// 未启用邮件时返回只记录日志的实现
func NewSender(cfg config.MailConfig) Sender {
	if !cfg.Enabled {
		logger.Info("邮件发送未启用，邮件内容只写入日志")
		return LogSender{}
	}
	return NewSMTPSender(cfg)
}

func (s *mailService) SendVerificationOTP(to, code string) {
	s.dispatch(Message{
		To:      to,
		Subject: "OTP to verify email",
		Body:    fmt.Sprintf("Your OTP to verify your email is %s", code),
	})
}

func (s *mailService) SendEmailVerified(to string) {
	s.dispatch(Message{
		To:      to,
		Subject: "Email Verified Successfully",
		Body:    "Your email has been successfully verified. You can now login.",
	})
}

func (s *mailService) SendPasswordResetOTP(to, code string) {
	s.dispatch(Message{
		To:      to,
		Subject: "Password Reset OTP",
		Body:    fmt.Sprintf("Your OTP for password reset is %s", code),
	})
}

func (s *mailService) SendPasswordChanged(to string) {
	s.dispatch(Message{
		To:      to,
		Subject: "Password Reset Successfully",
		Body:    "Your password has been successfully reset.",
	})
}

func (s *mailService) Wait() {
	s.wg.Wait()
}

// dispatch 在后台协程中发送邮件
func (s *mailService) dispatch(msg Message) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx := context.Background()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		if err := s.sender.Send(ctx, msg); err != nil {
			logger.WithField("to", msg.To).Errorf("邮件发送失败: %s, 错误: %v", msg.Subject, err)
			return
		}
		logger.WithField("to", msg.To).Infof("邮件发送成功: %s", msg.Subject)
	}()
}

// SMTPSender 通过SMTP发送邮件
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender 创建SMTP投递实现
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send 连接SMTP服务器并发送邮件
// gomail 不支持上下文，超时前已取消的上下文会直接返回错误
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return s.dialer.DialAndSend(m)
}

// LogSender 只把邮件写入日志
type LogSender struct{}

// Send 记录邮件内容
func (LogSender) Send(_ context.Context, msg Message) error {
	logger.WithField("to", msg.To).Infof("[mail] %s: %s", msg.Subject, msg.Body)
	return nil
}
